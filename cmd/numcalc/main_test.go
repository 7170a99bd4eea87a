package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"NUMCALC_CONFIG", "HOST", "PORT", "GRPC_PORT", "HISTORY_LIMIT", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "", "eval", "IV", "*", "II")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if strings.TrimSpace(out) != "VIII" {
		t.Errorf("got %q, want VIII", out)
	}
}

func TestEvalCommandError(t *testing.T) {
	out, err := execute(t, "", "eval", "IV+3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out, "different numeral systems") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestREPLCommand(t *testing.T) {
	out, err := execute(t, "X/II\nVII-X\n")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !strings.Contains(out, "Output:\nV\n") {
		t.Errorf("missing result in %q", out)
	}
	if !strings.Contains(out, "Roman-numeral results must be positive") {
		t.Errorf("missing error in %q", out)
	}
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	src := "expressions:\n  - {expression: '10/3', expect: '3'}\n  - {expression: 'IV+3', expect_error: MixedNumeralSystems}\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "batch", path)
	if err != nil {
		t.Fatalf("batch: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 passed, 0 failed") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestBatchCommandFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte("- {expression: 'X/II', expect: X}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "batch", path)
	if err == nil {
		t.Fatal("expected error for failing batch")
	}
	if !strings.Contains(out, "FAIL") {
		t.Errorf("expected FAIL marker, got %q", out)
	}
}

func TestInvalidLogLevelFlag(t *testing.T) {
	if _, err := execute(t, "", "--log-level", "loud", "eval", "1+1"); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "", "--version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "numcalc version dev") {
		t.Errorf("unexpected version output %q", out)
	}
}
