package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lemonberrylabs/numcalc/pkg/store"
)

func TestRunPrintsResultsAndErrors(t *testing.T) {
	in := strings.NewReader("IV * II\n1.5+2\n10 / 3\n")
	var out bytes.Buffer
	history := store.New(10)

	if err := New(in, &out, nil, history).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Output:\nVIII\n",
		"Error:\ncalculator only works with whole numbers\n",
		"Output:\n3\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// One prompt per line plus the final one before EOF.
	if n := strings.Count(got, "Input:"); n != 4 {
		t.Errorf("expected 4 prompts, got %d", n)
	}

	st := history.Stats()
	if st.Total != 3 || st.Failed != 1 {
		t.Errorf("unexpected history stats %+v", st)
	}
	if list := history.List(); list[0].Input != "10/3" || list[0].Source != "repl" {
		t.Errorf("unexpected newest record %+v", list[0])
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := New(strings.NewReader("1+1\n"), &out, nil, nil).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRunSurvivesOversizedLine(t *testing.T) {
	in := strings.NewReader(strings.Repeat("1", 70000) + "+1\n1+1")
	var out bytes.Buffer

	if err := New(in, &out, nil, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Error:\ncalculator accepts arabic numbers from 1 to 10 inclusive\n") {
		t.Errorf("expected range error for the long line:\n%.200s", got)
	}
	if !strings.Contains(got, "Output:\n2\n") {
		t.Errorf("expected the following line to be evaluated:\n%.200s", got)
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > 1 {
		return 0, errors.New("closed")
	}
	return len(p), nil
}

func TestRunReturnsWriteErrors(t *testing.T) {
	w := &failingWriter{}
	err := New(strings.NewReader("1+1\n2+2\n"), w, nil, nil).Run(context.Background())
	if err == nil || err.Error() != "closed" {
		t.Fatalf("expected write error, got %v", err)
	}
	if w.writes != 2 {
		t.Errorf("expected loop to stop after the failed result write, got %d writes", w.writes)
	}
}
