package parser

import (
	"testing"

	"github.com/lemonberrylabs/numcalc/pkg/types"
)

func TestParseMappingBatch(t *testing.T) {
	src := []byte(`
expressions:
  - "IV * II"
  - name: tenth
    expression: "10/3"
    expect: "3"
  - name: mixed
    expression: IV+3
    expect_error: MixedNumeralSystems
`)

	b, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(b.Cases))
	}

	first := b.Cases[0]
	if first.Name != "case-1" || first.Expression != "IV * II" || first.HasExpectation() {
		t.Errorf("unexpected first case %+v", first)
	}
	if b.Cases[1].Name != "tenth" || b.Cases[1].Expect != "3" {
		t.Errorf("unexpected second case %+v", b.Cases[1])
	}
	if b.Cases[2].ExpectError != types.KindMixedNumeralSystems {
		t.Errorf("unexpected third case %+v", b.Cases[2])
	}
	if b.Cases[2].Line != 7 {
		t.Errorf("expected line 7, got %d", b.Cases[2].Line)
	}
}

func TestParseSequenceBatch(t *testing.T) {
	b, err := Parse([]byte(`["1+1", "X/II"]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Cases) != 2 || b.Cases[1].Expression != "X/II" {
		t.Fatalf("unexpected cases %+v", b.Cases)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"invalid yaml", "expressions: [1+1"},
		{"no expressions key", "cases: []"},
		{"not a list", "expressions: 1+1"},
		{"unknown key", "- {expression: 1+1, note: x}"},
		{"unknown kind", "- {expression: 1+1, expect_error: Oops}"},
		{"both expectations", "- {expression: 1+1, expect: '2', expect_error: DivisionByZero}"},
		{"nested value", "- {expression: [1, 2]}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if _, ok := err.(*ParseError); !ok {
				t.Errorf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestRunReport(t *testing.T) {
	b, err := Parse([]byte(`
- "IV * II"
- {name: ok, expression: "X/II", expect: V}
- {name: wrong, expression: "X/II", expect: X}
- {name: guard, expression: "VII-X", expect_error: NonPositiveRomanResult}
- "1.5+2"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := b.Run()

	if report.Passed != 3 || report.Failed != 2 {
		t.Fatalf("passed=%d failed=%d", report.Passed, report.Failed)
	}
	if report.Results[0].Output != "VIII" {
		t.Errorf("unexpected output %q", report.Results[0].Output)
	}
	if report.Results[2].Passed {
		t.Error("expected mismatched expectation to fail")
	}
	if !types.IsKind(report.Results[4].Err, types.KindUnsupportedOperandType) {
		t.Errorf("unexpected error %v", report.Results[4].Err)
	}
	if report.Results[1].Case.Name != "ok" || report.Results[1].Output != "V" {
		t.Errorf("unexpected result %+v", report.Results[1])
	}
}
