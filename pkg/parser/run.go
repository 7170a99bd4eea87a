package parser

import (
	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// CaseResult is the outcome of running one case.
type CaseResult struct {
	Case   *Case
	Output string
	Err    error
	Passed bool
}

// Report summarizes a batch run.
type Report struct {
	Results []CaseResult
	Passed  int
	Failed  int
}

// Run evaluates every case in order. A case without expectations passes when
// it evaluates without error.
func (b *Batch) Run() *Report {
	report := &Report{}
	for _, c := range b.Cases {
		res, err := expr.EvaluateDetailed(c.Expression)

		cr := CaseResult{Case: c, Err: err}
		if res != nil {
			cr.Output = res.Output
		}
		cr.Passed = passed(c, cr.Output, err)

		if cr.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, cr)
	}
	return report
}

func passed(c *Case, output string, err error) bool {
	switch {
	case c.ExpectError != "":
		return types.IsKind(err, c.ExpectError)
	case c.Expect != "":
		return err == nil && output == c.Expect
	default:
		return err == nil
	}
}
