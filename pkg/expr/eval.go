package expr

import (
	"fmt"
	"strconv"

	"github.com/lemonberrylabs/numcalc/pkg/numeral"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// Apply computes a op b. Division truncates toward zero. Operands are
// assumed bounded (see MaxOperand), so overflow is not checked.
func Apply(op Operator, a, b int) (int, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, types.NewDivisionByZeroError()
		}
		return a / b, nil
	default:
		return 0, types.NewMalformedExpressionError(fmt.Sprintf("unsupported operator %q", string(op)))
	}
}

// Evaluate parses, computes and formats a single raw input line. Whitespace
// anywhere in the line is ignored. The result is rendered in the numeral
// system of the input.
func Evaluate(line string) (string, error) {
	res, err := EvaluateDetailed(line)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// EvaluateDetailed is Evaluate but returns the intermediate values as well.
func EvaluateDetailed(raw string) (*Result, error) {
	line := StripWhitespace(raw)
	pe, err := Parse(line)
	if err != nil {
		return nil, err
	}

	left, err := operandValue(pe.First, pe.Roman)
	if err != nil {
		return nil, err
	}
	right, err := operandValue(pe.Second, pe.Roman)
	if err != nil {
		return nil, err
	}

	value, err := Apply(pe.Operator, left, right)
	if err != nil {
		return nil, err
	}

	// Only - and / can get here with positive operands.
	if pe.Roman && value < 1 {
		return nil, types.NewNonPositiveRomanResultError(value)
	}

	return &Result{
		Input:      line,
		Expression: pe,
		Left:       left,
		Right:      right,
		Value:      value,
		Output:     format(value, pe.Roman),
		Roman:      pe.Roman,
	}, nil
}

func format(n int, roman bool) string {
	if roman {
		return numeral.FromInt(n)
	}
	return strconv.Itoa(n)
}
