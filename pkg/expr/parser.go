package expr

import (
	"fmt"
	"strconv"

	"github.com/lemonberrylabs/numcalc/pkg/numeral"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// Operand bounds accepted by the calculator, inclusive.
const (
	MinOperand = 1
	MaxOperand = 10
)

// Parse validates a whitespace-free input line and returns the typed
// expression. Evaluate strips whitespace before calling it.
func Parse(line string) (*ParsedExpression, error) {
	count, at := countOperators(line)
	if count != 1 {
		return nil, types.NewMalformedExpressionError(
			"expression must be two operands and one operator (+, -, /, *)")
	}

	first, second := line[:at], line[at+1:]
	if first == "" || second == "" {
		return nil, types.NewMalformedExpressionError(
			fmt.Sprintf("expected two operands around %q", line[at]))
	}

	firstKind := Classify(first)
	secondKind := Classify(second)

	if firstKind == KindArabicDecimal || secondKind == KindArabicDecimal {
		return nil, types.NewUnsupportedOperandTypeError()
	}
	if firstKind == KindInvalid || secondKind == KindInvalid {
		return nil, types.NewMalformedExpressionError(
			fmt.Sprintf("operands %q and %q are not both numbers", first, second))
	}
	if firstKind != secondKind {
		return nil, types.NewMixedNumeralSystemsError()
	}

	roman := firstKind == KindRoman
	for _, tok := range []string{first, second} {
		if err := checkRange(tok, roman); err != nil {
			return nil, err
		}
	}

	return &ParsedExpression{
		First:    first,
		Second:   second,
		Operator: Operator(line[at]),
		Roman:    roman,
	}, nil
}

// checkRange enforces [MinOperand, MaxOperand] on an already classified token.
func checkRange(token string, roman bool) error {
	if roman {
		n, err := numeral.ToIntStrict(token)
		if err != nil {
			return types.NewMalformedExpressionError(err.Error())
		}
		if n < MinOperand || n > MaxOperand {
			return types.NewOperandOutOfRangeError("roman", MinOperand, MaxOperand)
		}
		return nil
	}

	// Atoi fails only on overflow here, which is out of range too.
	n, err := strconv.Atoi(token)
	if err != nil || n < MinOperand || n > MaxOperand {
		return types.NewOperandOutOfRangeError("arabic", MinOperand, MaxOperand)
	}
	return nil
}

// operandValue converts a validated operand token to its integer value.
func operandValue(token string, roman bool) (int, error) {
	if roman {
		n, err := numeral.ToIntStrict(token)
		if err != nil {
			return 0, types.NewMalformedExpressionError(err.Error())
		}
		return n, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, types.NewMalformedExpressionError(fmt.Sprintf("invalid integer %q", token))
	}
	return n, nil
}
