// Package expr parses, validates and evaluates two-operand calculator
// expressions written in Arabic or Roman numerals.
package expr

// Operator is one of the four supported arithmetic operators.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

// Operators lists every operator character in the order they are scanned.
const Operators = "+-*/"

// String returns the operator character.
func (o Operator) String() string {
	return string(o)
}

// Valid reports whether o is a supported operator.
func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	default:
		return false
	}
}

// OperandKind tags the interpretation of a raw operand token.
type OperandKind int

const (
	KindInvalid       OperandKind = iota // matches no known form
	KindRoman                            // classical Roman numeral
	KindArabicInteger                    // digits only
	KindArabicDecimal                    // digits '.' digits
)

// String returns a debug-friendly name for the kind.
func (k OperandKind) String() string {
	switch k {
	case KindRoman:
		return "ROMAN"
	case KindArabicInteger:
		return "ARABIC_INTEGER"
	case KindArabicDecimal:
		return "ARABIC_DECIMAL"
	default:
		return "INVALID"
	}
}
