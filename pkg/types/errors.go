// Package types defines the error model shared by the calculator core and
// every surface that exposes it.
package types

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a class of evaluation failure. Kinds are stable and
// safe to match on programmatically.
type ErrorKind string

// Error kinds produced by parsing and evaluation.
const (
	KindMalformedExpression    ErrorKind = "MalformedExpression"
	KindUnsupportedOperandType ErrorKind = "UnsupportedOperandType"
	KindMixedNumeralSystems    ErrorKind = "MixedNumeralSystems"
	KindOperandOutOfRange      ErrorKind = "OperandOutOfRange"
	KindNonPositiveRomanResult ErrorKind = "NonPositiveRomanResult"
	KindDivisionByZero         ErrorKind = "DivisionByZero"
)

// CalcError is a user-facing validation or arithmetic failure.
type CalcError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *CalcError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the kind of err, or "" if err is not a CalcError.
func KindOf(err error) ErrorKind {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsKind reports whether err is a CalcError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// Message returns the human-readable part of err. Errors that are not a
// CalcError fall back to err.Error().
func Message(err error) string {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

// Common error constructors.

// NewMalformedExpressionError creates a MalformedExpression error.
func NewMalformedExpressionError(msg string) *CalcError {
	return &CalcError{Kind: KindMalformedExpression, Message: msg}
}

// NewUnsupportedOperandTypeError creates an UnsupportedOperandType error.
func NewUnsupportedOperandTypeError() *CalcError {
	return &CalcError{
		Kind:    KindUnsupportedOperandType,
		Message: "calculator only works with whole numbers",
	}
}

// NewMixedNumeralSystemsError creates a MixedNumeralSystems error.
func NewMixedNumeralSystemsError() *CalcError {
	return &CalcError{
		Kind:    KindMixedNumeralSystems,
		Message: "different numeral systems are used at the same time",
	}
}

// NewOperandOutOfRangeError creates an OperandOutOfRange error for the named
// numeral system ("arabic" or "roman").
func NewOperandOutOfRangeError(system string, lo, hi int) *CalcError {
	return &CalcError{
		Kind:    KindOperandOutOfRange,
		Message: fmt.Sprintf("calculator accepts %s numbers from %d to %d inclusive", system, lo, hi),
	}
}

// NewNonPositiveRomanResultError creates a NonPositiveRomanResult error.
func NewNonPositiveRomanResultError(result int) *CalcError {
	return &CalcError{
		Kind:    KindNonPositiveRomanResult,
		Message: fmt.Sprintf("Roman-numeral results must be positive (got %d)", result),
	}
}

// NewDivisionByZeroError creates a DivisionByZero error.
func NewDivisionByZeroError() *CalcError {
	return &CalcError{Kind: KindDivisionByZero, Message: "division by zero"}
}
