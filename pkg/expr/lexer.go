package expr

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	romanPattern   = regexp.MustCompile(`^M*(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
	decimalPattern = regexp.MustCompile(`^\d+\.\d+$`)
	integerPattern = regexp.MustCompile(`^\d+$`)
)

// Classify tags a single operand token. The Roman check runs first, then
// decimal, then integer. Note the empty string is a syntactically valid
// (empty) Roman numeral; callers must reject empty tokens themselves.
func Classify(token string) OperandKind {
	switch {
	case romanPattern.MatchString(token):
		return KindRoman
	case decimalPattern.MatchString(token):
		return KindArabicDecimal
	case integerPattern.MatchString(token):
		return KindArabicInteger
	default:
		return KindInvalid
	}
}

// StripWhitespace removes every whitespace character from s.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// countOperators returns how many operator characters occur in s, and the
// index of the last one seen.
func countOperators(s string) (int, int) {
	count, at := 0, -1
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Operators, s[i]) >= 0 {
			count++
			at = i
		}
	}
	return count, at
}
