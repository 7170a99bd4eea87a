// Package numeral converts between Roman numerals and integers.
package numeral

import (
	"fmt"
	"strings"
)

// MaxRoman is the largest value expressible in classical subtractive notation.
const MaxRoman = 3999

// Symbol is one glyph (or subtractive pair) of the Roman numeral alphabet.
type Symbol struct {
	Glyph string
	Value int
}

// Symbols is the numeral table ordered by descending value. It must not be
// modified.
var Symbols = []Symbol{
	{"M", 1000},
	{"CM", 900},
	{"D", 500},
	{"CD", 400},
	{"C", 100},
	{"XC", 90},
	{"L", 50},
	{"XL", 40},
	{"X", 10},
	{"IX", 9},
	{"V", 5},
	{"IV", 4},
	{"I", 1},
}

// ToInt converts a Roman numeral to an integer. The token is uppercased and
// consumed greedily from the left. Any suffix that no symbol matches is
// ignored; use ToIntStrict to reject it.
func ToInt(token string) int {
	n, _ := consume(token)
	return n
}

// ToIntStrict is like ToInt but fails if part of the token is left unconsumed.
func ToIntStrict(token string) (int, error) {
	n, rest := consume(token)
	if rest != "" {
		return 0, fmt.Errorf("invalid roman numeral %q: unexpected %q", token, rest)
	}
	return n, nil
}

func consume(token string) (int, string) {
	s := strings.ToUpper(token)
	total := 0
	i := 0
	for s != "" && i < len(Symbols) {
		sym := Symbols[i]
		if strings.HasPrefix(s, sym.Glyph) {
			total += sym.Value
			s = s[len(sym.Glyph):]
		} else {
			i++
		}
	}
	return total, s
}

// FromInt renders n as a Roman numeral. It returns "" for n <= 0, which has
// no Roman representation.
func FromInt(n int) string {
	var sb strings.Builder
	i := 0
	for n > 0 && i < len(Symbols) {
		sym := Symbols[i]
		if sym.Value <= n {
			sb.WriteString(sym.Glyph)
			n -= sym.Value
		} else {
			i++
		}
	}
	return sb.String()
}
