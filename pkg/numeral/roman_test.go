package numeral

import "testing"

func TestRoundTrip(t *testing.T) {
	for n := 1; n <= 10; n++ {
		r := FromInt(n)
		if got := ToInt(r); got != n {
			t.Errorf("ToInt(FromInt(%d)) = ToInt(%q) = %d", n, r, got)
		}
	}
}

func TestFromInt(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "I"},
		{4, "IV"},
		{8, "VIII"},
		{9, "IX"},
		{10, "X"},
		{40, "XL"},
		{90, "XC"},
		{100, "C"},
		{1994, "MCMXCIV"},
		{MaxRoman, "MMMCMXCIX"},
		{0, ""},
		{-3, ""},
	}

	for _, tt := range tests {
		if got := FromInt(tt.n); got != tt.want {
			t.Errorf("FromInt(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"I", 1},
		{"iv", 4},
		{"VII", 7},
		{"IX", 9},
		{"X", 10},
		{"MCMXCIV", 1994},
		{"", 0},
		{"XZ", 10}, // unmatched suffix dropped
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToInt(tt.input); got != tt.want {
				t.Errorf("ToInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestToIntStrict(t *testing.T) {
	if n, err := ToIntStrict("VIII"); err != nil || n != 8 {
		t.Fatalf("ToIntStrict(VIII) = %d, %v", n, err)
	}
	if _, err := ToIntStrict("XZ"); err == nil {
		t.Fatal("expected error for unmatched suffix")
	}
}
