package repository

import "testing"

func TestPrefixRange(t *testing.T) {
	tests := []struct {
		name      string
		phrase    string
		wantStart string
		wantEnd   string
	}{
		{"ASCII", "Wroc", "Wroc", "Wrod"},
		{"SingleLetter", "W", "W", "X"},
		{"PolishFinalRune", "Łód", "Łód", "Łóe"},
		{"PolishNonFinalRune", "Łó", "Łó", "Łô"},
		{"MaxRuneCarriesLeft", "a\U0010FFFF", "a\U0010FFFF", "b"},
		{"AllMaxRunesUnbounded", "\U0010FFFF", "\U0010FFFF", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := prefixRange(tc.phrase)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Errorf("prefixRange(%q) = (%q, %q), want (%q, %q)",
					tc.phrase, start, end, tc.wantStart, tc.wantEnd)
			}
			if end != "" && end <= start {
				t.Errorf("upper bound %q does not exceed start %q", end, start)
			}
		})
	}
}
