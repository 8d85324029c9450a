package problemgen

import "testing"

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		num, den int
		want     string
	}{
		{1, 2, "50 %"},
		{1, 4, "25 %"},
		{3, 4, "75 %"},
		{1, 3, "33 1/3 %"},
		{2, 3, "66 2/3 %"},
		{1, 6, "16 2/3 %"},
		{1, 7, "14 2/7 %"},
		{3, 8, "37 1/2 %"},
		{1, 8, "12 1/2 %"},
		{1, 9, "11 1/9 %"},
		{1, 11, "9 1/11 %"},
		{1, 40, "2 1/2 %"},
		{1, 200, "1/2 %"},
		{1, 1, "100 %"},
		{1, 13, "7.69 %"},
	}

	for _, tc := range tests {
		got := FormatPercent(tc.num, tc.den)
		if got != tc.want {
			t.Errorf("FormatPercent(%d, %d) = %q, want %q", tc.num, tc.den, got, tc.want)
		}
	}
}

func TestNiceFractions_AreReduced(t *testing.T) {
	gcd := func(a, b int) int {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}
	seen := map[Fraction]bool{}
	for _, f := range NiceFractions {
		if f.Num <= 0 || f.Den <= f.Num {
			t.Errorf("%s: want proper fraction", f)
		}
		if gcd(f.Num, f.Den) != 1 {
			t.Errorf("%s is not reduced", f)
		}
		if seen[f] {
			t.Errorf("%s listed twice", f)
		}
		seen[f] = true
	}
}
