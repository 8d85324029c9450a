package problemgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// remainderFraction maps the fractional part of a percentage to the
// mixed-fraction label used instead of a repeating decimal.
type remainderFraction struct {
	value float64
	num   int
	den   int
}

// remainderFractions is keyed by the truncated decimal value. Order matters:
// the first entry within remainderEpsilon wins.
var remainderFractions = []remainderFraction{
	{0.5, 1, 2},
	{0.333, 1, 3},
	{0.666, 2, 3},
	{0.25, 1, 4},
	{0.75, 3, 4},
	{0.2, 1, 5},
	{0.4, 2, 5},
	{0.6, 3, 5},
	{0.8, 4, 5},
	{0.166, 1, 6},
	{0.833, 5, 6},
	{0.142, 1, 7},
	{0.285, 2, 7},
	{0.125, 1, 8},
	{0.375, 3, 8},
	{0.625, 5, 8},
	{0.875, 7, 8},
	{0.111, 1, 9},
	{0.090, 1, 11},
}

const remainderEpsilon = 0.001

// Percentage returns numerator/denominator × 100.
func Percentage(numerator, denominator int) float64 {
	return float64(numerator) * 100 / float64(denominator)
}

// FormatPercent renders n/d as a percentage label such as "33 1/3 %",
// "1/2 %", "12.34 %" or "50 %".
func FormatPercent(numerator, denominator int) string {
	pct := Percentage(numerator, denominator)
	whole := math.Floor(pct)
	rem := pct - whole

	if rem <= remainderEpsilon {
		return fmt.Sprintf("%d %%", int64(whole))
	}

	for _, rf := range remainderFractions {
		if math.Abs(rem-rf.value) < remainderEpsilon {
			if whole == 0 {
				return fmt.Sprintf("%d/%d %%", rf.num, rf.den)
			}
			return fmt.Sprintf("%d %d/%d %%", int64(whole), rf.num, rf.den)
		}
	}

	return strings.TrimSuffix(strconv.FormatFloat(pct, 'f', 2, 64), ".00") + " %"
}
