package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathdrill/internal/random"
)

// Fraction is a reduced numerator/denominator pair.
type Fraction struct {
	Num int
	Den int
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// NiceFractions are the fractions drawn by the fractions generator. Each has
// a terminating percentage or one the percent formatter renders as a mixed
// fraction.
var NiceFractions = []Fraction{
	{1, 2},
	{1, 3}, {2, 3},
	{1, 4}, {3, 4},
	{1, 5}, {2, 5}, {3, 5}, {4, 5},
	{1, 6}, {5, 6},
	{1, 7},
	{1, 8}, {3, 8}, {5, 8}, {7, 8},
	{1, 9},
	{1, 10}, {3, 10}, {7, 10}, {9, 10},
	{1, 11},
	{1, 12},
	{1, 16},
	{1, 20}, {3, 20},
	{1, 25},
	{1, 40},
	{1, 50},
}

const (
	hintFraction = "Answer as a fraction (e.g. 1/2)"
	hintPercent  = "Answer as a percentage"
)

// GenerateFractions draws a fraction and asks for it either as a fraction
// (given the percentage) or as a percentage (given the fraction).
func GenerateFractions(cfg FractionsConfig, src random.Source) (*Question, error) {
	if len(cfg.Selected) == 0 {
		return nil, generationFailure(DomainFractions, "no answer formats selected")
	}

	format := random.Pick(src, cfg.Selected)
	f := random.Pick(src, NiceFractions)
	pct := Percentage(f.Num, f.Den)
	label := FormatPercent(f.Num, f.Den)
	explanation := fmt.Sprintf("%s = %d ÷ %d × 100 = %s", f, f.Num, f.Den, label)

	switch format {
	case FormatFraction:
		return &Question{
			Domain:      DomainFractions,
			Prompt:      label,
			Answer:      f.String(),
			Kind:        KindStringExact,
			Hint:        hintFraction,
			Explanation: explanation,
		}, nil
	case FormatDecimal:
		return &Question{
			Domain:       DomainFractions,
			Prompt:       f.String(),
			Answer:       strconv.FormatFloat(pct, 'f', 2, 64),
			Kind:         KindNumericTolerant,
			Unrounded:    pct,
			Tolerance:    DefaultTolerance,
			Hint:         hintPercent,
			Explanation:  explanation,
			PercentInput: true,
		}, nil
	default:
		return nil, generationFailure(DomainFractions, "unknown answer format %q", format)
	}
}
