package problemgen

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/abhisek/mathdrill/internal/random"
)

// GeneratePractice multiplies two operands with digit counts drawn from
// Digits1 and Digits2.
func GeneratePractice(cfg PracticeConfig, src random.Source) (*Question, error) {
	if len(cfg.Digits1) == 0 || len(cfg.Digits2) == 0 {
		return nil, generationFailure(DomainPractice, "digit counts not selected")
	}

	d1 := random.Pick(src, cfg.Digits1)
	d2 := random.Pick(src, cfg.Digits2)
	if d1 < MinDigits || d1 > MaxDigits || d2 < MinDigits || d2 > MaxDigits {
		return nil, generationFailure(DomainPractice, "digit counts %d and %d outside %d..%d", d1, d2, MinDigits, MaxDigits)
	}

	a := withDigits(src, d1)
	b := withDigits(src, d2)
	product := a * b

	return &Question{
		Domain:      DomainPractice,
		Prompt:      fmt.Sprintf("%d × %d", a, b),
		Answer:      strconv.FormatInt(product, 10),
		Kind:        KindNumericExact,
		Explanation: fmt.Sprintf("%s × %s = %s", humanize.Comma(a), humanize.Comma(b), humanize.Comma(product)),
	}, nil
}

// withDigits returns a number with exactly d digits, uniform over
// [10^(d-1), 10^d - 1].
func withDigits(src random.Source, d int) int64 {
	lo := pow10(d - 1)
	hi := pow10(d) - 1
	return lo + int64(random.IntN(src, int(hi-lo+1)))
}

func pow10(n int) int64 {
	p := int64(1)
	for range n {
		p *= 10
	}
	return p
}
