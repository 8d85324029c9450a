package problemgen

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/abhisek/mathdrill/internal/random"
)

const (
	// PowerRangeMin is the smallest base ever drawn.
	PowerRangeMin = 2

	// CubeRangeCap bounds the base for cube and cube_root.
	CubeRangeCap = 20
)

// EffectiveMax returns the upper bound for n under op.
func (c PowersConfig) EffectiveMax(op PowerOp) int {
	if op.cubic() && c.RangeMax > CubeRangeCap {
		return CubeRangeCap
	}
	return c.RangeMax
}

// GeneratePowers draws a square, cube or root question.
func GeneratePowers(cfg PowersConfig, src random.Source) (*Question, error) {
	if len(cfg.Selected) == 0 {
		return nil, generationFailure(DomainPowers, "no operations selected")
	}

	op := random.Pick(src, cfg.Selected)
	hi := cfg.EffectiveMax(op)
	if hi < PowerRangeMin {
		return nil, generationFailure(DomainPowers, "range for %s collapses: max %d below %d", op, hi, PowerRangeMin)
	}
	n := int64(random.Between(src, PowerRangeMin, hi))
	sq, cube := n*n, n*n*n

	q := &Question{Domain: DomainPowers, Kind: KindNumericExact}
	switch op {
	case OpSquare:
		q.Prompt = fmt.Sprintf("%d²", n)
		q.Answer = strconv.FormatInt(sq, 10)
		q.Explanation = fmt.Sprintf("%d² = %d × %d = %s", n, n, n, humanize.Comma(sq))
	case OpCube:
		q.Prompt = fmt.Sprintf("%d³", n)
		q.Answer = strconv.FormatInt(cube, 10)
		q.Explanation = fmt.Sprintf("%d³ = %d × %d × %d = %s", n, n, n, n, humanize.Comma(cube))
	case OpSquareRoot:
		q.Prompt = "√" + humanize.Comma(sq)
		q.Answer = strconv.FormatInt(n, 10)
		q.Explanation = fmt.Sprintf("√%s = %d because %d × %d = %s", humanize.Comma(sq), n, n, n, humanize.Comma(sq))
	case OpCubeRoot:
		q.Prompt = "∛" + humanize.Comma(cube)
		q.Answer = strconv.FormatInt(n, 10)
		q.Explanation = fmt.Sprintf("∛%s = %d because %d × %d × %d = %s", humanize.Comma(cube), n, n, n, n, humanize.Comma(cube))
	default:
		return nil, generationFailure(DomainPowers, "unknown operation %q", op)
	}
	return q, nil
}
