package problemgen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MathCheckValidator independently recomputes the answer from the prompt
// text. Prompts it cannot parse (alphabet, percent labels) pass through
// silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	computed, err := computeAnswer(q)
	if errors.Is(err, errImperfectRoot) {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if err != nil {
		return nil
	}
	if q.Kind == KindNumericTolerant {
		if math.Abs(computed-q.Unrounded) > 1e-9 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("computed %v but question carries %v", computed, q.Unrounded),
			}
		}
		if !Evaluate(q, q.Answer) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("rounded answer %q outside tolerance of %v", q.Answer, computed),
			}
		}
		return nil
	}
	want := strconv.FormatFloat(computed, 'f', -1, 64)
	if !Evaluate(q, want) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %s but question claims %q", want, q.Answer),
		}
	}
	return nil
}

// Prompt shapes produced by the arithmetic generators.
var (
	productRe  = regexp.MustCompile(`^(\d+) × (\d+)$`)
	squareRe   = regexp.MustCompile(`^([\d,]+)²$`)
	cubeRe     = regexp.MustCompile(`^([\d,]+)³$`)
	sqrtRe     = regexp.MustCompile(`^√([\d,]+)$`)
	cbrtRe     = regexp.MustCompile(`^∛([\d,]+)$`)
	fractionRe = regexp.MustCompile(`^(\d+)/(\d+)$`)
)

// computeAnswer derives the numeric answer from q.Prompt, or returns an
// error if the prompt is not an arithmetic expression.
func computeAnswer(q *Question) (float64, error) {
	p := q.Prompt
	if m := productRe.FindStringSubmatch(p); m != nil {
		a, b := atoi64(m[1]), atoi64(m[2])
		return float64(a * b), nil
	}
	if m := squareRe.FindStringSubmatch(p); m != nil {
		n := atoi64(m[1])
		return float64(n * n), nil
	}
	if m := cubeRe.FindStringSubmatch(p); m != nil {
		n := atoi64(m[1])
		return float64(n * n * n), nil
	}
	if m := sqrtRe.FindStringSubmatch(p); m != nil {
		return exactRoot(atoi64(m[1]), 2)
	}
	if m := cbrtRe.FindStringSubmatch(p); m != nil {
		return exactRoot(atoi64(m[1]), 3)
	}
	if q.Kind == KindNumericTolerant {
		if m := fractionRe.FindStringSubmatch(p); m != nil {
			num, den := atoi64(m[1]), atoi64(m[2])
			if den == 0 {
				return 0, fmt.Errorf("zero denominator")
			}
			return Percentage(int(num), int(den)), nil
		}
	}
	return 0, fmt.Errorf("not computable")
}

var errImperfectRoot = errors.New("radicand is not a perfect power")

// exactRoot returns the integer k-th root of v, failing if v is not a
// perfect power.
func exactRoot(v int64, k int) (float64, error) {
	r := int64(math.Round(math.Pow(float64(v), 1/float64(k))))
	p := int64(1)
	for range k {
		p *= r
	}
	if p != v {
		return 0, fmt.Errorf("%d (k=%d): %w", v, k, errImperfectRoot)
	}
	return float64(r), nil
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	return n
}
