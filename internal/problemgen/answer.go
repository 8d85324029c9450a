package problemgen

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPattern accepts an optional minus sign, optional integer digits and
// an optional fractional part; at least one digit must be present.
var numericPattern = regexp.MustCompile(`^-?\d*\.?\d+$`)

// Evaluate reports whether raw is a correct answer to q.
//
// Normalization rules:
//   - Surrounding whitespace is trimmed and thousands commas are stripped
//   - string-exact answers compare case-insensitively
//   - numeric answers must look like a plain signed decimal; anything else
//     is simply wrong
//   - numeric-tolerant answers are correct within q.Tolerance of q.Unrounded
//   - numeric-exact answers must equal q.Answer as numbers ("007" matches "7")
func Evaluate(q *Question, raw string) bool {
	if q == nil {
		return false
	}
	input := normalizeInput(raw)
	if input == "" {
		return false
	}

	if q.Kind == KindStringExact {
		return strings.EqualFold(input, normalizeInput(q.Answer))
	}

	got, ok := parseNumber(input)
	if !ok {
		return false
	}

	switch q.Kind {
	case KindNumericTolerant:
		tol := q.Tolerance
		if tol <= 0 {
			tol = DefaultTolerance
		}
		return math.Abs(got-q.Unrounded) < tol
	case KindNumericExact:
		want, ok := parseNumber(normalizeInput(q.Answer))
		if !ok {
			return false
		}
		return got == want
	default:
		return false
	}
}

// normalizeInput trims whitespace and removes thousands separators.
func normalizeInput(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// parseNumber parses s only if it matches numericPattern, so inputs such as
// "1e3", "0x10" or "Inf" never reach strconv.
func parseNumber(s string) (float64, bool) {
	if !numericPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
