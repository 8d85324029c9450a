package problemgen

// StructuralValidator checks that required fields are present and the
// answer kind carries what its comparison rule needs.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	switch {
	case q.Prompt == "":
		return fail("prompt is empty")
	case q.Answer == "":
		return fail("answer is empty")
	case q.Explanation == "":
		return fail("explanation is empty")
	}

	switch q.Kind {
	case KindNumericExact, KindStringExact:
	case KindNumericTolerant:
		if q.Tolerance <= 0 {
			return fail("tolerant answer without a tolerance")
		}
	default:
		return fail("kind must be numeric-exact, numeric-tolerant or string-exact")
	}

	if q.Kind != KindStringExact && !numericPattern.MatchString(q.Answer) {
		return fail("numeric answer " + q.Answer + " is not a plain decimal")
	}
	return nil
}
