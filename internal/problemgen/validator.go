package problemgen

import "fmt"

// Validator checks a generated question before it is handed out.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages,
	// e.g. "structural" or "math-check".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators applies vs in order and stops at the first failure.
func runValidators(vs []Validator, q *Question) *ValidationError {
	for _, v := range vs {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
