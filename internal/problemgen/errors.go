package problemgen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig reports a config whose selections are empty or out of
	// bounds. The session never starts with such a config.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrGenerationFailure reports a well-formed config that still cannot
	// produce a question, e.g. a powers range that collapses after clamping.
	ErrGenerationFailure = errors.New("generation failure")
)

// ConfigError describes which field of a domain config was rejected.
type ConfigError struct {
	Domain  Domain
	Field   string
	Message string // user-facing
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s config: %s: %s", e.Domain, e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// GenerationError wraps ErrGenerationFailure with the reason. Err holds the
// underlying cause, e.g. a *ValidationError, when there is one.
type GenerationError struct {
	Domain Domain
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: cannot generate question: %s", e.Domain, e.Reason)
}

func (e *GenerationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrGenerationFailure, e.Err}
	}
	return []error{ErrGenerationFailure}
}

func generationFailure(d Domain, format string, args ...any) error {
	return &GenerationError{Domain: d, Reason: fmt.Sprintf(format, args...)}
}
