package problemgen

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/random"
)

// Generator produces questions for one configured domain.
type Generator interface {
	// Generate draws a question from src. It returns an error wrapping
	// ErrGenerationFailure when no valid question can be produced.
	// All configured validators are run before returning.
	Generate(src random.Source) (*Question, error)

	// Config returns the parameters the generator was built from.
	Config() DomainConfig
}

// Options controls how generated questions are checked.
type Options struct {
	// Validators is the ordered list of validators to run on every
	// generated question. The first failure stops the pipeline.
	Validators []Validator
}

// DefaultOptions returns the standard validator chain.
func DefaultOptions() Options {
	return Options{
		Validators: []Validator{
			&StructuralValidator{},
			&MathCheckValidator{},
		},
	}
}

type domainGenerator struct {
	cfg        DomainConfig
	generate   func(random.Source) (*Question, error)
	validators []Validator
}

// New validates cfg and returns a Generator with the default validators.
func New(cfg DomainConfig) (Generator, error) {
	return NewWithOptions(cfg, DefaultOptions())
}

// NewWithOptions validates cfg and returns a Generator using opts.
func NewWithOptions(cfg DomainConfig, opts Options) (Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config: %w", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &domainGenerator{cfg: cfg, validators: opts.Validators}
	switch c := cfg.(type) {
	case TablesConfig:
		g.generate = func(src random.Source) (*Question, error) { return GenerateTables(c, src) }
	case PracticeConfig:
		g.generate = func(src random.Source) (*Question, error) { return GeneratePractice(c, src) }
	case PowersConfig:
		g.generate = func(src random.Source) (*Question, error) { return GeneratePowers(c, src) }
	case FractionsConfig:
		g.generate = func(src random.Source) (*Question, error) { return GenerateFractions(c, src) }
	case AlphabetConfig:
		g.generate = func(src random.Source) (*Question, error) { return GenerateAlphabet(c, src) }
	default:
		return nil, fmt.Errorf("unsupported config type %T: %w", cfg, ErrInvalidConfig)
	}
	return g, nil
}

func (g *domainGenerator) Config() DomainConfig { return g.cfg }

func (g *domainGenerator) Generate(src random.Source) (*Question, error) {
	q, err := g.generate(src)
	if err != nil {
		return nil, err
	}
	if verr := runValidators(g.validators, q); verr != nil {
		return nil, &GenerationError{Domain: g.cfg.Domain(), Reason: verr.Error(), Err: verr}
	}
	return q, nil
}
