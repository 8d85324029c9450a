package problemgen

import (
	"fmt"
	"strings"
)

// Declared bounds for user-supplied parameters.
const (
	MinTable = 1
	MaxTable = 99

	MinDigits = 1
	MaxDigits = 7 // 7×7 digits keeps products below 2^53

	MaxRange = 100

	MaxTimerSeconds = 3600
)

// DomainConfig is the parameter record for one practice domain.
type DomainConfig interface {
	// Domain returns the practice category this config drives.
	Domain() Domain

	// Validate returns a *ConfigError wrapping ErrInvalidConfig when the
	// config cannot be handed to a generator.
	Validate() error

	// TimerSeconds is the per-question countdown. Zero disables it.
	TimerSeconds() int
}

// TablesConfig drives the multiplication tables generator.
type TablesConfig struct {
	Selected []int `mapstructure:"selected" json:"selected"`
	Timer    int   `mapstructure:"timer" json:"timer"`
}

func (c TablesConfig) Domain() Domain     { return DomainTables }
func (c TablesConfig) TimerSeconds() int { return c.Timer }

func (c TablesConfig) Validate() error {
	if len(c.Selected) == 0 {
		return &ConfigError{Domain: DomainTables, Field: "selected",
			Message: "Please select at least one multiplication table to practice."}
	}
	for _, t := range c.Selected {
		if t < MinTable || t > MaxTable {
			return &ConfigError{Domain: DomainTables, Field: "selected",
				Message: fmt.Sprintf("Table %d is outside %d..%d.", t, MinTable, MaxTable)}
		}
	}
	return validateTimer(DomainTables, c.Timer)
}

// PracticeConfig drives the multi-digit multiplication generator.
type PracticeConfig struct {
	Digits1 []int `mapstructure:"digits1" json:"digits1"`
	Digits2 []int `mapstructure:"digits2" json:"digits2"`
	Timer   int   `mapstructure:"timer" json:"timer"`
}

func (c PracticeConfig) Domain() Domain     { return DomainPractice }
func (c PracticeConfig) TimerSeconds() int { return c.Timer }

func (c PracticeConfig) Validate() error {
	if len(c.Digits1) == 0 || len(c.Digits2) == 0 {
		return &ConfigError{Domain: DomainPractice, Field: "digits",
			Message: "Please select the number of digits for both numbers."}
	}
	for _, d := range append(append([]int(nil), c.Digits1...), c.Digits2...) {
		if d < MinDigits || d > MaxDigits {
			return &ConfigError{Domain: DomainPractice, Field: "digits",
				Message: fmt.Sprintf("Digit count %d is outside %d..%d.", d, MinDigits, MaxDigits)}
		}
	}
	return validateTimer(DomainPractice, c.Timer)
}

// PowerOp is one of the operations of the powers generator.
type PowerOp string

const (
	OpSquare     PowerOp = "square"
	OpCube       PowerOp = "cube"
	OpSquareRoot PowerOp = "square_root"
	OpCubeRoot   PowerOp = "cube_root"
)

// AllPowerOps lists the power operations in display order.
var AllPowerOps = []PowerOp{OpSquare, OpCube, OpSquareRoot, OpCubeRoot}

// DisplayName returns the label used on the setup screen.
func (op PowerOp) DisplayName() string {
	switch op {
	case OpSquare:
		return "Squares"
	case OpCube:
		return "Cubes"
	case OpSquareRoot:
		return "Square roots"
	case OpCubeRoot:
		return "Cube roots"
	default:
		return string(op)
	}
}

// cubic reports whether the op is limited by CubeRangeCap.
func (op PowerOp) cubic() bool {
	return op == OpCube || op == OpCubeRoot
}

// PowersConfig drives the powers and roots generator.
type PowersConfig struct {
	Selected []PowerOp `mapstructure:"selected" json:"selected"`
	RangeMax int       `mapstructure:"range_max" json:"range_max"`
	Timer    int       `mapstructure:"timer" json:"timer"`
}

func (c PowersConfig) Domain() Domain     { return DomainPowers }
func (c PowersConfig) TimerSeconds() int { return c.Timer }

func (c PowersConfig) Validate() error {
	if len(c.Selected) == 0 {
		return &ConfigError{Domain: DomainPowers, Field: "selected",
			Message: "Please select at least one operation."}
	}
	for _, op := range c.Selected {
		switch op {
		case OpSquare, OpCube, OpSquareRoot, OpCubeRoot:
		default:
			return &ConfigError{Domain: DomainPowers, Field: "selected",
				Message: fmt.Sprintf("Unknown operation %q.", op)}
		}
	}
	if c.RangeMax < 0 || c.RangeMax > MaxRange {
		return &ConfigError{Domain: DomainPowers, Field: "range_max",
			Message: fmt.Sprintf("Range must be between 0 and %d.", MaxRange)}
	}
	return validateTimer(DomainPowers, c.Timer)
}

// FractionFormat selects which side of the conversion the learner answers.
type FractionFormat string

const (
	// FormatFraction shows a percentage and expects "n/d".
	FormatFraction FractionFormat = "fraction"

	// FormatDecimal shows "n/d" and expects the percentage.
	FormatDecimal FractionFormat = "decimal"
)

// AllFractionFormats lists the fraction formats in display order.
var AllFractionFormats = []FractionFormat{FormatFraction, FormatDecimal}

// DisplayName returns the label used on the setup screen.
func (f FractionFormat) DisplayName() string {
	switch f {
	case FormatFraction:
		return "Percent → Fraction"
	case FormatDecimal:
		return "Fraction → Percent"
	default:
		return string(f)
	}
}

// FractionsConfig drives the fraction/percent generator.
type FractionsConfig struct {
	Selected []FractionFormat `mapstructure:"selected" json:"selected"`
	Timer    int              `mapstructure:"timer" json:"timer"`
}

func (c FractionsConfig) Domain() Domain     { return DomainFractions }
func (c FractionsConfig) TimerSeconds() int { return c.Timer }

func (c FractionsConfig) Validate() error {
	if len(c.Selected) == 0 {
		return &ConfigError{Domain: DomainFractions, Field: "selected",
			Message: "Please select at least one answer format."}
	}
	for _, f := range c.Selected {
		if f != FormatFraction && f != FormatDecimal {
			return &ConfigError{Domain: DomainFractions, Field: "selected",
				Message: fmt.Sprintf("Unknown answer format %q.", f)}
		}
	}
	return validateTimer(DomainFractions, c.Timer)
}

// AlphabetMode is the sub-mode of the alphabet generator.
type AlphabetMode string

const (
	ModeLetterToPosition AlphabetMode = "letter_to_position"
	ModePositionToLetter AlphabetMode = "position_to_letter"
	ModeReverseLetter    AlphabetMode = "reverse_letter"
)

// AllAlphabetModes lists the alphabet modes in display order.
var AllAlphabetModes = []AlphabetMode{ModeLetterToPosition, ModePositionToLetter, ModeReverseLetter}

// DisplayName returns the label used on the setup screen.
func (m AlphabetMode) DisplayName() string {
	switch m {
	case ModeLetterToPosition:
		return "Letter → Position"
	case ModePositionToLetter:
		return "Position → Letter"
	case ModeReverseLetter:
		return "Reverse letter"
	default:
		return string(m)
	}
}

// AlphabetConfig drives the alphabet position generator.
type AlphabetConfig struct {
	Start string       `mapstructure:"start" json:"start"`
	End   string       `mapstructure:"end" json:"end"`
	Mode  AlphabetMode `mapstructure:"mode" json:"mode"`
	Timer int          `mapstructure:"timer" json:"timer"`
}

func (c AlphabetConfig) Domain() Domain     { return DomainAlphabet }
func (c AlphabetConfig) TimerSeconds() int { return c.Timer }

func (c AlphabetConfig) Validate() error {
	if strings.TrimSpace(c.Start) == "" || strings.TrimSpace(c.End) == "" {
		return &ConfigError{Domain: DomainAlphabet, Field: "letters",
			Message: "Please enter both start and end letters."}
	}
	for _, s := range []string{c.Start, c.End} {
		if _, ok := normalizeLetter(s); !ok {
			return &ConfigError{Domain: DomainAlphabet, Field: "letters",
				Message: fmt.Sprintf("%q is not a letter A-Z.", s)}
		}
	}
	switch c.Mode {
	case "", ModeLetterToPosition, ModePositionToLetter, ModeReverseLetter:
	default:
		return &ConfigError{Domain: DomainAlphabet, Field: "mode",
			Message: fmt.Sprintf("Unknown mode %q.", c.Mode)}
	}
	return validateTimer(DomainAlphabet, c.Timer)
}

func validateTimer(d Domain, secs int) error {
	if secs < 0 || secs > MaxTimerSeconds {
		return &ConfigError{Domain: d, Field: "timer",
			Message: fmt.Sprintf("Timer must be between 0 and %d seconds.", MaxTimerSeconds)}
	}
	return nil
}

// normalizeLetter upper-cases a single ASCII letter.
func normalizeLetter(s string) (byte, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return 0, false
	}
	return s[0], true
}

// DefaultConfig returns the starting parameters for a domain.
func DefaultConfig(d Domain) DomainConfig {
	switch d {
	case DomainTables:
		return TablesConfig{Selected: []int{2, 3, 4, 5, 6, 7, 8, 9, 10}, Timer: 10}
	case DomainPractice:
		return PracticeConfig{Digits1: []int{2}, Digits2: []int{2}}
	case DomainPowers:
		return PowersConfig{Selected: append([]PowerOp(nil), AllPowerOps...), RangeMax: 30}
	case DomainFractions:
		return FractionsConfig{Selected: append([]FractionFormat(nil), AllFractionFormats...)}
	case DomainAlphabet:
		return AlphabetConfig{Start: "A", End: "Z", Mode: ModeLetterToPosition}
	default:
		return nil
	}
}

// WithTimer returns a copy of cfg with the timer replaced.
func WithTimer(cfg DomainConfig, secs int) DomainConfig {
	switch c := cfg.(type) {
	case TablesConfig:
		c.Timer = secs
		return c
	case PracticeConfig:
		c.Timer = secs
		return c
	case PowersConfig:
		c.Timer = secs
		return c
	case FractionsConfig:
		c.Timer = secs
		return c
	case AlphabetConfig:
		c.Timer = secs
		return c
	default:
		return cfg
	}
}
