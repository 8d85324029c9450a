// Package config loads mathdrill settings from an optional YAML file, a
// .env file and MATHDRILL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MATHDRILL"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	DB      DB      `mapstructure:"db"`      // database settings
	Log     Log     `mapstructure:"log"`     // logging settings
	Presets Presets `mapstructure:"presets"` // starting configs per domain
}

// DB contains database-related configuration parameters.
type DB struct {
	Path string `mapstructure:"path"` // sqlite file; empty means store.DefaultDBPath
}

// Log configures the file logger. The TUI owns the terminal, so logs never
// go to stdout.
type Log struct {
	Level string `mapstructure:"level"` // debug, info, warn, error or off
	File  string `mapstructure:"file"`
}

// Presets are the domain configs that seed the setup screens and the play
// command.
type Presets struct {
	Tables    problemgen.TablesConfig    `mapstructure:"tables"`
	Practice  problemgen.PracticeConfig  `mapstructure:"practice"`
	Powers    problemgen.PowersConfig    `mapstructure:"powers"`
	Fractions problemgen.FractionsConfig `mapstructure:"fractions"`
	Alphabet  problemgen.AlphabetConfig  `mapstructure:"alphabet"`
}

// For returns the preset for d, or nil for an unknown domain.
func (p Presets) For(d problemgen.Domain) problemgen.DomainConfig {
	switch d {
	case problemgen.DomainTables:
		return p.Tables
	case problemgen.DomainPractice:
		return p.Practice
	case problemgen.DomainPowers:
		return p.Powers
	case problemgen.DomainFractions:
		return p.Fractions
	case problemgen.DomainAlphabet:
		return p.Alphabet
	default:
		return nil
	}
}

// DefaultPresets returns the built-in starting config of every domain.
func DefaultPresets() Presets {
	return Presets{
		Tables:    problemgen.DefaultConfig(problemgen.DomainTables).(problemgen.TablesConfig),
		Practice:  problemgen.DefaultConfig(problemgen.DomainPractice).(problemgen.PracticeConfig),
		Powers:    problemgen.DefaultConfig(problemgen.DomainPowers).(problemgen.PowersConfig),
		Fractions: problemgen.DefaultConfig(problemgen.DomainFractions).(problemgen.FractionsConfig),
		Alphabet:  problemgen.DefaultConfig(problemgen.DomainAlphabet).(problemgen.AlphabetConfig),
	}
}

// Validate checks every preset.
func (p Presets) Validate() error {
	for _, d := range problemgen.AllDomains {
		if err := p.For(d).Validate(); err != nil {
			return fmt.Errorf("presets.%s: %w", d, err)
		}
	}
	return nil
}

// Load reads configuration. path selects an explicit YAML file; when empty,
// config.yaml is looked up in the user config directory and a missing file
// is not an error. A .env file in the working directory is applied before
// the environment is read.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // presets.tables.timer -> MATHDRILL_PRESETS_TABLES_TIMER
	v.AutomaticEnv()

	// MATHDRILL_DB is shared with store.DefaultDBPath.
	_ = v.BindEnv("db.path", EnvPrefix+"_DB")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Presets.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogFile())

	p := DefaultPresets()

	tables := p.Tables
	v.SetDefault("presets.tables.selected", tables.Selected)
	v.SetDefault("presets.tables.timer", tables.Timer)

	practice := p.Practice
	v.SetDefault("presets.practice.digits1", practice.Digits1)
	v.SetDefault("presets.practice.digits2", practice.Digits2)
	v.SetDefault("presets.practice.timer", practice.Timer)

	powers := p.Powers
	v.SetDefault("presets.powers.selected", powers.Selected)
	v.SetDefault("presets.powers.range_max", powers.RangeMax)
	v.SetDefault("presets.powers.timer", powers.Timer)

	fractions := p.Fractions
	v.SetDefault("presets.fractions.selected", fractions.Selected)
	v.SetDefault("presets.fractions.timer", fractions.Timer)

	alphabet := p.Alphabet
	v.SetDefault("presets.alphabet.start", alphabet.Start)
	v.SetDefault("presets.alphabet.end", alphabet.End)
	v.SetDefault("presets.alphabet.mode", alphabet.Mode)
	v.SetDefault("presets.alphabet.timer", alphabet.Timer)
}

// Dir returns $XDG_CONFIG_HOME/mathdrill, falling back to ~/.config/mathdrill.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mathdrill"), nil
}

// defaultLogFile returns $XDG_STATE_HOME/mathdrill/mathdrill.log, falling
// back to ~/.local/state, or an empty path when no home is known.
func defaultLogFile() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "mathdrill", "mathdrill.log")
}
