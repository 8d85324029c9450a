package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// domainFlags lists the config flags each domain accepts besides --timer.
var domainFlags = map[problemgen.Domain][]string{
	problemgen.DomainTables:    {"tables"},
	problemgen.DomainPractice:  {"digits1", "digits2"},
	problemgen.DomainPowers:    {"ops", "range-max"},
	problemgen.DomainFractions: {"formats"},
	problemgen.DomainAlphabet:  {"start", "end", "mode"},
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntSlice("tables", nil, "Tables to practice (tables)")
	f.IntSlice("digits1", nil, "Digit counts for the first operand (practice)")
	f.IntSlice("digits2", nil, "Digit counts for the second operand (practice)")
	f.StringSlice("ops", nil, "Operations: square, cube, square_root, cube_root (powers)")
	f.Int("range-max", 0, "Largest base, 2 or more (powers)")
	f.StringSlice("formats", nil, "Answer formats: fraction, decimal (fractions)")
	f.String("start", "", "First letter of the range (alphabet)")
	f.String("end", "", "Last letter of the range (alphabet)")
	f.String("mode", "", "letter_to_position, position_to_letter or reverse_letter (alphabet)")
	f.Int("timer", 0, "Seconds per question, 0 disables the countdown")
}

// parseDomainArg resolves the positional domain argument.
func parseDomainArg(arg string) (problemgen.Domain, error) {
	d, ok := problemgen.ParseDomain(arg)
	if !ok {
		return "", fmt.Errorf("unknown domain %q (want one of %s)", arg, strings.Join(domainNames(), ", "))
	}
	return d, nil
}

// configFromFlags starts from the preset for d and overrides every field
// whose flag was set. Flags belonging to another domain are rejected.
func configFromFlags(cmd *cobra.Command, d problemgen.Domain, presets config.Presets) (problemgen.DomainConfig, error) {
	f := cmd.Flags()
	for other, names := range domainFlags {
		if other == d {
			continue
		}
		for _, name := range names {
			if f.Changed(name) {
				return nil, fmt.Errorf("flag --%s does not apply to %s", name, d)
			}
		}
	}

	var cfg problemgen.DomainConfig
	switch c := presets.For(d).(type) {
	case problemgen.TablesConfig:
		if f.Changed("tables") {
			c.Selected, _ = f.GetIntSlice("tables")
		}
		cfg = c
	case problemgen.PracticeConfig:
		if f.Changed("digits1") {
			c.Digits1, _ = f.GetIntSlice("digits1")
		}
		if f.Changed("digits2") {
			c.Digits2, _ = f.GetIntSlice("digits2")
		}
		cfg = c
	case problemgen.PowersConfig:
		if f.Changed("ops") {
			ops, _ := f.GetStringSlice("ops")
			c.Selected = make([]problemgen.PowerOp, len(ops))
			for i, op := range ops {
				c.Selected[i] = problemgen.PowerOp(strings.ToLower(op))
			}
		}
		if f.Changed("range-max") {
			c.RangeMax, _ = f.GetInt("range-max")
		}
		cfg = c
	case problemgen.FractionsConfig:
		if f.Changed("formats") {
			formats, _ := f.GetStringSlice("formats")
			c.Selected = make([]problemgen.FractionFormat, len(formats))
			for i, ff := range formats {
				c.Selected[i] = problemgen.FractionFormat(strings.ToLower(ff))
			}
		}
		cfg = c
	case problemgen.AlphabetConfig:
		if f.Changed("start") {
			c.Start, _ = f.GetString("start")
		}
		if f.Changed("end") {
			c.End, _ = f.GetString("end")
		}
		if f.Changed("mode") {
			mode, _ := f.GetString("mode")
			c.Mode = problemgen.AlphabetMode(mode)
		}
		cfg = c
	default:
		return nil, fmt.Errorf("no preset for domain %q", d)
	}

	if f.Changed("timer") {
		secs, _ := f.GetInt("timer")
		cfg = problemgen.WithTimer(cfg, secs)
	}
	return cfg, nil
}
