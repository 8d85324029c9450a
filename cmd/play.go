package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/screens/drill"
	"github.com/abhisek/mathdrill/internal/session"
)

var playCmd = &cobra.Command{
	Use:       "play <domain>",
	Short:     "Start a drill in the TUI, skipping the setup screen",
	Args:      cobra.ExactArgs(1),
	ValidArgs: domainNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDomainArg(args[0])
		if err != nil {
			return err
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		cfg, err := configFromFlags(cmd, d, rt.env.Presets)
		if err != nil {
			return err
		}
		sess, err := session.New(cfg, session.WithClock(rt.env.Now))
		if err != nil {
			return configErr(err)
		}
		return app.Run(rt.env, drill.New(rt.env, sess))
	},
}

func init() {
	addConfigFlags(playCmd)
}

func domainNames() []string {
	names := make([]string, len(problemgen.AllDomains))
	for i, d := range problemgen.AllDomains {
		names[i] = string(d)
	}
	return names
}

// configErr prefers the learner-facing message of a config error.
func configErr(err error) error {
	var cerr *problemgen.ConfigError
	if errors.As(err, &cerr) {
		return fmt.Errorf("invalid %s config: %s", cerr.Domain, cerr.Message)
	}
	return err
}
