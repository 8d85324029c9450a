package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect or change stored preferences",
}

var prefsTimerCmd = &cobra.Command{
	Use:   "timer <domain> [secs]",
	Short: "Get or set the per-question timer of a domain",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDomainArg(args[0])
		if err != nil {
			return err
		}

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := contextOf(cmd)
		prefs := st.PrefsRepo()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			secs, ok, err := prefs.Timer(ctx, string(d))
			if err != nil {
				return err
			}
			if !ok {
				secs = cfg.Presets.For(d).TimerSeconds()
				fmt.Fprintf(out, "%s: %s (preset)\n", d, formatTimer(secs))
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", d, formatTimer(secs))
			return nil
		}

		secs, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", args[1], err)
		}
		if secs < 0 || secs > problemgen.MaxTimerSeconds {
			return fmt.Errorf("timer must be between 0 and %d seconds", problemgen.MaxTimerSeconds)
		}
		if err := prefs.SetTimer(ctx, string(d), secs); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", d, formatTimer(secs))
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsTimerCmd)
}

func formatTimer(secs int) string {
	if secs == 0 {
		return "off"
	}
	return fmt.Sprintf("%ds", secs)
}
