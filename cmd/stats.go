package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/screens/history"
	"github.com/abhisek/mathdrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:       "stats [domain]",
	Short:     "Show accuracy and most-missed prompts per domain",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: domainNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := contextOf(cmd)
		repo := st.EventRepo()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			sessions, reports, err := history.Load(ctx, repo)
			if err != nil {
				return fmt.Errorf("load stats: %w", err)
			}
			writeStats(out, reports, sessions)
			return nil
		}

		d, err := parseDomainArg(args[0])
		if err != nil {
			return err
		}
		missed, _ := cmd.Flags().GetInt("missed")
		report, sessions, err := loadDomainStats(ctx, repo, d, missed)
		if err != nil {
			return err
		}
		writeStats(out, []history.DomainReport{report}, sessions)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("missed", 5, "Most-missed prompts to list for a single domain")
}

// loadDomainStats fetches one domain's totals, missed prompts and recent
// sessions concurrently.
func loadDomainStats(ctx context.Context, repo store.EventRepo, d problemgen.Domain, missedLimit int) (history.DomainReport, []store.SessionSummaryRecord, error) {
	report := history.DomainReport{Domain: d}
	var sessions []store.SessionSummaryRecord

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.Stats, err = repo.DomainStats(ctx, string(d))
		return err
	})
	g.Go(func() error {
		var err error
		report.Missed, err = repo.MostMissed(ctx, string(d), missedLimit)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = repo.QuerySessionSummaries(ctx, store.QueryOpts{Domain: string(d), Limit: 10})
		return err
	})
	if err := g.Wait(); err != nil {
		return history.DomainReport{}, nil, fmt.Errorf("load %s stats: %w", d, err)
	}
	return report, sessions, nil
}

func writeStats(w io.Writer, reports []history.DomainReport, sessions []store.SessionSummaryRecord) {
	var answered []history.DomainReport
	for _, r := range reports {
		if r.Stats.Attempts > 0 {
			answered = append(answered, r)
		}
	}
	if len(answered) == 0 {
		fmt.Fprintln(w, "No answers recorded yet.")
		return
	}

	fmt.Fprintf(w, "%-22s  %8s  %8s  %8s  %8s  %8s\n",
		"Domain", "Attempts", "Correct", "Time-up", "Accuracy", "Avg")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, r := range answered {
		s := r.Stats
		fmt.Fprintf(w, "%-22s  %8s  %8s  %8s  %7.0f%%  %7.1fs\n",
			r.Domain.DisplayName(),
			humanize.Comma(int64(s.Attempts)),
			humanize.Comma(int64(s.Correct)),
			humanize.Comma(int64(s.TimeUps)),
			s.Accuracy()*100,
			s.AvgTimeMs/1000)
	}

	for _, r := range answered {
		if len(r.Missed) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nMost missed in %s\n", r.Domain.DisplayName())
		for _, m := range r.Missed {
			fmt.Fprintf(w, "  %-20s = %-10s  %s\n", m.Prompt, m.Answer, humanize.Plural(m.Misses, "miss", "misses"))
		}
	}

	if len(sessions) > 0 {
		last := sessions[0]
		fmt.Fprintf(w, "\n%s, last played %s\n",
			humanize.Plural(len(sessions), "recent session", "recent sessions"),
			humanize.Time(last.Timestamp))
	}
}
