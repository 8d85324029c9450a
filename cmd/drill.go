package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/journal"
	"github.com/abhisek/mathdrill/internal/random"
	"github.com/abhisek/mathdrill/internal/session"
)

var drillCmd = &cobra.Command{
	Use:       "drill <domain>",
	Short:     "Run a drill on stdin/stdout without the TUI",
	Long:      "Line-mode drill: one question per line, answer and press Enter. Ctrl+D ends the drill.",
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
		opts := []session.Option{session.WithClock(rt.env.Now)}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			opts = append(opts, session.WithSource(random.NewSeeded(seed)))
		}
		sess, err := session.New(cfg, opts...)
		if err != nil {
			return configErr(err)
		}

		count, _ := cmd.Flags().GetInt("count")
		ld := &lineDrill{
			sess:    sess,
			journal: journal.New(rt.env.Events, rt.log),
			in:      cmd.InOrStdin(),
			out:     cmd.OutOrStdout(),
			count:   count,
		}
		return ld.Run(contextOf(cmd))
	},
}

func init() {
	addConfigFlags(drillCmd)
	drillCmd.Flags().IntP("count", "n", 10, "Questions to ask, 0 for no limit")
	drillCmd.Flags().Uint64("seed", 0, "Seed for a reproducible question sequence")
}

// lineDrill runs a session as a plain question/answer loop.
type lineDrill struct {
	sess    *session.Session
	journal *journal.Journal
	in      io.Reader
	out     io.Writer
	count   int
}

// Run asks questions until count is reached, input ends or no question can
// be generated, then prints the summary.
func (l *lineDrill) Run(ctx context.Context) error {
	startErr := l.sess.Start()
	l.journal.Start(ctx, l.sess)
	defer l.journal.End(ctx, l.sess)

	lines := bufio.NewScanner(l.in)
	asked := 0
	genErr := startErr

	for l.count <= 0 || asked < l.count {
		q := l.sess.Current()
		if q == nil {
			fmt.Fprintf(l.out, "No question available: %v\n", genErr)
			break
		}
		asked++
		l.ask(asked)

		res, ok := l.read(lines)
		if !ok {
			fmt.Fprintln(l.out)
			break
		}
		l.journal.Answer(ctx, l.sess.ID(), res)
		l.feedback(res)

		if l.count > 0 && asked >= l.count {
			break
		}
		genErr = l.sess.Acknowledge()
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	l.summary()
	return nil
}

func (l *lineDrill) ask(n int) {
	q := l.sess.Current()
	retry := ""
	if l.sess.FromPool() {
		retry = "  ↻ retry"
	}
	fmt.Fprintf(l.out, "\nQ%d%s\n  %s\n", n, retry, q.Prompt)
	if q.Hint != "" {
		fmt.Fprintf(l.out, "  (%s)\n", q.Hint)
	}
	if t := l.sess.Timer(); t > 0 {
		fmt.Fprintf(l.out, "  ⏱ %s\n", t)
	}
}

// read prompts until a non-blank answer is submitted. ok is false at end
// of input.
func (l *lineDrill) read(lines *bufio.Scanner) (session.Result, bool) {
	for {
		fmt.Fprint(l.out, "> ")
		if !lines.Scan() {
			return session.Result{}, false
		}
		res, err := l.sess.Submit(lines.Text())
		if errors.Is(err, session.ErrEmptyAnswer) {
			continue
		}
		if err != nil {
			return session.Result{}, false
		}
		return res, true
	}
}

func (l *lineDrill) feedback(res session.Result) {
	answer := res.CanonicalAnswer
	if res.Question.PercentInput {
		answer += "%"
	}
	switch res.Status {
	case session.StatusCorrect:
		fmt.Fprintln(l.out, "✓ Correct!")
	case session.StatusTimeUp:
		fmt.Fprintf(l.out, "⏱ Time's up! Answer: %s\n", answer)
	default:
		fmt.Fprintf(l.out, "✗ Wrong. Answer: %s\n", answer)
	}
}

func (l *lineDrill) summary() {
	sum := l.sess.Summary()
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, strings.Repeat("─", 40))
	fmt.Fprintf(l.out, "%s: %d/%d correct (%.0f%%) in %s\n",
		sum.Domain.DisplayName(), sum.TotalCorrect, sum.TotalQuestions,
		sum.Accuracy*100, sum.Duration.Round(time.Second))
	fmt.Fprintf(l.out, "Wrong %d · Time's up %d · Retries %d · Still in pool %d\n",
		sum.Wrong, sum.TimeUps, sum.Retries, sum.PoolSize)
}
