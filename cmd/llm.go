package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(contextOf(cmd), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		writeLLMEvents(cmd.OutOrStdout(), events, purpose)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsage(contextOf(cmd))
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		writeLLMUsage(cmd.OutOrStdout(), usage)
		return nil
	},
}

func writeLLMEvents(w io.Writer, events []store.LLMRequestRecord, purpose string) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, e := range events {
		if purpose != "" && e.Purpose != purpose {
			continue
		}
		ok := "✓"
		if !e.Success {
			ok = "✗ " + truncate(e.ErrorMessage, 40)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.Sequence,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

func writeLLMUsage(w io.Writer, usage []store.LLMUsage) {
	if len(usage) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintf(w, "%-28s  %-12s  %6s  %6s  %10s  %10s  %8s  %9s\n",
		"Model", "Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	var (
		totalCalls, totalIn, totalOut int
		totalCost                     float64
		unknownModels                 []string
	)
	for _, u := range usage {
		cost := "?"
		if c, known := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); known {
			totalCost += c
			cost = formatCost(c)
		} else if !slices.Contains(unknownModels, u.Model) {
			unknownModels = append(unknownModels, u.Model)
		}
		fmt.Fprintf(w, "%-28s  %-12s  %6d  %6d  %10d  %10d  %8.0f  %9s\n",
			truncate(u.Model, 28), u.Purpose, u.Requests, u.Failures,
			u.InputTokens, u.OutputTokens, u.AvgLatencyMs, cost)
		totalCalls += u.Requests
		totalIn += u.InputTokens
		totalOut += u.OutputTokens
	}

	fmt.Fprintln(w, strings.Repeat("─", 100))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-28s  %-12s  %6d  %6s  %10d  %10d  %8s  %9s\n",
		label, "", totalCalls, "", totalIn, totalOut, "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. explain)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
