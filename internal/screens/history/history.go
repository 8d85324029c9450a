package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const (
	sessionLimit = 50
	missedLimit  = 3
)

// DomainReport is the per-domain block of the history screen.
type DomainReport struct {
	Domain problemgen.Domain
	Stats  store.DomainStats
	Missed []store.MissedPrompt
}

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Domains  []DomainReport
	Err      error
}

// HistoryScreen displays past sessions and the most-missed prompts per
// domain.
type HistoryScreen struct {
	env      screen.Env
	sessions []store.SessionSummaryRecord
	domains  []DomainReport
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env screen.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env.WithDefaults(),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.env.Events
	if repo == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	return func() tea.Msg {
		sessions, domains, err := Load(context.Background(), repo)
		return historyLoadedMsg{Sessions: sessions, Domains: domains, Err: err}
	}
}

// Load fetches recent sessions and every domain's report concurrently.
// Domains with no answers are omitted.
func Load(ctx context.Context, repo store.EventRepo) ([]store.SessionSummaryRecord, []DomainReport, error) {
	g, ctx := errgroup.WithContext(ctx)

	var sessions []store.SessionSummaryRecord
	g.Go(func() error {
		var err error
		sessions, err = repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
		return err
	})

	reports := make([]DomainReport, len(problemgen.AllDomains))
	for i, d := range problemgen.AllDomains {
		g.Go(func() error {
			st, err := repo.DomainStats(ctx, string(d))
			if err != nil {
				return fmt.Errorf("stats for %s: %w", d, err)
			}
			missed, err := repo.MostMissed(ctx, string(d), missedLimit)
			if err != nil {
				return fmt.Errorf("missed prompts for %s: %w", d, err)
			}
			reports[i] = DomainReport{Domain: d, Stats: st, Missed: missed}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var domains []DomainReport
	for _, r := range reports {
		if r.Stats.Attempts > 0 {
			domains = append(domains, r)
		}
	}
	return sessions, domains, nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.domains = msg.Domains
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 && len(s.domains) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	s.renderDomains(&b, width)
	s.renderSessions(&b, width)
	return b.String()
}

func (s *HistoryScreen) renderDomains(b *strings.Builder, width int) {
	if len(s.domains) == 0 {
		return
	}
	heading := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, heading.Render("By domain")))
	b.WriteString("\n")
	for _, r := range s.domains {
		line := fmt.Sprintf("%-22s %5s answered  %3.0f%% accuracy  avg %.1fs",
			r.Domain.DisplayName(),
			humanize.Comma(int64(r.Stats.Attempts)),
			r.Stats.Accuracy()*100,
			r.Stats.AvgTimeMs/1000)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render(line)))
		b.WriteString("\n")
		if len(r.Missed) > 0 {
			var parts []string
			for _, m := range r.Missed {
				parts = append(parts, fmt.Sprintf("%s = %s (×%d)", m.Prompt, m.Answer, m.Misses))
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				dim.Render("most missed: "+strings.Join(parts, ", "))))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func (s *HistoryScreen) renderSessions(b *strings.Builder, width int) {
	if len(s.sessions) == 0 {
		return
	}
	heading := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, heading.Render("Recent sessions")))
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		d := problemgen.Domain(sess.Domain)
		line := fmt.Sprintf("%s%s  %-22s %d:%02d  %3d answered  %3.0f%%",
			prefix,
			sess.Timestamp.Format("Jan 02 15:04"),
			d.DisplayName(),
			sess.DurationSecs/60, sess.DurationSecs%60,
			sess.Answered(),
			sess.Accuracy()*100)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    ✓ %d  ✗ %d  ⏱ %d  ↻ %d retries  (%s)",
				sess.Correct, sess.Wrong, sess.TimeUps, sess.Retries, humanize.Time(sess.Timestamp))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}
}
