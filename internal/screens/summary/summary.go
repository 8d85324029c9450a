package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(headline(sum)))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("%s · Duration: %s",
		sum.Domain.DisplayName(), formatDuration(sum.Duration))))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value int
		color lipgloss.Style
	}{
		{"Correct", sum.TotalCorrect, theme.Correct},
		{"Incorrect", sum.Wrong, theme.Incorrect},
		{"Time's up", sum.TimeUps, theme.TimeUp},
		{"Retries served", sum.Retries, theme.Body},
		{"Still in retry pool", sum.PoolSize, theme.Body},
	}
	for _, r := range rows {
		line := fmt.Sprintf("%-20s %s", r.label, r.color.Render(fmt.Sprintf("%4d", r.value)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	if !sum.StartedAt.IsZero() {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Started " + humanize.Time(sum.StartedAt)))
	}

	return b.String()
}

func headline(sum *session.SessionSummary) string {
	switch {
	case sum.TotalQuestions == 0:
		return "Session ended"
	case sum.Accuracy >= 0.9:
		return "Outstanding session!"
	case sum.Accuracy >= 0.6:
		return "Session complete!"
	default:
		return "Keep practising!"
	}
}

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
