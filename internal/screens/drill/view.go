package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Feedback banners.
const (
	msgCorrect      = "Nicely done!"
	msgWrong        = "Incorrect"
	msgTimeUp       = "Time's Up!"
	msgNoQuestion   = "No question available: Invalid Config"
	msgCorrectIs    = "Correct answer: %s"
	msgPressAnyKey  = "Press any key to continue..."
	msgExplainOffer = "Press ? for a worked explanation"
)

func (d *DrillScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case d.sess.Current() == nil:
		body = d.renderPlaceholder(cw)
	case d.sess.FeedbackStatus().Answered():
		body = d.renderQuestion(cw) + "\n\n" + d.renderFeedback(cw)
	default:
		body = d.renderQuestion(cw)
	}

	content := d.renderInfoLine(cw) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)) +
		"\n\n" + body
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderInfoLine shows the running score and whether the question is a retry.
func (d *DrillScreen) renderInfoLine(cw int) string {
	sum := d.sess.Summary()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Q %d", max(sum.Served, 1)))
	if d.sess.FromPool() {
		left += "  " + theme.TimeUp.Render("↻ RETRY")
	}

	right := fmt.Sprintf("%s %d  %s %d  %s %d",
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), sum.TotalCorrect,
		lipgloss.NewStyle().Foreground(theme.Error).Render("✗"), sum.Wrong,
		lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"), sum.TimeUps,
	)

	gap := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (d *DrillScreen) renderQuestion(cw int) string {
	q := d.sess.Current()
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var b strings.Builder
	if bar := d.renderTimer(cw); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n\n")
	}

	b.WriteString(center.Render(theme.Prompt.Render(q.Prompt)))
	b.WriteString("\n")
	if q.Hint != "" {
		b.WriteString(center.Render(theme.Hint.Render(q.Hint)))
	}
	b.WriteString("\n\n")
	b.WriteString(center.Render("Answer: " + d.input.View()))
	return b.String()
}

// renderTimer draws the countdown bar. Nothing is drawn without a timer.
func (d *DrillScreen) renderTimer(cw int) string {
	if d.sess.Timer() <= 0 {
		return ""
	}
	cd := d.countdown
	if !d.awaitingInput() {
		cd = session.Countdown{}
	}
	fill := theme.TimerColor(cd.Fraction)
	bar := components.ProgressBar{
		Label:   fmt.Sprintf("⏱ %4.1fs", cd.Remaining.Seconds()),
		Percent: cd.Fraction,
		Width:   cw,
		Fill:    &fill,
	}
	return bar.View()
}

func (d *DrillScreen) renderFeedback(cw int) string {
	res, ok := d.sess.LastResult()
	if !ok {
		return ""
	}
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var lines []string
	switch res.Status {
	case session.StatusCorrect:
		lines = append(lines, center.Render(theme.Correct.Render(msgCorrect)))
	case session.StatusWrong:
		lines = append(lines,
			center.Render(theme.Incorrect.Render(msgWrong)),
			center.Render(theme.Body.Render(fmt.Sprintf(msgCorrectIs, res.CanonicalAnswer))))
	case session.StatusTimeUp:
		lines = append(lines,
			center.Render(theme.TimeUp.Render(msgTimeUp)),
			center.Render(theme.Body.Render(fmt.Sprintf(msgCorrectIs, res.CanonicalAnswer))))
	}

	if res.Status != session.StatusCorrect {
		lines = append(lines, "", d.renderExplanation(cw, res))
	}

	lines = append(lines, "", center.Render(theme.Hint.Render(msgPressAnyKey)))
	return strings.Join(lines, "\n")
}

func (d *DrillScreen) renderExplanation(cw int, res session.Result) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	switch {
	case d.explaining:
		return center.Render(theme.Hint.Render("Thinking..."))
	case d.explanation != nil:
		var b strings.Builder
		for i, step := range d.explanation.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		if d.explanation.Tip != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("Tip: " + d.explanation.Tip))
		}
		return components.ArcadeCard(strings.TrimRight(b.String(), "\n"), cw)
	default:
		var out []string
		if res.Question.Explanation != "" {
			out = append(out, center.Render(theme.Body.Render(res.Question.Explanation)))
		}
		out = append(out, center.Render(theme.Hint.Render(msgExplainOffer)))
		return strings.Join(out, "\n")
	}
}

func (d *DrillScreen) renderPlaceholder(cw int) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	lines := []string{center.Render(theme.Incorrect.Render(msgNoQuestion))}
	if err := d.sess.Err(); err != nil {
		lines = append(lines, center.Render(theme.Hint.Render(err.Error())))
	}
	lines = append(lines, "", center.Render(theme.Hint.Render("Press R to retry or Esc to finish")))
	return strings.Join(lines, "\n")
}
