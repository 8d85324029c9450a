package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const arcadeKicker = "M · A · T · H"

const arcadeTitleFull = ` ██████╗ ██████╗ ██╗██╗     ██╗
 ██╔══██╗██╔══██╗██║██║     ██║
 ██║  ██║██████╔╝██║██║     ██║
 ██║  ██║██╔══██╗██║██║     ██║
 ██████╔╝██║  ██║██║███████╗███████╗
 ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚══════╝`

const arcadeTitleCompact = "M · A · T · H · D · R · I · L · L"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	if compact {
		return center.Render(style.Render(arcadeTitleCompact))
	}
	kicker := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(arcadeKicker)
	return center.Render(kicker + "\n" + style.Render(arcadeTitleFull))
}

// renderStatsBar renders lifetime totals in a bordered box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	accStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case !st.loaded:
		text = dimStyle.Render("loading stats...")
	case st.total.Attempts == 0:
		text = dimStyle.Render("No answers yet. Pick a drill!")
	case compact:
		text = fmt.Sprintf("%s %s %s",
			accStyle.Render(fmt.Sprintf("✓%d%%", percent(st.total.Accuracy()))),
			countStyle.Render(fmt.Sprintf("◆%s", humanize.Comma(int64(st.total.Attempts)))),
			lastText(st, true, lastStyle, dimStyle),
		)
	default:
		text = fmt.Sprintf("%s  %s  %s",
			accStyle.Render(fmt.Sprintf("✓ %d%% ACCURACY", percent(st.total.Accuracy()))),
			countStyle.Render(fmt.Sprintf("◆ %s ANSWERED", humanize.Comma(int64(st.total.Attempts)))),
			lastText(st, false, lastStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func lastText(st stats, compact bool, active, dim lipgloss.Style) string {
	if st.last == nil {
		if compact {
			return dim.Render("⚡-")
		}
		return dim.Render("⚡ NO SESSIONS")
	}
	if compact {
		return active.Render(fmt.Sprintf("⚡%d%%", percent(st.last.Accuracy())))
	}
	return active.Render(fmt.Sprintf("⚡ LAST %d%%", percent(st.last.Accuracy())))
}

func percent(f float64) int {
	return int(f*100 + 0.5)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// too short for bordered buttons.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
