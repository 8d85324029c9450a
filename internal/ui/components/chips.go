package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Chips is a horizontal row of toggleable options. In single mode exactly
// one chip is on; in multi mode any number may be.
type Chips struct {
	Options  []string
	Selected []bool
	Cursor   int
	Multi    bool
	Focused  bool
}

// NewChips creates a chip row. on lists the indices initially selected.
func NewChips(options []string, multi bool, on ...int) Chips {
	c := Chips{
		Options:  options,
		Selected: make([]bool, len(options)),
		Multi:    multi,
	}
	for _, i := range on {
		if i >= 0 && i < len(options) {
			c.Selected[i] = true
			if !multi {
				break
			}
		}
	}
	if !multi && len(c.Indices()) == 0 && len(options) > 0 {
		c.Selected[0] = true
	}
	if idx := c.Indices(); len(idx) > 0 {
		c.Cursor = idx[0]
	}
	return c
}

// Update handles ←/→ to move and space to toggle. In single mode moving
// the cursor also moves the selection.
func (c Chips) Update(msg tea.Msg) (Chips, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "right", "l":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space":
		if c.Multi {
			c.Selected[c.Cursor] = !c.Selected[c.Cursor]
		}
	case "a":
		if c.Multi {
			all := c.allOn()
			for i := range c.Selected {
				c.Selected[i] = !all
			}
		}
	default:
		return c, nil
	}

	if !c.Multi {
		c.selectOnly(c.Cursor)
	}
	return c, nil
}

func (c Chips) allOn() bool {
	for _, on := range c.Selected {
		if !on {
			return false
		}
	}
	return true
}

func (c *Chips) selectOnly(i int) {
	for j := range c.Selected {
		c.Selected[j] = j == i
	}
}

// Indices returns the selected option indices in display order.
func (c Chips) Indices() []int {
	var out []int
	for i, on := range c.Selected {
		if on {
			out = append(out, i)
		}
	}
	return out
}

// View renders the chips, wrapping to width.
func (c Chips) View(width int) string {
	var lines []string
	var line string
	for i, opt := range c.Options {
		style := theme.ChipOff
		if c.Selected[i] {
			style = theme.ChipOn
		}
		if c.Focused && i == c.Cursor {
			style = theme.ChipCursor
		}
		chip := style.Render(opt)
		if line != "" && width > 0 && lipgloss.Width(line)+1+lipgloss.Width(chip) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += chip
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
