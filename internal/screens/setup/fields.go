package setup

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

type fieldKind int

const (
	kindChips fieldKind = iota
	kindStepper
	kindInput
)

// field is one row of the setup form.
type field struct {
	key   string
	label string
	note  string
	kind  fieldKind

	chips  components.Chips
	values []string // chip values, parallel to chips.Options

	value, min, max int // stepper

	input components.TextInput
}

func chipField(key, label string, options, values []string, multi bool, on []int) *field {
	return &field{
		key:    key,
		label:  label,
		kind:   kindChips,
		chips:  components.NewChips(options, multi, on...),
		values: values,
	}
}

func stepperField(key, label string, value, lo, hi int) *field {
	return &field{
		key:   key,
		label: label,
		kind:  kindStepper,
		value: min(max(value, lo), hi),
		min:   lo,
		max:   hi,
	}
}

func inputField(key, label, placeholder, value string, width int, allowed func(rune) bool) *field {
	in := components.NewTextInput(placeholder, width)
	in.Allowed = allowed
	in.SetValue(value)
	in.Blur()
	return &field{
		key:   key,
		label: label,
		kind:  kindInput,
		input: in,
	}
}

// numberRange returns the chip labels lo..hi.
func numberRange(lo, hi int) []string {
	out := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}

// indicesOf maps selected values onto chip indices, skipping values that
// have no chip.
func indicesOf(values []string, selected []string) []int {
	var out []int
	for _, s := range selected {
		for i, v := range values {
			if v == s {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func (f *field) focus() tea.Cmd {
	switch f.kind {
	case kindChips:
		f.chips.Focused = true
	case kindInput:
		return f.input.Focus()
	}
	return nil
}

func (f *field) blur() {
	switch f.kind {
	case kindChips:
		f.chips.Focused = false
	case kindInput:
		f.input.Blur()
	}
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	switch f.kind {
	case kindChips:
		var cmd tea.Cmd
		f.chips, cmd = f.chips.Update(msg)
		return cmd
	case kindStepper:
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			switch kmsg.String() {
			case "left", "h", "-":
				if f.value > f.min {
					f.value--
				}
			case "right", "l", "+":
				if f.value < f.max {
					f.value++
				}
			}
		}
		return nil
	case kindInput:
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return cmd
	}
	return nil
}

// selected returns the chip values that are on.
func (f *field) selected() []string {
	var out []string
	for _, i := range f.chips.Indices() {
		out = append(out, f.values[i])
	}
	return out
}

// ints returns the selected chip values as integers.
func (f *field) ints() []int {
	var out []int
	for _, v := range f.selected() {
		n, err := strconv.Atoi(v)
		if err == nil {
			out = append(out, n)
		}
	}
	return out
}

func (f *field) view(width int, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	prefix := "  "
	if focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		prefix = "▸ "
	}
	out := labelStyle.Render(prefix+f.label) + "\n"

	switch f.kind {
	case kindChips:
		out += f.chips.View(width)
	case kindStepper:
		arrows := lipgloss.NewStyle().Foreground(theme.TextDim)
		if focused {
			arrows = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
		}
		out += arrows.Render("◂ ") +
			theme.Prompt.Render(fmt.Sprintf("%d", f.value)) +
			arrows.Render(" ▸")
	case kindInput:
		out += f.input.View()
	}

	if f.note != "" {
		out += "\n" + theme.Hint.Render(f.note)
	}
	return out
}
