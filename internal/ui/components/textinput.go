package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a rune filter and an optional
// suffix adornment such as "%".
type TextInput struct {
	Model    textinput.Model
	MaxWidth int

	// Allowed filters typed runes. Nil accepts everything.
	Allowed func(r rune) bool

	// Suffix is rendered after the input, outside the editable text.
	Suffix string
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
		ti.SetWidth(maxWidth)
	}

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Digits accepts 0-9.
func Digits(r rune) bool { return r >= '0' && r <= '9' }

// Numeric accepts digits, a sign, a decimal point and thousands commas.
func Numeric(r rune) bool { return Digits(r) || strings.ContainsRune("-.,", r) }

// FractionChars accepts digits and a slash.
func FractionChars(r rune) bool { return Digits(r) || r == '/' }

// Letters accepts ASCII letters.
func Letters(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Key presses carrying text are dropped unless
// every rune passes Allowed.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && t.Allowed != nil && kmsg.Text != "" {
		for _, r := range kmsg.Text {
			if !t.Allowed(r) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Suffix != "" {
		view += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + t.Suffix)
	}
	return view
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

// NumericValue returns the input value as an integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}
