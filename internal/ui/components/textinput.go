package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/passgate/internal/strength"
	"github.com/abhisek/passgate/internal/ui/theme"
)

const maskChar = '•'

// TextInput wraps bubbles/textinput with a field id, a label and change
// listeners. It is the strength.Source for password fields.
type TextInput struct {
	Model     textinput.Model
	ID        string
	Label     string
	Masked    bool
	listeners []func(string)
}

var _ strength.Source = (*TextInput)(nil)

// NewTextInput creates a plain text field.
func NewTextInput(id, label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, ID: id, Label: label}
}

// NewPasswordInput creates a field that echoes a mask instead of the value.
func NewPasswordInput(id, label, placeholder string) TextInput {
	t := NewTextInput(id, label, placeholder, 0)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = maskChar
	t.Masked = true
	return t
}

// OnInput registers fn to run with the new value each time it changes.
func (t *TextInput) OnInput(fn func(string)) {
	if fn == nil {
		return
	}
	t.listeners = append(t.listeners, fn)
}

// Update handles messages and notifies listeners when the value changed.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if after := t.Model.Value(); after != before {
		t.notify(after)
	}
	return t, cmd
}

// SetValue replaces the value, notifying listeners on change.
func (t *TextInput) SetValue(v string) {
	before := t.Model.Value()
	t.Model.SetValue(v)
	if after := t.Model.Value(); after != before {
		t.notify(after)
	}
}

func (t TextInput) notify(v string) {
	for _, fn := range t.listeners {
		fn(v)
	}
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Focus focuses the field and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the field has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// SetWidth sets the visible width of the input.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// View renders the label and the input on one line.
func (t TextInput) View(labelWidth int) string {
	label := theme.FieldLabel
	if t.Focused() {
		label = theme.FieldLabelFocused
	}
	marker := "  "
	if t.Focused() {
		marker = "▸ "
	}
	return label.Width(labelWidth).Render(marker+t.Label) + t.Model.View()
}
