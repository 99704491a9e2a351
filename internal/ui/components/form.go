package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/passgate/internal/ui/theme"
)

// FormErrorKey holds errors that belong to the whole form.
const FormErrorKey = "form"

const labelWidth = 20

// Form is a vertical list of text inputs followed by a submit button.
// Focus index len(Inputs) is the button.
type Form struct {
	Inputs []TextInput
	Submit Button
	focus  int
	errors map[string]string
}

// NewForm builds a form with the first input focused.
func NewForm(submit Button, inputs ...TextInput) *Form {
	f := &Form{
		Inputs: inputs,
		Submit: submit,
		errors: make(map[string]string),
	}
	f.setFocus(0)
	return f
}

// Init returns the blink command of the focused input.
func (f *Form) Init() tea.Cmd {
	return f.setFocus(f.focus)
}

// Input returns the field with the given id, or nil.
func (f *Form) Input(id string) *TextInput {
	for i := range f.Inputs {
		if f.Inputs[i].ID == id {
			return &f.Inputs[i]
		}
	}
	return nil
}

// Value returns the value of the field with the given id.
func (f *Form) Value(id string) string {
	if in := f.Input(id); in != nil {
		return in.Value()
	}
	return ""
}

// Focus returns the focus index.
func (f *Form) Focus() int {
	return f.focus
}

// FocusID focuses the field with the given id.
func (f *Form) FocusID(id string) tea.Cmd {
	for i := range f.Inputs {
		if f.Inputs[i].ID == id {
			return f.setFocus(i)
		}
	}
	return nil
}

func (f *Form) setFocus(i int) tea.Cmd {
	n := len(f.Inputs) + 1
	i = ((i % n) + n) % n
	f.focus = i

	var cmd tea.Cmd
	for j := range f.Inputs {
		if j == i {
			cmd = f.Inputs[j].Focus()
		} else {
			f.Inputs[j].Blur()
		}
	}
	f.Submit.Active = i == len(f.Inputs)
	return cmd
}

// SetError sets the message shown under a field, or under the form when
// key is FormErrorKey. Multi-line messages are allowed.
func (f *Form) SetError(key, msg string) {
	f.errors[key] = msg
}

// Error returns the message for key.
func (f *Form) Error(key string) string {
	return f.errors[key]
}

// ClearErrors removes all messages.
func (f *Form) ClearErrors() {
	clear(f.errors)
}

// Update moves focus on tab, shift+tab, up and down. Enter on a field
// advances; enter on the last field or the button presses the button.
// Everything else goes to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1)
		case "enter":
			if f.focus >= len(f.Inputs)-1 {
				return f.Submit.Press()
			}
			return f.setFocus(f.focus + 1)
		}
	}

	if f.focus < len(f.Inputs) {
		var cmd tea.Cmd
		f.Inputs[f.focus], cmd = f.Inputs[f.focus].Update(msg)
		return cmd
	}
	return nil
}

// Row renders one field with its error line, if any.
func (f *Form) Row(id string) string {
	in := f.Input(id)
	if in == nil {
		return ""
	}
	row := in.View(labelWidth)
	if msg := f.errors[id]; msg != "" {
		row += "\n" + f.Indent(theme.FieldError.Render(msg))
	}
	return row
}

// Indent pads s to line up with the input column.
func (f *Form) Indent(s string) string {
	pad := strings.Repeat(" ", labelWidth)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// Footer renders the form-level error and the submit button.
func (f *Form) Footer() string {
	var b strings.Builder
	if msg := f.errors[FormErrorKey]; msg != "" {
		b.WriteString(theme.FieldError.Render(msg))
		b.WriteString("\n\n")
	}
	b.WriteString(f.Submit.View())
	return b.String()
}

// View renders all rows and the footer.
func (f *Form) View() string {
	rows := make([]string, 0, len(f.Inputs)+1)
	for _, in := range f.Inputs {
		rows = append(rows, f.Row(in.ID))
	}
	rows = append(rows, "", f.Footer())
	return strings.Join(rows, "\n")
}
