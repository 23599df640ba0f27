package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/somdipdey/Learning-Styles/internal/ui/theme"
)

// NameField edits the display identity. It is inert until Edit is called
// and reports a change only when the trimmed value differs.
type NameField struct {
	input       textinput.Model
	placeholder string
}

// NewNameField shows value, or placeholder when value is blank.
func NewNameField(value, placeholder string, limit int) NameField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	return NameField{input: in, placeholder: placeholder}
}

// Edit starts editing.
func (f *NameField) Edit() tea.Cmd { return f.input.Focus() }

// Done stops editing.
func (f *NameField) Done() { f.input.Blur() }

// Editing reports whether keys go to the field.
func (f NameField) Editing() bool { return f.input.Focused() }

// Value is the raw text as typed.
func (f NameField) Value() string { return f.input.Value() }

// Update forwards msg to the input. changed is true when the trimmed name
// differs from before.
func (f NameField) Update(msg tea.Msg) (NameField, tea.Cmd, bool) {
	before := strings.TrimSpace(f.input.Value())
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, strings.TrimSpace(f.input.Value()) != before
}

func (f NameField) View() string {
	label := theme.Subtitle.Render("Name ")
	if f.Editing() {
		return theme.Selected.Render("Name ") + f.input.View()
	}
	value := strings.TrimSpace(f.input.Value())
	if value == "" {
		return label + theme.Hint.Render(f.placeholder+"  (tab to edit)")
	}
	return label + theme.Body.Render(value) + theme.Hint.Render("  (tab to edit)")
}
