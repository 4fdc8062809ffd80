package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"geosearch/internal/ui/input/types"
)

// TextInputMode is a base for fields backed by a text input
type TextInputMode struct {
	field     types.Field
	name      string
	textInput *textinput.Model
}

func NewTextInputMode(field types.Field, name string, ti *textinput.Model) TextInputMode {
	return TextInputMode{
		field:     field,
		name:      name,
		textInput: ti,
	}
}

func (m TextInputMode) Name() string {
	return m.name
}

func (m TextInputMode) Field() types.Field {
	return m.field
}

// TextInput returns the text input this field edits
func (m TextInputMode) TextInput() *textinput.Model {
	return m.textInput
}

func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Focus()
		m.textInput.CursorEnd()
	}
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "esc":
		return []types.Action{types.FocusAction{Field: types.FieldQuery}}, true
	default:
		// Returning false lets the handler feed the key to the text input
		return nil, false
	}
}
