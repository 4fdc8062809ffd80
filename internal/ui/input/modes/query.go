package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"geosearch/internal/ui/input/types"
)

// QueryMode edits the search text. Only enter submits; leaving the field or
// pausing while typing does not.
type QueryMode struct {
	TextInputMode
}

func NewQueryMode(ti *textinput.Model) *QueryMode {
	return &QueryMode{
		TextInputMode: NewTextInputMode(types.FieldQuery, "query", ti),
	}
}

func (m *QueryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "enter":
		return []types.Action{types.SubmitQueryAction{Query: m.textInput.Value()}}, true
	case "esc":
		return nil, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

// Changed maps an edit of the text to actions
func (m *QueryMode) Changed(value string) []types.Action {
	return []types.Action{types.UpdateQueryAction{Text: value}}
}
