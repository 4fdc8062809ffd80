package modes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"geosearch/internal/ui/input/types"
)

// NumberMode edits one of the numeric page size fields. Every edit that
// leaves a number in the field is reported; an empty field is not.
type NumberMode struct {
	TextInputMode
	onChange func(int) types.Action
}

// NewLimitMode edits the server-side page size
func NewLimitMode(ti *textinput.Model) *NumberMode {
	return &NumberMode{
		TextInputMode: NewTextInputMode(types.FieldLimit, "limit", ti),
		onChange:      func(v int) types.Action { return types.ChangeLimitAction{Value: v} },
	}
}

// NewPerPageMode edits how many rows are displayed
func NewPerPageMode(ti *textinput.Model) *NumberMode {
	return &NumberMode{
		TextInputMode: NewTextInputMode(types.FieldPerPage, "per-page", ti),
		onChange:      func(v int) types.Action { return types.ChangePerPageAction{Value: v} },
	}
}

func (m *NumberMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return []types.Action{types.FocusNextAction{}}, true
	case tea.KeyUp:
		return m.step(1), true
	case tea.KeyDown:
		return m.step(-1), true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				// swallow anything that is not a digit
				return nil, true
			}
		}
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

// step nudges the current value by delta; bounds are left to the controller
func (m *NumberMode) step(delta int) []types.Action {
	v, err := strconv.Atoi(m.textInput.Value())
	if err != nil {
		return nil
	}
	m.textInput.SetValue(strconv.Itoa(v + delta))
	return m.Changed(m.textInput.Value())
}

// Changed maps an edit of the text to actions
func (m *NumberMode) Changed(value string) []types.Action {
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return []types.Action{m.onChange(v)}
}
