package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"geosearch/internal/ui/input/types"
)

// PageBarMode moves a cursor over the page buttons
type PageBarMode struct {
	cursor int
}

func NewPageBarMode() *PageBarMode {
	return &PageBarMode{cursor: 1}
}

func (m *PageBarMode) Name() string {
	return "pages"
}

// Cursor returns the page button under the cursor
func (m *PageBarMode) Cursor() int {
	return m.cursor
}

// SetCursor places the cursor on page, bounded by the page count
func (m *PageBarMode) SetCursor(page, pages int) {
	if pages < 1 {
		m.cursor = 1
		return
	}
	switch {
	case page < 1:
		m.cursor = 1
	case page > pages:
		m.cursor = pages
	default:
		m.cursor = page
	}
}

func (m *PageBarMode) Enter(ctx types.Context) []types.Action {
	m.SetCursor(ctx.CurrentPage(), ctx.Pages())
	return nil
}

func (m *PageBarMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PageBarMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	pages := ctx.Pages()

	switch msg.String() {
	case "q", "esc":
		return []types.Action{types.QuitAction{}}, true
	case "?":
		return []types.Action{types.ShowHelpAction{}}, true
	case "left", "h":
		m.SetCursor(m.cursor-1, pages)
		return nil, true
	case "right", "l":
		m.SetCursor(m.cursor+1, pages)
		return nil, true
	case "home", "g":
		m.SetCursor(1, pages)
		return nil, true
	case "end", "G":
		m.SetCursor(pages, pages)
		return nil, true
	case "enter", " ":
		if pages == 0 {
			return nil, true
		}
		return []types.Action{types.GoToPageAction{Page: m.cursor}}, true
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if r >= '1' && r <= '9' {
			page := int(r - '0')
			if page <= pages {
				m.SetCursor(page, pages)
				return []types.Action{types.GoToPageAction{Page: page}}, true
			}
			return nil, true
		}
	}

	return nil, false
}
