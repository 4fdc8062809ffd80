package views

import (
	"strconv"
	"strings"
)

// PageButton is one entry of the page bar. A zero Page is an ellipsis
// standing for the pages left out between its neighbours.
type PageButton struct {
	Page   int
	Active bool
}

// PageBarRenderer handles rendering of the page buttons
type PageBarRenderer struct {
	styles *Styles
}

// NewPageBarRenderer creates a new page bar renderer
func NewPageBarRenderer(styles *Styles) *PageBarRenderer {
	return &PageBarRenderer{styles: styles}
}

// Render draws the buttons with the active page bracketed and highlighted.
// The cursor is only drawn while the bar has focus.
func (p *PageBarRenderer) Render(buttons []PageButton, cursor int, focused bool) string {
	if len(buttons) == 0 {
		return ""
	}

	out := make([]string, 0, len(buttons))
	for _, b := range buttons {
		label := strconv.Itoa(b.Page)
		switch {
		case b.Page == 0:
			out = append(out, p.styles.PageButton.Render("…"))
		case b.Active:
			out = append(out, p.styles.PageActive.Render("["+label+"]"))
		case focused && b.Page == cursor:
			out = append(out, p.styles.PageCursor.Render(label))
		default:
			out = append(out, p.styles.PageButton.Render(label))
		}
	}
	return strings.Join(out, " ")
}
