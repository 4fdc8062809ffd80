package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geosearch/internal/domain"
	"geosearch/internal/ui/input/types"
)

// EmptyStateText is shown in the table before the first search
const EmptyStateText = "Start searching"

// Row is one line of the results table
type Row struct {
	Index int
	Place domain.Place
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Focus        types.Field
	QueryInput   string
	LimitInput   string
	PerPageInput string

	Loading bool
	Spinner string
	Message string // error text replacing the table rows
	Warning string
	Status  string

	Rows        []Row
	PageButtons []PageButton
	PageCursor  int

	Help string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	tableRender *TableRenderer
	pagesRender *PageBarRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		tableRender: NewTableRenderer(styles),
		pagesRender: NewPageBarRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render("geosearch"))
	content.WriteString("\n")
	content.WriteString(r.renderSearchBox(state))
	content.WriteString("\n\n")

	if state.Loading {
		content.WriteString(r.styles.StatusLoading.Render(state.Spinner + " Searching..."))
		content.WriteString("\n")
	} else {
		content.WriteString(r.tableRender.Render(state.Rows, state.Message))
		content.WriteString("\n")
		if len(state.Rows) > 0 {
			content.WriteString("\n")
			content.WriteString(r.pagesRender.Render(state.PageButtons, state.PageCursor, state.Focus == types.FieldPages))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(r.renderSizeControls(state))
	content.WriteString("\n")

	if state.Warning != "" {
		content.WriteString(r.styles.StatusWarning.Render("⚠ " + state.Warning))
		content.WriteString("\n")
	}
	if state.Status != "" {
		content.WriteString(r.styles.StatusError.Render(state.Status))
		content.WriteString("\n")
	}

	if state.Help != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		// Account for container padding (1 top, 1 bottom)
		if padding := state.Height - 2 - currentLines - 1; padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.Help))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderSearchBox(state ViewState) string {
	box := r.styles.SearchBox
	if state.Focus == types.FieldQuery {
		box = r.styles.SearchFocused
	}

	width := state.Width - 4 - 12 // main padding and the shortcut hint
	if width < 30 {
		width = 30
	}
	input := box.Width(width).Render(state.QueryInput)
	hint := r.styles.Shortcut.Render("Ctrl+/")

	return lipgloss.JoinHorizontal(lipgloss.Center, input, " ", hint)
}

func (r *Renderer) renderSizeControls(state ViewState) string {
	label := func(text string, field types.Field) string {
		if state.Focus == field {
			return r.styles.FocusedLabel.Render(text)
		}
		return r.styles.Label.Render(text)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		label("Results per page: ", types.FieldLimit), state.LimitInput,
		"   ",
		label("Show per page: ", types.FieldPerPage), state.PerPageInput,
	)
}
