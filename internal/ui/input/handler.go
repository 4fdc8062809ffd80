package input

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"geosearch/internal/ui/input/modes"
	"geosearch/internal/ui/input/types"
)

// textField is a field handler that edits a text input
type textField interface {
	types.FieldHandler
	TextInput() *textinput.Model
	Changed(value string) []types.Action
}

// Handler routes key presses to the focused field
type Handler struct {
	focus     types.Field
	fields    map[types.Field]types.FieldHandler
	pageBar   *modes.PageBarMode
	shortcuts *Shortcuts

	query   textinput.Model
	limit   textinput.Model
	perPage textinput.Model
}

// New creates a handler with focus on the query input
func New(shortcuts *Shortcuts, limit, perPage int) *Handler {
	h := &Handler{
		focus:     types.FieldQuery,
		fields:    make(map[types.Field]types.FieldHandler),
		shortcuts: shortcuts,
		query:     textinput.New(),
		limit:     textinput.New(),
		perPage:   textinput.New(),
		pageBar:   modes.NewPageBarMode(),
	}

	h.query.Placeholder = "Search for places..."
	h.query.Prompt = ""
	h.query.CharLimit = 100

	for _, ti := range []*textinput.Model{&h.limit, &h.perPage} {
		ti.Prompt = ""
		ti.CharLimit = 2
		ti.Width = 3
	}
	h.limit.SetValue(strconv.Itoa(limit))
	h.perPage.SetValue(strconv.Itoa(perPage))

	h.fields[types.FieldQuery] = modes.NewQueryMode(&h.query)
	h.fields[types.FieldLimit] = modes.NewLimitMode(&h.limit)
	h.fields[types.FieldPerPage] = modes.NewPerPageMode(&h.perPage)
	h.fields[types.FieldPages] = h.pageBar

	h.query.Focus()
	return h
}

// HandleKey processes a key press. Shortcuts win over the focused field.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	if h.shortcuts != nil {
		if action, ok := h.shortcuts.Match(msg); ok {
			return h.apply([]types.Action{action}, ctx)
		}
	}

	handler := h.fields[h.focus]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed {
		return h.apply(actions, ctx)
	}

	tf, ok := handler.(textField)
	if !ok {
		return nil, nil
	}

	before := tf.TextInput().Value()
	var cmd tea.Cmd
	*tf.TextInput(), cmd = tf.TextInput().Update(msg)
	if after := tf.TextInput().Value(); after != before {
		actions = append(actions, tf.Changed(after)...)
	}

	applied, focusCmd := h.apply(actions, ctx)
	return applied, tea.Batch(cmd, focusCmd)
}

// apply performs focus changes itself and passes every other action on
func (h *Handler) apply(actions []types.Action, ctx types.Context) ([]types.Action, tea.Cmd) {
	var out []types.Action
	var cmd tea.Cmd

	for _, action := range actions {
		switch a := action.(type) {
		case types.FocusAction:
			out = append(out, h.Focus(a.Field, ctx)...)
			cmd = h.blinkCmd()
		case types.FocusNextAction:
			next := h.focus.Next()
			if a.Reverse {
				next = h.focus.Prev()
			}
			out = append(out, h.Focus(next, ctx)...)
			cmd = h.blinkCmd()
		default:
			out = append(out, action)
		}
	}
	return out, cmd
}

// Focus moves keyboard focus to field
func (h *Handler) Focus(field types.Field, ctx types.Context) []types.Action {
	var actions []types.Action
	if current := h.fields[h.focus]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}
	h.focus = field
	if next := h.fields[h.focus]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

func (h *Handler) blinkCmd() tea.Cmd {
	if h.focus == types.FieldPages {
		return nil
	}
	return textinput.Blink
}

// Update forwards non-keyboard messages (cursor blinks) to the focused input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if tf, ok := h.fields[h.focus].(textField); ok {
		var cmd tea.Cmd
		*tf.TextInput(), cmd = tf.TextInput().Update(msg)
		return cmd
	}
	return nil
}

// CurrentField returns the focused field
func (h *Handler) CurrentField() types.Field {
	return h.focus
}

// PageCursor returns the page button under the page bar cursor
func (h *Handler) PageCursor() int {
	return h.pageBar.Cursor()
}

// SyncPageCursor moves the page bar cursor to the current page
func (h *Handler) SyncPageCursor(page, pages int) {
	h.pageBar.SetCursor(page, pages)
}

// SetQuery replaces the query text
func (h *Handler) SetQuery(q string) {
	h.query.SetValue(q)
	h.query.CursorEnd()
}

// SetLimit replaces the text of the limit field, used to undo a rejected edit
func (h *Handler) SetLimit(v int) {
	h.limit.SetValue(strconv.Itoa(v))
	h.limit.CursorEnd()
}

// SetPerPage replaces the text of the per-page field
func (h *Handler) SetPerPage(v int) {
	h.perPage.SetValue(strconv.Itoa(v))
	h.perPage.CursorEnd()
}

// QueryView renders the query input
func (h *Handler) QueryView() string { return h.query.View() }

// LimitView renders the limit input
func (h *Handler) LimitView() string { return h.limit.View() }

// PerPageView renders the per-page input
func (h *Handler) PerPageView() string { return h.perPage.View() }

// Query returns the text in the query input
func (h *Handler) Query() string { return h.query.Value() }

// Limit returns the text in the limit input
func (h *Handler) Limit() string { return h.limit.Value() }

// PerPage returns the text in the per-page input
func (h *Handler) PerPage() string { return h.perPage.Value() }
