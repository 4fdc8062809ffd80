package types

import tea "github.com/charmbracelet/bubbletea"

// Field is the widget control that currently has keyboard focus
type Field int

const (
	FieldQuery Field = iota
	FieldLimit
	FieldPerPage
	FieldPages
)

// FieldCount is the number of focusable fields
const FieldCount = 4

func (f Field) String() string {
	switch f {
	case FieldQuery:
		return "query"
	case FieldLimit:
		return "limit"
	case FieldPerPage:
		return "per-page"
	case FieldPages:
		return "pages"
	default:
		return "unknown"
	}
}

// Next returns the field after f, wrapping around
func (f Field) Next() Field {
	return Field((int(f) + 1) % FieldCount)
}

// Prev returns the field before f, wrapping around
func (f Field) Prev() Field {
	return Field((int(f) + FieldCount - 1) % FieldCount)
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Pages() int
	CurrentPage() int
	Loading() bool
}

// FieldHandler handles input for a specific field
type FieldHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when the field gains focus
	Enter(ctx Context) []Action

	// Exit is called when the field loses focus
	Exit(ctx Context) []Action

	// Name returns the field name for display
	Name() string
}
