package types

// Query actions
type UpdateQueryAction struct {
	Text string
}

func (a UpdateQueryAction) Type() string { return "update_query" }

type SubmitQueryAction struct {
	Query string
}

func (a SubmitQueryAction) Type() string { return "submit_query" }

// Page size actions
type ChangeLimitAction struct {
	Value int
}

func (a ChangeLimitAction) Type() string { return "change_limit" }

type ChangePerPageAction struct {
	Value int
}

func (a ChangePerPageAction) Type() string { return "change_per_page" }

// Pagination actions
type GoToPageAction struct {
	Page int
}

func (a GoToPageAction) Type() string { return "go_to_page" }

// Focus actions
type FocusAction struct {
	Field Field
}

func (a FocusAction) Type() string { return "focus" }

type FocusNextAction struct {
	Reverse bool
}

func (a FocusNextAction) Type() string { return "focus_next" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
