package search

import "geosearch/internal/domain"

// Status is the fetch status of the widget
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of everything the widget renders from
type State struct {
	Query       string
	Limit       int // server-side page size, 1..10
	PerPage     int // display truncation, 1..10
	CurrentPage int
	TotalCount  int
	Items       []domain.Place
	Status      Status
	Message     string // set when Status is StatusError
	Warning     string // last refused limit change
}

// Loading reports whether the latest request is still in flight
func (s State) Loading() bool { return s.Status == StatusLoading }

// Pages is ceil(TotalCount/Limit)
func (s State) Pages() int { return PageCount(s.TotalCount, s.Limit) }

func (s State) clone() State {
	out := s
	out.Items = make([]domain.Place, len(s.Items))
	copy(out.Items, s.Items)
	return out
}
