package provider

import (
	"context"
	"errors"
	"fmt"

	"geosearch/internal/domain"
)

// User-facing messages for the two recoverable error kinds
const (
	MessageEmptyResult   = "No result found"
	MessageProviderError = "Error fetching data"
)

// ResultsProvider looks up places whose name starts with a prefix
type ResultsProvider interface {
	// Fetch returns at most limit places starting at offset, together with
	// the size of the full result set. A page with no items is not an error
	// at this level.
	Fetch(ctx context.Context, namePrefix string, limit, offset int) (domain.Page, error)
}

// ErrEmptyResult reports that the provider answered with zero items
var ErrEmptyResult = errors.New("empty result")

// ErrProvider is matched by every *ProviderError via errors.Is
var ErrProvider = errors.New("provider error")

// ProviderError wraps a transport failure, a non-2xx response or a body that
// could not be decoded
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

// Message maps an error returned by a fetch to the text shown in place of
// the results table
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyResult):
		return MessageEmptyResult
	default:
		return MessageProviderError
	}
}
