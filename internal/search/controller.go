package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"geosearch/internal/domain"
	"geosearch/internal/eventbus"
	"geosearch/internal/provider"
)

// Warnings surfaced when a page size is refused
const (
	WarningLimitTooLarge = "Maximum limit is 10"
	WarningLimitTooSmall = "Minimum limit is 1"
)

var (
	ErrLimitTooLarge  = errors.New("limit exceeds maximum")
	ErrLimitTooSmall  = errors.New("limit below minimum")
	ErrPageOutOfRange = errors.New("page out of range")
)

// Options configures a Controller
type Options struct {
	Limit   int
	PerPage int
	Bus     eventbus.EventBus // optional
	Logger  zerolog.Logger
}

// Request is an issued fetch. Seq identifies it when the response comes back.
type Request struct {
	Seq    uint64
	Query  string
	Page   int
	Limit  int
	Offset int
}

// Response is the outcome of running a Request against the provider
type Response struct {
	Seq  uint64
	Page domain.Page
	Err  error
}

// Row is one displayed line of the results table
type Row struct {
	Index int
	Place domain.Place
}

// Controller owns the search state and keeps query, page size, page number
// and result counts consistent with each other
type Controller struct {
	mu       sync.Mutex
	provider provider.ResultsProvider
	bus      eventbus.EventBus
	logger   zerolog.Logger

	state State
	// offset the current items were fetched at
	itemsOffset int
	// offset of the latest issued request
	pendingOffset int
	// latest issued request; responses for anything older are dropped
	seq uint64
}

// NewController creates a controller in its mounted state
func NewController(p provider.ResultsProvider, opts Options) *Controller {
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	perPage := opts.PerPage
	if perPage == 0 {
		perPage = DefaultPerPage
	}

	return &Controller{
		provider: p,
		bus:      opts.Bus,
		logger:   opts.Logger.With().Str("component", "search").Logger(),
		state: State{
			Limit:       Clamp(limit, MinPageSize, MaxPageSize),
			PerPage:     Clamp(perPage, MinPageSize, MaxPageSize),
			CurrentPage: 1,
			Items:       []domain.Place{},
			Status:      StatusIdle,
		},
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SetQuery records the text being edited without fetching
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = query
}

// Begin starts a submit of query at the current page. The returned request
// must be run against the provider and handed back to Resolve.
func (c *Controller) Begin(query string) Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(query)
}

func (c *Controller) beginLocked(query string) Request {
	c.seq++
	c.state.Query = query
	c.state.Status = StatusLoading
	c.state.Message = ""

	req := Request{
		Seq:    c.seq,
		Query:  query,
		Page:   c.state.CurrentPage,
		Limit:  c.state.Limit,
		Offset: Offset(c.state.CurrentPage, c.state.Limit),
	}
	c.pendingOffset = req.Offset

	c.logger.Debug().
		Uint64("seq", req.Seq).
		Str("query", req.Query).
		Int("limit", req.Limit).
		Int("offset", req.Offset).
		Msg("search requested")
	c.publish(domain.SearchRequestedEvent{Seq: req.Seq, Query: req.Query, Limit: req.Limit, Offset: req.Offset})

	return req
}

// Run performs the provider call for req. It does not touch controller state.
func (c *Controller) Run(ctx context.Context, req Request) Response {
	page, err := c.provider.Fetch(ctx, req.Query, req.Limit, req.Offset)
	return Response{Seq: req.Seq, Page: page, Err: err}
}

// Resolve applies a response if it belongs to the latest issued request.
// It reports whether the response was applied.
func (c *Controller) Resolve(resp Response) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if resp.Seq != c.seq {
		c.logger.Debug().Uint64("seq", resp.Seq).Uint64("latest", c.seq).Msg("discarding stale response")
		c.publish(domain.SearchDiscardedEvent{Seq: resp.Seq, Latest: c.seq})
		return false
	}

	switch {
	case resp.Err != nil:
		c.state.TotalCount = 0
		c.fail(resp.Seq, provider.MessageProviderError, resp.Err)

	case resp.Page.Empty():
		c.state.TotalCount = max(resp.Page.TotalCount, 0)
		c.fail(resp.Seq, provider.MessageEmptyResult, provider.ErrEmptyResult)

	default:
		items := make([]domain.Place, len(resp.Page.Items))
		copy(items, resp.Page.Items)
		c.state.Items = items
		c.itemsOffset = c.pendingOffset
		c.state.TotalCount = max(resp.Page.TotalCount, len(items))
		c.state.Status = StatusIdle
		c.state.Message = ""

		c.logger.Debug().
			Uint64("seq", resp.Seq).
			Int("items", len(items)).
			Int("total", c.state.TotalCount).
			Msg("search completed")
		c.publish(domain.SearchCompletedEvent{
			Seq:        resp.Seq,
			Query:      c.state.Query,
			Count:      len(items),
			TotalCount: c.state.TotalCount,
		})
	}

	c.clampPageLocked()
	return true
}

func (c *Controller) fail(seq uint64, message string, err error) {
	c.state.Items = []domain.Place{}
	c.itemsOffset = 0
	c.state.Status = StatusError
	c.state.Message = message

	c.logger.Debug().Uint64("seq", seq).Err(err).Str("message", message).Msg("search failed")
	c.publish(domain.SearchFailedEvent{Seq: seq, Query: c.state.Query, Message: message, Err: err})
}

// Submit runs a full submit synchronously: one provider call, no retry.
// The returned error is the provider outcome, already reflected in state.
func (c *Controller) Submit(ctx context.Context, query string) error {
	req := c.Begin(query)
	resp := c.Run(ctx, req)
	c.Resolve(resp)
	return outcome(resp)
}

// ChangeLimit sets the server-side page size. It does not re-fetch; the new
// limit takes effect on the next submit or page change.
func (c *Controller) ChangeLimit(value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case value > MaxPageSize:
		c.rejectLimitLocked(value, WarningLimitTooLarge)
		return fmt.Errorf("%w: %d", ErrLimitTooLarge, value)
	case value < MinPageSize:
		c.rejectLimitLocked(value, WarningLimitTooSmall)
		return fmt.Errorf("%w: %d", ErrLimitTooSmall, value)
	}

	c.state.Limit = value
	c.state.Warning = ""
	c.clampPageLocked()
	return nil
}

func (c *Controller) rejectLimitLocked(value int, warning string) {
	c.state.Warning = warning
	c.logger.Debug().Int("value", value).Msg("limit rejected")
	c.publish(domain.LimitRejectedEvent{Value: value, Message: warning})
}

// ChangePerPage sets how many fetched items are displayed
func (c *Controller) ChangePerPage(value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PerPage = Clamp(value, MinPageSize, MaxPageSize)
}

// BeginPage moves to page and starts a submit of the current query
func (c *Controller) BeginPage(page int) (Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		return Request{}, fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}
	if pages := PageCount(c.state.TotalCount, c.state.Limit); pages > 0 && page > pages {
		return Request{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, pages)
	}

	c.state.CurrentPage = page
	return c.beginLocked(c.state.Query), nil
}

// GoToPage moves to page and re-fetches synchronously. There is no cache of
// previously seen pages.
func (c *Controller) GoToPage(ctx context.Context, page int) error {
	req, err := c.BeginPage(page)
	if err != nil {
		return err
	}
	resp := c.Run(ctx, req)
	c.Resolve(resp)
	return outcome(resp)
}

// Pages is the number of page buttons to show
func (c *Controller) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageCount(c.state.TotalCount, c.state.Limit)
}

// PageButtons lists the page buttons to draw for a page bar whose cursor is
// on cursor. Long runs of pages are replaced by PageGap.
func (c *Controller) PageButtons(cursor int) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageWindow(PageCount(c.state.TotalCount, c.state.Limit), c.state.CurrentPage, cursor, PageNeighbours)
}

// IsActive reports whether page is the current page
func (c *Controller) IsActive(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CurrentPage == page
}

// Rows returns the displayed rows: at most perPage of the fetched items,
// numbered from their position in the full result set
func (c *Controller) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := min(c.state.PerPage, len(c.state.Items))
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{Index: i + 1 + c.itemsOffset, Place: c.state.Items[i]}
	}
	return rows
}

func (c *Controller) clampPageLocked() {
	if c.state.CurrentPage < 1 {
		c.state.CurrentPage = 1
	}
	if pages := PageCount(c.state.TotalCount, c.state.Limit); pages > 0 && c.state.CurrentPage > pages {
		c.state.CurrentPage = pages
	}
}

func (c *Controller) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

func outcome(resp Response) error {
	switch {
	case resp.Err != nil:
		return resp.Err
	case resp.Page.Empty():
		return provider.ErrEmptyResult
	}
	return nil
}
