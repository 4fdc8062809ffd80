package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geosearch/internal/domain"
	"geosearch/internal/search"
	inputtypes "geosearch/internal/ui/input/types"
)

type fetchCall struct {
	Prefix string
	Limit  int
	Offset int
}

// stubProvider answers through fn and records every call
type stubProvider struct {
	mu    sync.Mutex
	calls []fetchCall
	fn    func(prefix string, limit, offset int) (domain.Page, error)
}

func (p *stubProvider) Fetch(_ context.Context, prefix string, limit, offset int) (domain.Page, error) {
	p.mu.Lock()
	p.calls = append(p.calls, fetchCall{Prefix: prefix, Limit: limit, Offset: offset})
	p.mu.Unlock()
	return p.fn(prefix, limit, offset)
}

func (p *stubProvider) Calls() []fetchCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]fetchCall(nil), p.calls...)
}

func cityPage(total int) func(string, int, int) (domain.Page, error) {
	return func(prefix string, limit, offset int) (domain.Page, error) {
		var items []domain.Place
		for i := offset; i < offset+limit && i < total; i++ {
			items = append(items, domain.Place{Name: prefix + "-city", Country: "France", CountryCode: "FR"})
		}
		return domain.Page{Items: items, TotalCount: total}, nil
	}
}

func newTestModel(t *testing.T, p *stubProvider, opts Options) *Model {
	t.Helper()
	ctrl := search.NewController(p, search.Options{Logger: zerolog.Nop()})
	m := NewModel(ctrl, opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	t.Cleanup(m.Close)
	return m
}

// collect runs cmd and returns the messages it produces. Commands that sleep
// (cursor blink, status timers) are abandoned after a short wait.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drain feeds fetch results produced by cmd back into the model until no
// more arrive and returns every other message it saw
func drain(m *Model, cmd tea.Cmd) []tea.Msg {
	var other []tea.Msg
	for _, msg := range collect(cmd) {
		if res, ok := msg.(fetchResultMsg); ok {
			_, next := m.Update(res)
			other = append(other, drain(m, next)...)
			continue
		}
		other = append(other, msg)
	}
	return other
}

func press(m *Model, k tea.KeyMsg) []tea.Msg {
	_, cmd := m.Update(k)
	return drain(m, cmd)
}

func typeText(m *Model, s string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	enterKey    = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTabKey = tea.KeyMsg{Type: tea.KeyShiftTab}
	rightKey    = tea.KeyMsg{Type: tea.KeyRight}
	upKey       = tea.KeyMsg{Type: tea.KeyUp}
)

func TestViewShowsEmptyStateBeforeSearch(t *testing.T) {
	m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
	m.Init()

	view := m.View()
	assert.Contains(t, view, "Start searching")
	assert.Contains(t, view, "Place Name")
	assert.Contains(t, view, "Country")
	assert.Contains(t, view, "Results per page")
}

func TestEnterSubmitsQuery(t *testing.T) {
	p := &stubProvider{fn: cityPage(12)}
	m := newTestModel(t, p, Options{})
	m.Init()

	typeText(m, "Par")
	assert.Empty(t, p.Calls(), "typing alone does not search")
	assert.Equal(t, "Par", m.ctrl.Snapshot().Query)

	press(m, enterKey)

	require.Equal(t, []fetchCall{{Prefix: "Par", Limit: 5, Offset: 0}}, p.Calls())
	snap := m.ctrl.Snapshot()
	assert.Equal(t, search.StatusIdle, snap.Status)
	assert.Equal(t, 12, snap.TotalCount)
	assert.Len(t, m.ctrl.Rows(), 3)

	view := m.View()
	assert.Contains(t, view, "Par-city")
	assert.Contains(t, view, "🇫🇷 France")
	assert.NotContains(t, view, "Start searching")
}

func TestSubmitShowsSpinnerWhileLoading(t *testing.T) {
	p := &stubProvider{fn: cityPage(3)}
	m := newTestModel(t, p, Options{})
	m.Init()

	typeText(m, "Ber")
	_, cmd := m.Update(enterKey)
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Searching...")

	drain(m, cmd)
	assert.False(t, m.Loading())
	assert.NotContains(t, m.View(), "Searching...")
}

func TestProviderMessagesReplaceRows(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
		m.Init()
		typeText(m, "zzz")
		press(m, enterKey)

		view := m.View()
		assert.Contains(t, view, "No result found")
		assert.NotContains(t, view, "Start searching")
	})

	t.Run("provider error", func(t *testing.T) {
		p := &stubProvider{fn: func(string, int, int) (domain.Page, error) {
			return domain.Page{}, errors.New("boom")
		}}
		m := newTestModel(t, p, Options{})
		m.Init()
		typeText(m, "Par")
		press(m, enterKey)

		assert.Contains(t, m.View(), "Error fetching data")
		assert.Equal(t, search.StatusError, m.ctrl.Snapshot().Status)
	})
}

func TestStaleFetchResultIsDropped(t *testing.T) {
	p := &stubProvider{fn: func(prefix string, _, _ int) (domain.Page, error) {
		return domain.Page{Items: []domain.Place{{Name: prefix}}, TotalCount: 1}, nil
	}}
	m := newTestModel(t, p, Options{})
	m.Init()

	typeText(m, "a")
	_, first := m.Update(enterKey)
	typeText(m, "b")
	_, second := m.Update(enterKey)

	var results []fetchResultMsg
	for _, msg := range append(collect(first), collect(second)...) {
		if res, ok := msg.(fetchResultMsg); ok {
			results = append(results, res)
		}
	}
	require.Len(t, results, 2)

	// newest answer lands first, the older one after it
	m.Update(results[1])
	m.Update(results[0])

	rows := m.ctrl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "ab", rows[0].Place.Name)
}

func TestFocusCycle(t *testing.T) {
	m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
	m.Init()

	assert.Equal(t, inputtypes.FieldQuery, m.inputHandler.CurrentField())
	press(m, tabKey)
	assert.Equal(t, inputtypes.FieldLimit, m.inputHandler.CurrentField())
	press(m, tabKey)
	assert.Equal(t, inputtypes.FieldPerPage, m.inputHandler.CurrentField())
	press(m, tabKey)
	assert.Equal(t, inputtypes.FieldPages, m.inputHandler.CurrentField())
	press(m, tabKey)
	assert.Equal(t, inputtypes.FieldQuery, m.inputHandler.CurrentField())
	press(m, shiftTabKey)
	assert.Equal(t, inputtypes.FieldPages, m.inputHandler.CurrentField())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlUnderscore})
	assert.Equal(t, inputtypes.FieldQuery, m.inputHandler.CurrentField())
}

func TestLimitAboveMaximumIsRejected(t *testing.T) {
	p := &stubProvider{fn: cityPage(0)}
	m := newTestModel(t, p, Options{})
	m.Init()

	press(m, tabKey)
	typeText(m, "1") // "5" becomes "51"

	snap := m.ctrl.Snapshot()
	assert.Equal(t, 5, snap.Limit)
	assert.Equal(t, search.WarningLimitTooLarge, snap.Warning)
	_, limit, _ := m.Fields()
	assert.Equal(t, 5, limit, "field is restored to the limit in effect")
	assert.Contains(t, m.View(), "Maximum limit is 10")
	assert.Empty(t, p.Calls(), "limit changes never fetch")
}

func TestNumberFieldsStepWithArrows(t *testing.T) {
	m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
	m.Init()

	press(m, tabKey)
	press(m, upKey)
	assert.Equal(t, 6, m.ctrl.Snapshot().Limit)

	press(m, tabKey)
	press(m, upKey)
	press(m, upKey)
	assert.Equal(t, 5, m.ctrl.Snapshot().PerPage)

	typeText(m, "x")
	_, _, perPage := m.Fields()
	assert.Equal(t, 5, perPage, "letters are ignored")
}

func TestPageBarLoadsSelectedPage(t *testing.T) {
	p := &stubProvider{fn: cityPage(12)}
	m := newTestModel(t, p, Options{})
	m.Init()

	typeText(m, "Par")
	press(m, enterKey)
	require.Equal(t, 3, m.Pages())

	press(m, shiftTabKey)
	require.Equal(t, inputtypes.FieldPages, m.inputHandler.CurrentField())
	press(m, rightKey)
	assert.Equal(t, 2, m.inputHandler.PageCursor())
	press(m, enterKey)

	calls := p.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, fetchCall{Prefix: "Par", Limit: 5, Offset: 5}, calls[1])
	assert.Equal(t, 2, m.CurrentPage())
	assert.Equal(t, 6, m.ctrl.Rows()[0].Index)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, 3, m.CurrentPage())
	assert.Equal(t, 10, p.Calls()[2].Offset)

	// past the last page is ignored
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	assert.Len(t, p.Calls(), 3)
}

func TestHugeResultCountKeepsPageBarShort(t *testing.T) {
	p := &stubProvider{fn: cityPage(600000)}
	m := newTestModel(t, p, Options{})
	m.Init()

	press(m, enterKey)
	require.Equal(t, 120000, m.Pages())
	assert.Equal(t, "", p.Calls()[0].Prefix)

	view := m.View()
	assert.Contains(t, view, "[1]")
	assert.Contains(t, view, "120000")
	assert.Contains(t, view, "…")
	for _, line := range strings.Split(view, "\n") {
		assert.Less(t, lipgloss.Width(line), 200)
	}

	press(m, shiftTabKey)
	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	press(m, enterKey)
	assert.Equal(t, 120000, m.CurrentPage())
	assert.Equal(t, 599995, p.Calls()[1].Offset)
	assert.Contains(t, m.View(), "[120000]")
}

func TestPageBarIgnoredAfterProviderError(t *testing.T) {
	p := &stubProvider{fn: cityPage(12)}
	m := newTestModel(t, p, Options{})
	m.Init()

	typeText(m, "Par")
	press(m, enterKey)
	require.Equal(t, 3, m.Pages())

	p.fn = func(string, int, int) (domain.Page, error) {
		return domain.Page{}, errors.New("connection reset")
	}
	press(m, enterKey)
	require.Contains(t, m.View(), "Error fetching data")
	assert.Equal(t, 0, m.Pages())

	press(m, shiftTabKey)
	require.Equal(t, inputtypes.FieldPages, m.inputHandler.CurrentField())
	press(m, enterKey)
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	assert.Len(t, p.Calls(), 2, "no page loads without rows")
}

func TestInitialQueryIsSubmitted(t *testing.T) {
	p := &stubProvider{fn: cityPage(4)}
	m := newTestModel(t, p, Options{InitialQuery: "Lon"})

	drain(m, m.Init())

	require.Len(t, p.Calls(), 1)
	assert.Equal(t, "Lon", p.Calls()[0].Prefix)
	query, _, _ := m.Fields()
	assert.Equal(t, "Lon", query)
	assert.Len(t, m.ctrl.Rows(), 3)
}

func TestShortcutsReleasedOnClose(t *testing.T) {
	m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
	assert.Equal(t, 0, m.shortcuts.Len())

	m.Init()
	m.Init()
	assert.Equal(t, 5, m.shortcuts.Len())

	m.Close()
	assert.Equal(t, 0, m.shortcuts.Len())
	assert.Error(t, m.ctx.Err())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
	m.Init()

	msgs := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Contains(t, msgs, tea.Msg(tea.QuitMsg{}))
	assert.Equal(t, 0, m.shortcuts.Len())
}

func TestQuitFromPageBar(t *testing.T) {
	m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
	m.Init()

	press(m, shiftTabKey)
	msgs := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Contains(t, msgs, tea.Msg(tea.QuitMsg{}))
}

func TestHelpPagerErrorSetsStatus(t *testing.T) {
	m := newTestModel(t, &stubProvider{fn: cityPage(0)}, Options{})
	m.Init()

	m.Update(helpPagerMsg{err: errors.New("no tty")})
	assert.Contains(t, m.View(), "Help unavailable: no tty")

	m.Update(clearStatusMsg{})
	assert.NotContains(t, m.View(), "Help unavailable")
}

func TestHelpContentListsKeys(t *testing.T) {
	content := NewHelpRenderer().RenderHelpContent()
	assert.Contains(t, content, "Ctrl+/")
	assert.Contains(t, content, "Move between page buttons")
}

func TestHelpDescriptionsAlign(t *testing.T) {
	content := NewHelpRenderer().RenderHelpContent()

	for _, desc := range []string{
		"Focus the search box",
		"Increase/decrease the focused size",
		"Move between page buttons",
		"First/last page",
		"Quit",
	} {
		var found bool
		for _, line := range strings.Split(content, "\n") {
			idx := strings.Index(line, desc)
			if idx < 0 {
				continue
			}
			found = true
			assert.Equal(t, 2+helpKeyWidth+1, lipgloss.Width(line[:idx]), "column of %q", desc)
			break
		}
		assert.True(t, found, "missing %q", desc)
	}
}
