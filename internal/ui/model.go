package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"geosearch/internal/search"
	"geosearch/internal/ui/input"
	inputtypes "geosearch/internal/ui/input/types"
	"geosearch/internal/ui/views"
)

// Options configures a Model
type Options struct {
	// InitialQuery is submitted as soon as the program starts
	InitialQuery string
	Logger       zerolog.Logger
}

// Model is the search widget: a query box, the results table, page buttons
// and the two page size fields
type Model struct {
	ctrl   *search.Controller
	logger zerolog.Logger

	width  int
	height int
	status string

	help         help.Model
	keys         keyMap
	spinner      spinner.Model
	renderer     *views.Renderer
	helpRenderer *HelpRenderer

	shortcuts    *input.Shortcuts
	releases     []func()
	inputHandler *input.Handler

	ctx         context.Context
	cancel      context.CancelFunc
	cancelFetch context.CancelFunc

	initialQuery string
}

// NewModel creates the UI model around ctrl
func NewModel(ctrl *search.Controller, opts Options) *Model {
	snap := ctrl.Snapshot()
	shortcuts := input.NewShortcuts()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		ctrl:         ctrl,
		logger:       opts.Logger.With().Str("component", "ui").Logger(),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      sp,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		shortcuts:    shortcuts,
		inputHandler: input.New(shortcuts, snap.Limit, snap.PerPage),
		ctx:          ctx,
		cancel:       cancel,
		initialQuery: opts.InitialQuery,
	}
	if opts.InitialQuery != "" {
		m.inputHandler.SetQuery(opts.InitialQuery)
		ctrl.SetQuery(opts.InitialQuery)
	}
	return m
}

// mount registers the global shortcuts. Each one is released again by Close.
func (m *Model) mount() {
	if len(m.releases) > 0 {
		return
	}
	register := func(b key.Binding, fn input.ShortcutFunc) {
		m.releases = append(m.releases, m.shortcuts.Register(b, fn))
	}

	register(m.keys.Quit, func() inputtypes.Action { return inputtypes.QuitAction{} })
	register(m.keys.FocusQuery, func() inputtypes.Action { return inputtypes.FocusAction{Field: inputtypes.FieldQuery} })
	register(m.keys.NextField, func() inputtypes.Action { return inputtypes.FocusNextAction{} })
	register(m.keys.PrevField, func() inputtypes.Action { return inputtypes.FocusNextAction{Reverse: true} })
	register(m.keys.Help, func() inputtypes.Action { return inputtypes.ShowHelpAction{} })
}

// Close releases the shortcuts and cancels any fetch in flight. It is safe
// to call more than once.
func (m *Model) Close() {
	for _, release := range m.releases {
		release()
	}
	m.releases = nil
	m.cancel()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.mount()

	cmds := []tea.Cmd{textinput.Blink}
	if m.initialQuery != "" {
		cmds = append(cmds, m.fetch(m.ctrl.Begin(m.initialQuery)))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case fetchResultMsg:
		if m.ctrl.Resolve(msg.resp) {
			snap := m.ctrl.Snapshot()
			m.inputHandler.SyncPageCursor(snap.CurrentPage, snap.Pages())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.Loading() {
			// let the tick chain lapse until the next fetch
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("help pager failed")
			m.status = fmt.Sprintf("Help unavailable: %v", msg.err)
			return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
		}
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, m.inputHandler.Update(msg)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateQueryAction:
		m.ctrl.SetQuery(a.Text)

	case inputtypes.SubmitQueryAction:
		return m.fetch(m.ctrl.Begin(a.Query))

	case inputtypes.ChangeLimitAction:
		if err := m.ctrl.ChangeLimit(a.Value); err != nil {
			// put the field back to the limit still in effect
			m.inputHandler.SetLimit(m.ctrl.Snapshot().Limit)
		}
		snap := m.ctrl.Snapshot()
		m.inputHandler.SyncPageCursor(snap.CurrentPage, snap.Pages())

	case inputtypes.ChangePerPageAction:
		m.ctrl.ChangePerPage(a.Value)
		if perPage := m.ctrl.Snapshot().PerPage; perPage != a.Value {
			m.inputHandler.SetPerPage(perPage)
		}

	case inputtypes.GoToPageAction:
		req, err := m.ctrl.BeginPage(a.Page)
		if err != nil {
			if !errors.Is(err, search.ErrPageOutOfRange) {
				m.logger.Error().Err(err).Int("page", a.Page).Msg("page change failed")
			}
			return nil
		}
		return m.fetch(req)

	case inputtypes.ShowHelpAction:
		return showHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}

	return nil
}

// fetch runs req off the update loop. Starting a fetch cancels the previous
// one; a late answer is still dropped by sequence in Resolve.
func (m *Model) fetch(req search.Request) tea.Cmd {
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelFetch = cancel

	ctrl := m.ctrl
	run := func() tea.Msg {
		defer cancel()
		return fetchResultMsg{resp: ctrl.Run(ctx, req)}
	}
	return tea.Batch(run, m.spinner.Tick)
}

// View implements tea.Model
func (m *Model) View() string {
	snap := m.ctrl.Snapshot()

	rows := m.ctrl.Rows()
	viewRows := make([]views.Row, len(rows))
	for i, r := range rows {
		viewRows[i] = views.Row{Index: r.Index, Place: r.Place}
	}

	message := ""
	if snap.Status == search.StatusError {
		message = snap.Message
	}

	return m.renderer.Render(views.ViewState{
		Width:        m.width,
		Height:       m.height,
		Focus:        m.inputHandler.CurrentField(),
		QueryInput:   m.inputHandler.QueryView(),
		LimitInput:   m.inputHandler.LimitView(),
		PerPageInput: m.inputHandler.PerPageView(),
		Loading:      snap.Loading(),
		Spinner:      m.spinner.View(),
		Message:      message,
		Warning:      snap.Warning,
		Status:       m.status,
		Rows:         viewRows,
		PageButtons:  m.pageButtons(),
		PageCursor:   m.inputHandler.PageCursor(),
		Help:         m.help.View(m.keys),
	})
}

func (m *Model) pageButtons() []views.PageButton {
	pages := m.ctrl.PageButtons(m.inputHandler.PageCursor())
	buttons := make([]views.PageButton, len(pages))
	for i, p := range pages {
		buttons[i] = views.PageButton{Page: p, Active: p != search.PageGap && m.ctrl.IsActive(p)}
	}
	return buttons
}

// Pages implements types.Context. The page bar is only drawn next to rows,
// so without rows there is nothing for it to act on.
func (m *Model) Pages() int {
	if len(m.ctrl.Rows()) == 0 {
		return 0
	}
	return m.ctrl.Pages()
}

// CurrentPage implements types.Context
func (m *Model) CurrentPage() int {
	return m.ctrl.Snapshot().CurrentPage
}

// Loading implements types.Context
func (m *Model) Loading() bool {
	return m.ctrl.Snapshot().Loading()
}

// Fields reports the text of the query, limit and per-page inputs
func (m *Model) Fields() (query string, limit, perPage int) {
	limit, _ = strconv.Atoi(m.inputHandler.Limit())
	perPage, _ = strconv.Atoi(m.inputHandler.PerPage())
	return m.inputHandler.Query(), limit, perPage
}
