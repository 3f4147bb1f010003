package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/results"
	"github.com/mmcdole/vidsearch/internal/service"
	"github.com/mmcdole/vidsearch/internal/tui/components"
	"github.com/mmcdole/vidsearch/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateEditingQuery
	StateDetail
	StateExiting
)

// String returns the state name
func (s ApplicationState) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateEditingQuery:
		return "editing"
	case StateDetail:
		return "detail"
	case StateExiting:
		return "exiting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options tune the model from configuration
type Options struct {
	ClearOnSubmit bool   // Empty the results list as soon as a search is submitted
	ListPercent   int    // Width share of the results list
	InitialQuery  string // Search submitted on startup
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Results     *results.Store
	Coordinator *service.Coordinator
	PlaybackSvc *service.PlaybackService

	// UI Components
	SearchBar components.SearchBar
	List      components.ResultsList
	Detail    components.DetailPane
	Spinner   spinner.Model

	// Query editing
	Query        string // Authoritative query buffer
	queryOnEntry string // Buffer value when editing began, restored on Esc
	lastQuery    string // Query of the results currently shown

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	Searching   bool
	Focused     bool // Terminal focus, reported by the terminal

	opts Options
}

// NewModel creates a new application model
func NewModel(
	coordinator *service.Coordinator,
	playbackSvc *service.PlaybackService,
	opts Options,
) Model {
	if opts.ListPercent <= 0 || opts.ListPercent >= 100 {
		opts.ListPercent = DefaultListPercent
	}

	m := Model{
		State:       StateBrowsing,
		Results:     results.New(),
		Coordinator: coordinator,
		PlaybackSvc: playbackSvc,
		SearchBar:   components.NewSearchBar(),
		List:        components.NewResultsList(),
		Detail:      components.NewDetailPane(),
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		Focused: true,
		opts:    opts,
	}
	m.updateFocus()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenCmd(m.Coordinator)}
	if q := domain.NormalizeQuery(m.opts.InitialQuery); q != "" {
		cmds = append(cmds, func() tea.Msg { return SubmitQueryMsg{Query: q} })
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.FocusMsg:
		m.Focused = true
		return m, nil

	case tea.BlurMsg:
		m.Focused = false
		return m, nil

	case SearchEventMsg:
		cmd := m.handleSearchEvent(msg.Event)
		return m, tea.Batch(cmd, ListenCmd(m.Coordinator))

	case SubmitQueryMsg:
		m.Query = msg.Query
		m.SearchBar.SetValue(m.Query)
		return m.submitQuery()

	case spinner.TickMsg:
		if !m.Searching {
			// Let the tick chain die
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.List.SetLoading(m.Spinner.View())
		return m, cmd

	case PlaybackStartedMsg:
		m.StatusMsg = "Launched: " + msg.Item.Title
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleSearchEvent applies a coordinator event to the result store
func (m *Model) handleSearchEvent(ev service.Event) tea.Cmd {
	if !m.Coordinator.Apply(m.Results, ev) {
		slog.Debug("dropped stale search event", "generation", ev.Generation())
		return nil
	}

	switch e := ev.(type) {
	case service.ResultsEvent:
		m.setSearching(false)
		m.lastQuery = e.Query
		m.refreshList()
		if len(e.Items) == 0 {
			return statusCmd(fmt.Sprintf("No results for %q", e.Query), false)
		}
		return nil

	case service.FailedEvent:
		m.setSearching(false)
		errContext := fmt.Sprintf("search %q", e.Query)
		if errors.Is(e.Err, domain.ErrServerOffline) {
			errContext = "server unreachable"
		}
		return func() tea.Msg { return ErrMsg{Err: e.Err, Context: errContext} }

	case service.ThumbnailEvent:
		m.refreshSelection()
	}
	return nil
}

// submitQuery cancels the running search and starts one for the buffer
func (m Model) submitQuery() (tea.Model, tea.Cmd) {
	m.Query = domain.NormalizeQuery(m.Query)
	m.SearchBar.SetValue(m.Query)
	m.SearchBar.Blur()
	m.State = StateBrowsing
	m.updateFocus()

	m.Coordinator.Stop()
	if m.opts.ClearOnSubmit {
		m.Results.Clear()
		m.refreshList()
	}

	if _, ok := m.Coordinator.Start(m.Query); !ok {
		m.setSearching(false)
		return m, statusCmd("Type something to search", false)
	}

	m.setSearching(true)
	return m, m.Spinner.Tick
}

// quit cancels outstanding work and ends the program
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Coordinator.Stop()
	m.Results.Clear()
	m.setSearching(false)
	m.State = StateExiting
	return m, tea.Quit
}

func (m *Model) setSearching(searching bool) {
	m.Searching = searching
	if searching {
		m.List.SetLoading(m.Spinner.View())
	} else {
		m.List.SetLoading("")
	}
}

// refreshList pushes the whole store into the list and detail pane
func (m *Model) refreshList() {
	m.List.SetItems(m.Results.Items(), m.lastQuery)
	m.refreshSelection()
}

// refreshSelection pushes the cursor and the selected item
func (m *Model) refreshSelection() {
	idx, ok := m.Results.SelectedIndex()
	m.List.SetCursor(idx, ok)

	if item, ok := m.Results.Selected(); ok {
		m.Detail.SetItem(&item)
	} else {
		m.Detail.SetItem(nil)
	}
}

// updateFocus moves the highlighted border to the active area
func (m *Model) updateFocus() {
	m.List.SetFocused(m.State == StateBrowsing)
	m.Detail.SetFocused(m.State == StateDetail)
	if m.State == StateEditingQuery {
		m.SearchBar.Focus()
	} else {
		m.SearchBar.Blur()
	}
}

func statusCmd(message string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isErr}
	}
}
