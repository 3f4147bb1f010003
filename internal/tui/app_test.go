package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/service"
)

// funcProvider adapts a function to domain.SearchProvider
type funcProvider func(ctx context.Context, query string) ([]domain.ResultItem, error)

func (f funcProvider) Search(ctx context.Context, query string) ([]domain.ResultItem, error) {
	return f(ctx, query)
}

// fakeLauncher records launched URLs
type fakeLauncher struct {
	mu   sync.Mutex
	urls []string
}

func (f *fakeLauncher) Launch(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return nil
}

func videos(titles ...string) []domain.ResultItem {
	items := make([]domain.ResultItem, len(titles))
	for i, title := range titles {
		items[i] = domain.ResultItem{Kind: domain.KindVideo, ID: "id-" + title, Title: title, Author: "someone"}
	}
	return items
}

func newTestModel(t *testing.T, provider domain.SearchProvider, opts Options) (Model, *service.Coordinator, *fakeLauncher) {
	t.Helper()

	coordinator := service.NewCoordinator(service.NewFetchTask(provider, nil, 1, nil), nil)
	t.Cleanup(coordinator.Close)

	launcher := &fakeLauncher{}
	playback := service.NewPlaybackService(launcher, service.DefaultURLTemplate, nil)

	m := NewModel(coordinator, playback, opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, coordinator, launcher
}

// update feeds msgs through the model, discarding commands
func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// nextEvent waits for the coordinator's next event, wrapped as the listener would
func nextEvent(t *testing.T, c *service.Coordinator) SearchEventMsg {
	t.Helper()
	select {
	case ev := <-c.Events():
		return SearchEventMsg{Event: ev}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for search event")
		return SearchEventMsg{}
	}
}

func selectedIndex(m Model) int {
	idx, ok := m.Results.SelectedIndex()
	if !ok {
		return -1
	}
	return idx
}

func TestModel_SearchAndCycleSelection(t *testing.T) {
	var gotQuery string
	provider := funcProvider(func(ctx context.Context, query string) ([]domain.ResultItem, error) {
		gotQuery = query
		return videos("A", "B", "C"), nil
	})
	m, coordinator, _ := newTestModel(t, provider, Options{})

	m = update(t, m, runes("/"))
	require.Equal(t, StateEditingQuery, m.State)

	m = update(t, m, runes("rust"))
	assert.Equal(t, "rust", m.Query)

	m, cmd := updateCmd(t, m, keyOf(tea.KeyEnter))
	assert.Equal(t, StateBrowsing, m.State)
	assert.True(t, m.Searching)
	assert.NotNil(t, cmd, "spinner should start ticking")

	m = update(t, m, nextEvent(t, coordinator))
	assert.Equal(t, "rust", gotQuery)
	assert.False(t, m.Searching)

	require.Equal(t, 3, m.Results.Len())
	for i, title := range []string{"A", "B", "C"} {
		item, ok := m.Results.Item(i)
		require.True(t, ok)
		assert.Equal(t, title, item.Title)
	}
	assert.Equal(t, -1, selectedIndex(m), "fresh results have no selection")

	for _, want := range []int{0, 1, 2, 0} {
		m = update(t, m, runes("j"))
		assert.Equal(t, want, selectedIndex(m))
	}

	m = update(t, m, keyOf(tea.KeyUp))
	assert.Equal(t, 2, selectedIndex(m))
}

func TestModel_EscapeRestoresQuery(t *testing.T) {
	m, _, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return nil, nil
	}), Options{})
	m.Query = "old"

	m = update(t, m, runes("/"), runes(" new"))
	assert.Equal(t, "old new", m.Query)
	assert.Equal(t, "old new", m.SearchBar.Value())

	m = update(t, m, keyOf(tea.KeyEsc))
	assert.Equal(t, StateBrowsing, m.State)
	assert.Equal(t, "old", m.Query)
	assert.Equal(t, "old", m.SearchBar.Value())
	assert.False(t, m.Searching)
}

func TestModel_QueryEditing(t *testing.T) {
	m, _, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return nil, nil
	}), Options{})

	m = update(t, m, runes("/"), runes("héé"))
	m = update(t, m, keyOf(tea.KeyBackspace))
	assert.Equal(t, "hé", m.Query)

	m = update(t, m, keyOf(tea.KeySpace), runes("q"))
	assert.Equal(t, "hé q", m.Query, "q is text while editing")
	assert.Equal(t, StateEditingQuery, m.State)

	paste := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\ty\n"), Paste: true}
	m = update(t, m, paste)
	assert.Equal(t, "hé qxy", m.Query, "control characters are dropped from pastes")

	m = update(t, m, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace),
		keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace))
	assert.Equal(t, "", m.Query, "backspace on an empty buffer is a no-op")
}

func TestModel_EmptySubmitStartsNothing(t *testing.T) {
	called := false
	m, coordinator, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		called = true
		return nil, nil
	}), Options{})

	m = update(t, m, runes("/"), runes("   "))
	m, cmd := updateCmd(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, StateBrowsing, m.State)
	assert.False(t, m.Searching)
	assert.False(t, coordinator.Active())
	require.NotNil(t, cmd)
	assert.IsType(t, StatusMsg{}, cmd())
	assert.False(t, called)
}

func TestModel_DetailTransitions(t *testing.T) {
	m, _, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return nil, nil
	}), Options{})

	m = update(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, StateDetail, m.State)

	m = update(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, StateBrowsing, m.State)

	m = update(t, m, keyOf(tea.KeyTab), runes("/"))
	assert.Equal(t, StateEditingQuery, m.State)

	// Arrow keys do nothing in the detail pane
	m = update(t, m, keyOf(tea.KeyEsc), keyOf(tea.KeyTab), runes("j"))
	assert.Equal(t, StateDetail, m.State)
	assert.Equal(t, -1, selectedIndex(m))
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name  string
		setup []tea.Msg
		key   tea.KeyMsg
	}{
		{"q while browsing", nil, runes("q")},
		{"esc while browsing", nil, keyOf(tea.KeyEsc)},
		{"q in detail", []tea.Msg{keyOf(tea.KeyTab)}, runes("q")},
		{"esc in detail", []tea.Msg{keyOf(tea.KeyTab)}, keyOf(tea.KeyEsc)},
		{"ctrl+c while editing", []tea.Msg{runes("/")}, keyOf(tea.KeyCtrlC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
				return nil, nil
			}), Options{})

			m = update(t, m, tt.setup...)
			m, cmd := updateCmd(t, m, tt.key)

			assert.Equal(t, StateExiting, m.State)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_QuitCancelsSearch(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	m, coordinator, _ := newTestModel(t, funcProvider(func(ctx context.Context, _ string) ([]domain.ResultItem, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return videos("late"), nil
	}), Options{})

	m = update(t, m, runes("/"), runes("slow"), keyOf(tea.KeyEnter))
	require.True(t, coordinator.Active())

	m = update(t, m, runes("q"))
	assert.Equal(t, StateExiting, m.State)
	assert.False(t, coordinator.Active())
	assert.Equal(t, 0, m.Results.Len())
}

func TestModel_FailedSearchKeepsResults(t *testing.T) {
	provider := funcProvider(func(_ context.Context, query string) ([]domain.ResultItem, error) {
		if query == "bad" {
			return nil, errors.New("boom")
		}
		return videos("A", "B"), nil
	})
	m, coordinator, _ := newTestModel(t, provider, Options{})

	m = update(t, m, SubmitQueryMsg{Query: "good"})
	m = update(t, m, nextEvent(t, coordinator), runes("j"))
	require.Equal(t, 2, m.Results.Len())

	m = update(t, m, runes("/"))
	m.Query = ""
	m = update(t, m, runes("bad"))
	m, _ = updateCmd(t, m, keyOf(tea.KeyEnter))

	m, cmd := updateCmd(t, m, nextEvent(t, coordinator))
	assert.False(t, m.Searching)
	assert.Equal(t, 2, m.Results.Len())
	assert.Equal(t, 0, selectedIndex(m))
	require.NotNil(t, cmd)
}

func TestModel_ClearOnSubmit(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	calls := 0
	provider := funcProvider(func(ctx context.Context, _ string) ([]domain.ResultItem, error) {
		calls++
		if calls > 1 {
			select {
			case <-release:
			case <-ctx.Done():
			}
		}
		return videos("A"), nil
	})
	m, coordinator, _ := newTestModel(t, provider, Options{ClearOnSubmit: true})

	m = update(t, m, SubmitQueryMsg{Query: "first"})
	m = update(t, m, nextEvent(t, coordinator))
	require.Equal(t, 1, m.Results.Len())

	m = update(t, m, SubmitQueryMsg{Query: "second"})
	assert.Equal(t, 0, m.Results.Len())
	assert.True(t, m.Searching)
}

func TestModel_StaleEventIgnored(t *testing.T) {
	m, coordinator, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return nil, nil
	}), Options{})

	stale := service.ResultsEvent{Gen: coordinator.Current() + 7, Query: "old", Items: videos("X")}
	m, cmd := updateCmd(t, m, SearchEventMsg{Event: stale})

	assert.Equal(t, 0, m.Results.Len())
	assert.NotNil(t, cmd, "listener is re-armed even for dropped events")
}

func TestModel_PlaySelectedVideo(t *testing.T) {
	items := append(videos("A"), domain.ResultItem{Kind: domain.KindChannel, ID: "UC1", Title: "Chan"})
	m, coordinator, launcher := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return items, nil
	}), Options{})

	m = update(t, m, SubmitQueryMsg{Query: "go"})
	m = update(t, m, nextEvent(t, coordinator))

	// Nothing selected yet
	_, cmd := updateCmd(t, m, keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)

	m = update(t, m, runes("j"))
	m, cmd = updateCmd(t, m, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.IsType(t, PlaybackStartedMsg{}, cmd())
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=id-A"}, launcher.urls)

	m = update(t, m, runes("j"))
	_, cmd = updateCmd(t, m, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.IsType(t, StatusMsg{}, cmd(), "channels are not played")
	assert.Len(t, launcher.urls, 1)
}

func TestModel_MouseWheelMovesSelection(t *testing.T) {
	m, coordinator, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return videos("A", "B"), nil
	}), Options{})

	m = update(t, m, SubmitQueryMsg{Query: "go"})
	m = update(t, m, nextEvent(t, coordinator))

	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	m = update(t, m, wheel, wheel)
	assert.Equal(t, 1, selectedIndex(m))

	// First row sits below the search bar, list border, title and scroll indicator
	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 5, Y: SearchBarHeight + 3}
	m = update(t, m, click)
	assert.Equal(t, 0, selectedIndex(m))
}

func TestModel_View(t *testing.T) {
	m, coordinator, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return videos("Learning Rust", "Rust in Production"), nil
	}), Options{})

	view := m.View()
	assert.Contains(t, view, "Press / to search")

	m = update(t, m, SubmitQueryMsg{Query: "rust"})
	m = update(t, m, nextEvent(t, coordinator), runes("j"))

	view = m.View()
	assert.Contains(t, view, "Results (2)")
	assert.Contains(t, view, "Rust in Production")
	assert.Contains(t, view, "someone")
}

func TestModel_InitSubmitsInitialQuery(t *testing.T) {
	m, _, _ := newTestModel(t, funcProvider(func(context.Context, string) ([]domain.ResultItem, error) {
		return nil, nil
	}), Options{InitialQuery: "  lofi  "})

	assert.NotNil(t, m.Init())

	m = update(t, m, SubmitQueryMsg{Query: "lofi"})
	assert.Equal(t, "lofi", m.SearchBar.Value())
	assert.True(t, m.Searching)
}
