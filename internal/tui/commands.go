package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/service"
)

// Command factories for async operations

// eventSource is the part of the coordinator the listener needs
type eventSource interface {
	Events() <-chan service.Event
}

// ListenCmd waits for the next coordinator event. The model re-arms it
// after every SearchEventMsg, so exactly one listener is pending.
func ListenCmd(src eventSource) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-src.Events()
		if !ok {
			return nil
		}
		return SearchEventMsg{Event: ev}
	}
}

// PlayItemCmd launches the external player for a video
func PlayItemCmd(svc *service.PlaybackService, item domain.ResultItem) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Play(item); err != nil {
			return ErrMsg{Err: err, Context: "starting playback"}
		}
		return PlaybackStartedMsg{Item: item}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
