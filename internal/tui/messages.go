package tui

import (
	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchEventMsg wraps a completion notification from the coordinator
type SearchEventMsg struct {
	Event service.Event
}

// SubmitQueryMsg asks the model to run a search for Query
type SubmitQueryMsg struct {
	Query string
}

// PlaybackStartedMsg signals that the player was launched
type PlaybackStartedMsg struct {
	Item domain.ResultItem
}

// StatusMsg displays a status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg signals to clear the status message
type ClearStatusMsg struct{}
