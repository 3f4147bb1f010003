package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input. ctrl+c quits from every state.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateExiting {
		return m, nil
	}
	if key.Matches(msg, Keys.ForceQuit) {
		return m.quit()
	}

	switch m.State {
	case StateEditingQuery:
		return m.handleEditingKey(msg)
	case StateDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleBrowsingKey(msg)
	}
}

func (m Model) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.EditQuery):
		m.beginEditing()
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.Results.SelectPrevious()
		m.refreshSelection()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.Results.SelectNext()
		m.refreshSelection()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m, m.playSelected()

	case key.Matches(msg, Keys.Tab):
		m.State = StateDetail
		m.updateFocus()
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Tab):
		m.State = StateBrowsing
		m.updateFocus()
		return m, nil

	case key.Matches(msg, Keys.EditQuery):
		m.beginEditing()
		return m, nil
	}
	return m, nil
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.Query = m.queryOnEntry
		m.SearchBar.SetValue(m.Query)
		m.State = StateBrowsing
		m.updateFocus()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m.submitQuery()

	case key.Matches(msg, Keys.Backspace):
		if r := []rune(m.Query); len(r) > 0 {
			m.Query = string(r[:len(r)-1])
			m.SearchBar.SetValue(m.Query)
		}
		return m, nil
	}

	// Printable input, including bracketed paste
	switch msg.Type {
	case tea.KeyRunes:
		m.appendRunes(msg.Runes)
	case tea.KeySpace:
		m.appendRunes([]rune{' '})
	}
	return m, nil
}

// beginEditing remembers the buffer so Esc can restore it
func (m *Model) beginEditing() {
	m.queryOnEntry = m.Query
	m.State = StateEditingQuery
	m.updateFocus()
	m.SearchBar.SetValue(m.Query)
}

// appendRunes adds typed or pasted text, dropping control characters
func (m *Model) appendRunes(runes []rune) {
	appended := false
	for _, r := range runes {
		if unicode.IsControl(r) {
			continue
		}
		m.Query += string(r)
		appended = true
	}
	if appended {
		m.SearchBar.SetValue(m.Query)
	}
}

// playSelected launches the player for a selected video
func (m Model) playSelected() tea.Cmd {
	item, ok := m.Results.Selected()
	if !ok {
		return nil
	}
	if !item.IsPlayable() {
		return statusCmd("Only videos can be played ("+item.Kind.String()+" selected)", false)
	}
	return PlayItemCmd(m.PlaybackSvc, item)
}

// handleMouseMsg maps wheel and clicks onto the selection
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateBrowsing || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.Results.SelectPrevious()
		m.refreshSelection()

	case tea.MouseButtonWheelDown:
		m.Results.SelectNext()
		m.refreshSelection()

	case tea.MouseButtonLeft:
		layout := m.calculateLayout()
		if msg.X >= layout.listWidth || msg.Y < SearchBarHeight {
			return m, nil
		}
		if idx, ok := m.List.RowAt(msg.Y - SearchBarHeight); ok {
			m.Results.Select(idx)
			m.refreshSelection()
		}
	}
	return m, nil
}
