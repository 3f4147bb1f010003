package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/vidsearch/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if m.State == StateExiting {
		return ""
	}
	if !m.Ready {
		return "Loading..."
	}

	layout := m.calculateLayout()

	content := m.List.View()
	if layout.detailWidth > 0 {
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			content,
			m.Detail.View(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.SearchBar.View(),
		content,
		m.renderFooter(),
	)
}

// renderFooter renders a single-line footer: status on the left, key hints on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.Searching:
		left = m.Spinner.View() + " " + styles.DimStyle.Render(fmt.Sprintf("Searching %q...", m.Query))
	}

	right := renderHints(m.hintsForState(), m.Focused)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough space - drop the hints
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// hintsForState returns the bindings worth showing in the current state
func (m Model) hintsForState() []key.Binding {
	switch m.State {
	case StateEditingQuery:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			Keys.Escape,
		}
	case StateDetail:
		return []key.Binding{
			Keys.EditQuery,
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "results")),
			Keys.Quit,
		}
	default:
		return []key.Binding{Keys.EditQuery, Keys.Up, Keys.Down, Keys.Enter, Keys.Tab, Keys.Quit}
	}
}

// renderHints renders "key desc" pairs; unfocused terminals get them dimmed
func renderHints(bindings []key.Binding, focused bool) string {
	keyStyle := styles.HelpKeyStyle
	if !focused {
		keyStyle = styles.DimStyle
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, styles.DimStyle.Render(" · "))
}
