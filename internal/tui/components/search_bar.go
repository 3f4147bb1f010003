package components

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mmcdole/vidsearch/internal/tui/styles"
)

// SearchBar renders the query line at the top of the screen.
// The query text is owned by the caller and pushed in with SetValue.
type SearchBar struct {
	input   textinput.Model
	width   int
	editing bool
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Press / to search videos..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.InputTextStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.Cursor.Style = styles.AccentStyle
	// Nothing drives the blink ticks
	ti.Cursor.SetMode(cursor.CursorStatic)

	return SearchBar{input: ti}
}

// SetValue replaces the displayed text and moves the cursor to the end
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
}

// Value returns the displayed text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// Focus shows the cursor and highlights the border
func (s *SearchBar) Focus() {
	s.editing = true
	s.input.Focus()
}

// Blur hides the cursor
func (s *SearchBar) Blur() {
	s.editing = false
	s.input.Blur()
}

// Editing returns true while the bar has keyboard focus
func (s SearchBar) Editing() bool {
	return s.editing
}

// SetWidth sets the outer width including the border
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// border(2) + prompt(2) + cursor(1)
	s.input.Width = max(width-BorderWidth-len(s.input.Prompt)-1, 1)
}

// View renders the search bar
func (s SearchBar) View() string {
	style := styles.InactiveBorder
	if s.editing {
		style = styles.ActiveBorder
	}
	frameW, _ := style.GetFrameSize()

	return style.
		Width(max(s.width-frameW, 0)).
		Render(s.input.View())
}
