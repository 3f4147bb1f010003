package tui

// Layout proportions
const (
	DefaultListPercent = 50
	MinPaneWidth       = 20

	// Vertical chrome: bordered search bar on top, single footer line
	SearchBarHeight = 3
	FooterHeight    = 1
)

// paneLayout holds the computed component sizes
type paneLayout struct {
	listWidth     int
	detailWidth   int
	contentHeight int
}

// calculateLayout splits the width between list and detail pane
func (m Model) calculateLayout() paneLayout {
	contentHeight := max(m.Height-SearchBarHeight-FooterHeight, 3)

	listWidth := m.Width * m.opts.ListPercent / 100
	detailWidth := m.Width - listWidth

	// Narrow terminals give the whole width to the list
	if detailWidth < MinPaneWidth {
		listWidth = m.Width
		detailWidth = 0
	}

	return paneLayout{
		listWidth:     listWidth,
		detailWidth:   detailWidth,
		contentHeight: contentHeight,
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	layout := m.calculateLayout()
	m.SearchBar.SetWidth(m.Width)
	m.List.SetSize(layout.listWidth, layout.contentHeight)
	m.Detail.SetSize(layout.detailWidth, layout.contentHeight)
}
