package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/tui/styles"
)

// Frame and chrome sizes shared by the panes
const (
	BorderWidth          = 2
	BorderHeight         = 2
	ScrollIndicatorLines = 2
)

// ResultsList renders the result sequence with the selection cursor.
// It holds no state of its own beyond the scroll offset; items and
// cursor are pushed in from the result store.
type ResultsList struct {
	items   []domain.ResultItem
	cursor  int // -1 when nothing is selected
	offset  int
	query   string
	matches map[int]map[int]bool // item index -> matched byte offsets in title

	width      int
	height     int
	maxVisible int
	focused    bool
	loading    string // spinner frame while a search is in flight
}

// NewResultsList creates an empty list
func NewResultsList() ResultsList {
	return ResultsList{cursor: -1}
}

// SetItems replaces the rendered items and recomputes highlights for query
func (l *ResultsList) SetItems(items []domain.ResultItem, query string) {
	l.items = items
	l.query = query
	l.offset = 0
	l.matches = highlightMatches(items, query)
}

// SetCursor moves the highlighted row; ok=false clears it
func (l *ResultsList) SetCursor(index int, ok bool) {
	if !ok || index < 0 || index >= len(l.items) {
		l.cursor = -1
		return
	}
	l.cursor = index
	l.ensureVisible()
}

// SetSize sets the outer dimensions including the border
func (l *ResultsList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

func (l *ResultsList) SetFocused(focused bool) {
	l.focused = focused
}

// SetLoading shows a spinner frame in the title; empty hides it
func (l *ResultsList) SetLoading(frame string) {
	l.loading = frame
}

// RowAt maps a y coordinate relative to the top of the list pane to an
// item index. Used for mouse clicks.
func (l ResultsList) RowAt(y int) (int, bool) {
	// border + title + scroll indicator
	row := y - 1 - 1 - 1
	if row < 0 || row >= l.maxVisible {
		return 0, false
	}
	idx := l.offset + row
	if idx >= len(l.items) {
		return 0, false
	}
	return idx, true
}

func (l *ResultsList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ResultsList) ensureVisible() {
	if l.maxVisible <= 0 || l.cursor < 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the list pane
func (l ResultsList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l ResultsList) renderContent() string {
	itemWidth := l.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	title := "Results"
	if len(l.items) > 0 {
		title = fmt.Sprintf("Results (%d)", len(l.items))
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, itemWidth-2))
	if l.loading != "" {
		titleLine += " " + styles.SpinnerStyle.Render(l.loading)
	}

	if len(l.items) == 0 {
		msg := "Press / to search"
		if l.loading != "" {
			msg = "Searching..."
		} else if l.query != "" {
			msg = "No results"
		}
		return titleLine + "\n" + " " + "\n" + styles.DimStyle.Render(msg)
	}

	end := min(l.offset+l.maxVisible, len(l.items))

	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderItem(i, i == l.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(l.items) {
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (l ResultsList) renderItem(i int, selected bool, width int) string {
	item := l.items[i]

	badge, badgeFg := kindBadge(item.Kind)

	suffix := ""
	switch item.Kind {
	case domain.KindVideo:
		suffix = item.FormattedDuration()
	case domain.KindPlaylist:
		suffix = fmt.Sprintf("%d videos", item.VideoCount)
	case domain.KindChannel:
		suffix = "channel"
	case domain.KindUnknown:
	}

	// badge(1) + space(1) + margins(2) + suffix gap
	available := width - 4
	if suffix != "" {
		available -= len(suffix) + 1
	}
	if available < 5 {
		available = 5
		suffix = ""
	}

	title := styles.Truncate(item.DisplayTitle(), available)

	parts := []styles.RowPart{
		{Text: badge, Foreground: &badgeFg},
		{Text: " "},
	}
	parts = append(parts, l.titleParts(i, title, title != item.DisplayTitle(), selected)...)

	if suffix != "" {
		gap := available - lipgloss.Width(title)
		dim := styles.DimGray
		parts = append(parts,
			styles.RowPart{Text: strings.Repeat(" ", max(gap, 0)+1)},
			styles.RowPart{Text: suffix, Foreground: &dim},
		)
	}

	return styles.RenderListRow(parts, selected, width)
}

// titleParts splits title into plain and highlighted runs
func (l ResultsList) titleParts(i int, title string, truncated, selected bool) []styles.RowPart {
	matched := l.matches[i]
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	// Never highlight the ellipsis
	limit := len(title)
	if truncated {
		limit -= len("...")
	}

	hl := styles.MatchHighlightStyle
	if selected {
		hl = styles.MatchHighlightSelectedStyle
	}

	var parts []styles.RowPart
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, styles.RowPart{Text: run.String()})
			run.Reset()
		}
	}
	for pos, r := range title {
		if pos < limit && matched[pos] {
			flush()
			parts = append(parts, styles.RowPart{Rendered: hl.Render(string(r))})
			continue
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

// kindBadge returns the one-cell marker for a result kind
func kindBadge(kind domain.ResultKind) (string, lipgloss.Color) {
	switch kind {
	case domain.KindVideo:
		return "▶", styles.VideoBadgeColor
	case domain.KindPlaylist:
		return "≡", styles.PlaylistBadgeColor
	case domain.KindChannel:
		return "@", styles.ChannelBadgeColor
	default:
		return "?", styles.UnknownBadgeColor
	}
}

// highlightMatches fuzzy-matches the query against every title.
// Only highlights are computed; the provider order is never changed.
func highlightMatches(items []domain.ResultItem, query string) map[int]map[int]bool {
	pattern := strings.ToLower(strings.Join(strings.Fields(query), ""))
	if pattern == "" || len(items) == 0 {
		return nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = strings.ToLower(item.DisplayTitle())
	}

	out := make(map[int]map[int]bool)
	for _, match := range fuzzy.Find(pattern, titles) {
		// Lowercasing may change byte offsets for some scripts
		if len(titles[match.Index]) != len(items[match.Index].DisplayTitle()) {
			continue
		}
		set := make(map[int]bool, len(match.MatchedIndexes))
		for _, pos := range match.MatchedIndexes {
			set[pos] = true
		}
		out[match.Index] = set
	}
	return out
}
