package components

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/mmcdole/vidsearch/internal/domain"
	"github.com/mmcdole/vidsearch/internal/tui/styles"
)

// maxRawLines caps the JSON excerpt shown for unknown results
const maxRawLines = 12

// DetailPane shows the selected result
type DetailPane struct {
	item    *domain.ResultItem
	width   int
	height  int
	focused bool
	thumbs  *thumbnailCache
}

// NewDetailPane creates an empty detail pane
func NewDetailPane() DetailPane {
	return DetailPane{thumbs: &thumbnailCache{}}
}

// SetItem sets the item to display; nil shows the help blurb
func (d *DetailPane) SetItem(item *domain.ResultItem) {
	d.item = item
}

// SetSize sets the outer dimensions including the border
func (d *DetailPane) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *DetailPane) SetFocused(focused bool) {
	d.focused = focused
}

// View renders the detail pane
func (d DetailPane) View() string {
	style := styles.InactiveBorder
	if d.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()

	// Leave 1 char safety margin
	contentWidth := max(d.width-frameW-1, 10)
	contentHeight := max(d.height-frameH, 1)

	titleLine := styles.AccentStyle.Render("Details")
	body := d.renderBody(contentWidth, contentHeight-2)

	lines := append([]string{titleLine, ""}, splitLines(body)...)
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}

	return style.
		Width(max(d.width-frameW, 0)).
		Height(contentHeight).
		Render(strings.Join(lines, "\n"))
}

func (d DetailPane) renderBody(width, height int) string {
	if d.item == nil {
		return renderHelpBlurb()
	}

	item := *d.item
	switch item.Kind {
	case domain.KindVideo:
		return d.renderVideo(item, width, height)
	case domain.KindPlaylist:
		return d.renderPlaylist(item, width, height)
	case domain.KindChannel:
		return d.renderChannel(item, width, height)
	default:
		return renderUnknown(item, width)
	}
}

func (d DetailPane) renderVideo(item domain.ResultItem, width, height int) string {
	var b strings.Builder

	b.WriteString(d.renderThumbnail(item.Thumbnail, width, height))
	b.WriteString(styles.TitleStyle.Render(wordWrap(item.Title, width)))
	b.WriteString("\n")
	if item.Author != "" {
		b.WriteString(styles.SubtitleStyle.Render(item.Author))
		b.WriteString("\n")
	}

	var meta []string
	if dur := item.FormattedDuration(); dur != "" {
		meta = append(meta, dur)
	}
	if item.Views > 0 {
		meta = append(meta, humanize.Comma(item.Views)+" views")
	}
	if item.Published != "" {
		meta = append(meta, item.Published)
	}
	if len(meta) > 0 {
		b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	if item.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(item.Description, width)))
	}
	return b.String()
}

func (d DetailPane) renderPlaylist(item domain.ResultItem, width, height int) string {
	var b strings.Builder

	b.WriteString(d.renderThumbnail(item.Thumbnail, width, height))
	b.WriteString(styles.TitleStyle.Render(wordWrap(item.Title, width)))
	b.WriteString("\n")
	if item.Author != "" {
		b.WriteString(styles.SubtitleStyle.Render(item.Author))
		b.WriteString("\n")
	}
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Playlist · %s videos", humanize.Comma(int64(item.VideoCount)))))
	b.WriteString("\n")
	return b.String()
}

func (d DetailPane) renderChannel(item domain.ResultItem, width, height int) string {
	var b strings.Builder

	b.WriteString(d.renderThumbnail(item.Thumbnail, width, height))
	b.WriteString(styles.TitleStyle.Render(wordWrap(item.Title, width)))
	b.WriteString("\n")

	meta := []string{"Channel"}
	if item.Subscribers > 0 {
		meta = append(meta, humanize.Comma(item.Subscribers)+" subscribers")
	}
	if item.VideoCount > 0 {
		meta = append(meta, humanize.Comma(int64(item.VideoCount))+" videos")
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if item.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(item.Description, width)))
	}
	return b.String()
}

func renderUnknown(item domain.ResultItem, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(item.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Unsupported result type"))
	b.WriteString("\n\n")

	if len(item.Raw) == 0 {
		return b.String()
	}

	var pretty bytes.Buffer
	raw := string(item.Raw)
	if err := json.Indent(&pretty, item.Raw, "", "  "); err == nil {
		raw = pretty.String()
	}

	lines := splitLines(raw)
	if len(lines) > maxRawLines {
		lines = append(lines[:maxRawLines], "...")
	}
	for i, line := range lines {
		lines[i] = styles.Truncate(line, width)
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(lines, "\n")))
	return b.String()
}

// renderThumbnail paints a resolved preview using at most half the pane
func (d DetailPane) renderThumbnail(t domain.Thumbnail, width, height int) string {
	switch t.State {
	case domain.ThumbnailResolved:
		rows := min(height/2, width*9/32+1)
		if rows < 2 {
			return ""
		}
		return d.thumbs.render(t.Image, width, rows) + "\n\n"
	case domain.ThumbnailPending:
		return styles.DimStyle.Render("loading preview...") + "\n\n"
	default:
		return ""
	}
}

func renderHelpBlurb() string {
	rows := []struct{ key, desc string }{
		{"/", "search"},
		{"j/k", "move selection"},
		{"enter", "play video"},
		{"tab", "focus details"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.DimStyle.Render("Nothing selected"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(styles.HelpKeyStyle.Render(runewidth.FillRight(r.key, 7)))
		b.WriteString(styles.HelpDescStyle.Render(r.desc))
		b.WriteString("\n")
	}
	return b.String()
}

// splitLines splits a string into lines, returning empty slice for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the specified cell width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for p, paragraph := range strings.Split(text, "\n") {
		if p > 0 {
			result.WriteString("\n")
		}
		lineLen := 0
		for _, word := range strings.Fields(paragraph) {
			word = styles.Truncate(word, width)
			wordLen := runewidth.StringWidth(word)

			if lineLen > 0 && lineLen+wordLen+1 > width {
				result.WriteString("\n")
				lineLen = 0
			}
			if lineLen > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wordLen
		}
	}
	return result.String()
}
