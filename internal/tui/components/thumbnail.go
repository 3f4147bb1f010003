package components

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// halfBlock paints the top pixel as foreground and the bottom one as background
const halfBlock = "▀"

// RenderHalfBlocks draws img into at most cols x rows terminal cells.
// Each cell carries two vertical pixels, so the image is scaled to
// cols x 2*rows before painting.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	scaled := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := scaled.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	lines := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexAt(scaled, x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = hexAt(scaled, x, y+1)
			}
			line.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// hexAt returns the pixel colour as #rrggbb, black for transparent pixels
func hexAt(img image.Image, x, y int) string {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return "#000000"
	}
	return c.Clamped().Hex()
}

// thumbnailCache memoizes the last rendering
type thumbnailCache struct {
	img        image.Image
	cols, rows int
	out        string
}

func (c *thumbnailCache) render(img image.Image, cols, rows int) string {
	if c.img != nil && c.img == img && c.cols == cols && c.rows == rows {
		return c.out
	}
	c.img, c.cols, c.rows = img, cols, rows
	c.out = RenderHalfBlocks(img, cols, rows)
	return c.out
}
