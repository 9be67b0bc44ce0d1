package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf is drawn with the foreground set to the top pixel and the
// background set to the bottom pixel, so one cell shows two pixels.
const upperHalf = "▀"

// HalfBlocks renders img as terminal cells, two pixel rows per text row.
// An odd final pixel row is paired with black.
func HalfBlocks(img image.Image) string {
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.At(x, y)
			var bottom color.Color = color.Black
			if y+1 < b.Max.Y {
				bottom = img.At(x, y+1)
			}
			style := lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom))
			sb.WriteString(style.Render(upperHalf))
		}
	}
	return sb.String()
}

// TerminalFrame letterboxes img into cols x rows cells.
func TerminalFrame(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	return HalfBlocks(Letterbox(img, cols, rows*2))
}

func hex(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))
}
