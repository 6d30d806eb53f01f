package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer onto terminal cells. Each cell shows two
// vertically stacked pixels with the upper half block (▀): the foreground
// is the upper pixel and the background the lower one. The framebuffer is
// read top-down, so call FlipVertical first for a bottom-left origin frame.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= fb.height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.width {
				break
			}

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.Pixel(x, topY)),
					Bg: cellColor(fb.Pixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor converts a pixel to a terminal color. Fully transparent pixels
// leave the terminal's default color.
func cellColor(c Color) color.Color {
	if c.Format == FormatRGBA && c.A == 0 {
		return nil
	}
	return c.NRGBA()
}
