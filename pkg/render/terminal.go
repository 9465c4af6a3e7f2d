package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer onto a terminal screen region. Each terminal
// row carries two framebuffer rows through the upper-half-block glyph: the
// cell foreground is the top pixel, the background the bottom pixel, both
// resolved through the palette.
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
					Fg: fb.pal[fb.GetPixel(x, topY)],
					Bg: fb.pal[fb.GetPixel(x, botY)],
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// DrawPaletteStrip overwrites a row of the framebuffer with 16 color
// swatches, one block per palette entry. The original bound this to a key
// for checking the display path.
func (fb *Framebuffer) DrawPaletteStrip(y, swatchWidth, height int) {
	for c := 0; c < 16; c++ {
		for dy := 0; dy < height; dy++ {
			for dx := 0; dx < swatchWidth; dx++ {
				fb.SetPixel(c*swatchWidth+dx, y+dy, uint8(c))
			}
		}
	}
}
