package main

import (
	"fmt"

	uv "github.com/charmbracelet/ultraviolet"
)

// present flushes the framebuffer to the terminal and overlays the HUD.
func (v *viewer) present() {
	// Half-block cells: two framebuffer rows per terminal row.
	cols := v.fb.Width()
	rows := (v.fb.Height() + 1) / 2
	if cols > v.width {
		cols = v.width
	}
	if rows > v.height {
		rows = v.height
	}
	v.fb.Draw(v.term, uv.Rect(0, 0, cols, rows))
	v.term.Display()
	v.drawHUD()
}

// ANSI helpers for the overlay lines, drawn outside the cell grid the way
// a status line would be.
const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiBg    = "\x1b[40m"
	ansiFg    = "\x1b[97m"
	ansiCyan  = "\x1b[96m"
	ansiGreen = "\x1b[92m"
	clearLine = "\x1b[2K"
)

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

func (v *viewer) drawHUD() {
	// Clear the overlay rows every frame so toggles take effect.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(2, 1) + clearLine)
	fmt.Print(moveTo(v.height, 1) + clearLine)

	if v.showInfo {
		m := v.scenes.model
		info := fmt.Sprintf("%s%s%s %s  %d vertices  %d faces  drawn %d  culled %d  %.1fms %s",
			ansiBg, ansiBold, ansiFg,
			m.Name(), m.VertexCount(), m.FaceCount(),
			v.stats.FacesDrawn, v.stats.FacesCulled,
			float64(v.stats.Duration.Microseconds())/1000, ansiReset)
		fmt.Print(moveTo(1, 1) + info)

		obs := fmt.Sprintf("%s%s h:%d v:%d w:%d dist:%.1f mode:%s %s",
			ansiBg, ansiCyan,
			v.observer.AngleH, v.observer.AngleV, v.observer.AngleW,
			v.distance.pos, v.mode, ansiReset)
		fmt.Print(moveTo(2, 1) + obs)
	}

	if v.showHelp {
		help := fmt.Sprintf("%s%s arrows rotate  w/x roll  a/z distance  space info  c palette  b mode  n next  s shot  esc quit %s",
			ansiBg, ansiGreen, ansiReset)
		fmt.Print(moveTo(v.height, 1) + help)
	} else if v.notice != "" {
		fmt.Print(moveTo(v.height, 1) + ansiBg + ansiDim + ansiFg + " " + v.notice + " " + ansiReset)
	}
}
