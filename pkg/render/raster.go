package render

import (
	"sort"

	"github.com/taigrr/relic/pkg/mesh"
)

// Point is a screen-space pixel coordinate.
type Point struct {
	X, Y int
}

// RasterContext draws into one framebuffer and owns the reusable scratch
// memory of the scanline fill. It is not safe for concurrent use; the
// pipeline is single-threaded by design.
type RasterContext struct {
	fb     *Framebuffer
	points []Point // polygon scratch, reused every face
	xcross []int   // per-scanline crossing scratch
}

// NewRasterContext creates a rasterizer bound to fb, with scratch sized for
// the loader's per-face vertex cap.
func NewRasterContext(fb *Framebuffer) *RasterContext {
	return &RasterContext{
		fb:     fb,
		points: make([]Point, 0, mesh.MaxFaceVertices),
		xcross: make([]int, 0, mesh.MaxFaceVertices*2),
	}
}

// Framebuffer returns the bound framebuffer.
func (rc *RasterContext) Framebuffer() *Framebuffer { return rc.fb }

// FillPolygon scanline-fills the polygon with color c. For each raster line
// between the polygon's vertical extremes it collects edge crossings, sorts
// them ascending, and fills between pairs, clipped to the framebuffer.
//
// Edges count a crossing over the half-open span [minY, maxY), so a vertex
// that is a strict local maximum contributes no crossing at its own
// scanline. That keeps crossing counts even through pinch points of
// self-intersecting input. An odd trailing crossing means a malformed
// polygon; the leftover crossing fills nothing.
func (rc *RasterContext) FillPolygon(pts []Point, c uint8) {
	n := len(pts)
	if n < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= rc.fb.height {
		maxY = rc.fb.height - 1
	}

	for y := minY; y <= maxY; y++ {
		xs := rc.xcross[:0]
		for i := 0; i < n; i++ {
			p0 := pts[i]
			p1 := pts[(i+1)%n]
			if p0.Y == p1.Y {
				continue
			}
			if (p0.Y <= y && y < p1.Y) || (p1.Y <= y && y < p0.Y) {
				x := p0.X + (y-p0.Y)*(p1.X-p0.X)/(p1.Y-p0.Y)
				xs = append(xs, x)
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xa, xb := xs[i], xs[i+1]
			if xa < 0 {
				xa = 0
			}
			if xb >= rc.fb.width {
				xb = rc.fb.width - 1
			}
			for x := xa; x <= xb; x++ {
				rc.fb.SetPixel(x, y, c)
			}
		}
		rc.xcross = xs[:0]
	}
}

// DrawLine plots the Bresenham path from (x0, y0) to (x1, y1) inclusive of
// both endpoints. Out-of-bounds pixels are dropped by the framebuffer.
func (rc *RasterContext) DrawLine(x0, y0, x1, y1 int, c uint8) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		rc.fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawPolygonOutline strokes every edge of the polygon including the
// closing edge.
func (rc *RasterContext) DrawPolygonOutline(pts []Point, c uint8) {
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		p0 := pts[i]
		p1 := pts[(i+1)%n]
		rc.DrawLine(p0.X, p0.Y, p1.X, p1.Y, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
