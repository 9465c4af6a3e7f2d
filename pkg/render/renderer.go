package render

import (
	"time"

	"github.com/taigrr/relic/pkg/bsp"
	"github.com/taigrr/relic/pkg/mesh"
)

// Colors the renderer draws with. Fill color cycles per face index the way
// the original picked pens; outlines always use pen 7.
const (
	OutlineColor    = 7
	BackgroundColor = 0
)

// FillColor returns the cyclic fill pen for face f, skipping pen 0 so fills
// never match the background.
func FillColor(f int) uint8 {
	return uint8(f%15) + 1
}

// FrameStats reports what one rendered frame did.
type FrameStats struct {
	Vertices    int
	FacesDrawn  int
	FacesCulled int
	Duration    time.Duration
}

// Renderer drives the full pipeline for one model into one framebuffer.
type Renderer struct {
	ctx     *RasterContext
	vp      Viewport
	outline bool
}

// NewRenderer creates a renderer drawing through ctx with viewport vp.
// Outlines are on until SetOutline turns them off.
func NewRenderer(ctx *RasterContext, vp Viewport) *Renderer {
	return &Renderer{ctx: ctx, vp: vp, outline: true}
}

// SetOutline controls whether faces are traced with the outline pen after
// filling.
func (r *Renderer) SetOutline(on bool) { r.outline = on }

// Viewport returns the renderer's projection parameters.
func (r *Renderer) Viewport() Viewport { return r.vp }

// Frame renders the model with painter's-algorithm ordering: transform,
// per-face depths, depth sort, then back-to-front fill and outline of every
// visible face.
func (r *Renderer) Frame(m *mesh.Model, obs Observer) FrameStats {
	start := time.Now()
	r.ctx.fb.Clear(BackgroundColor)

	Project(m, obs, r.vp)
	ComputeFaceDepths(m)
	SortFacesByDepth(m)

	stats := FrameStats{Vertices: m.VertexCount()}
	for _, f := range m.Order() {
		if !m.FaceVisible(f) {
			stats.FacesCulled++
			continue
		}
		r.drawFace(m, f)
		stats.FacesDrawn++
	}
	stats.Duration = time.Since(start)
	return stats
}

// FrameBSP renders the model using a precomputed BSP tree for ordering:
// transform, then a back-to-front walk from the observer's position. Faces
// with any vertex behind the camera are skipped at emit time.
func (r *Renderer) FrameBSP(m *mesh.Model, tree *bsp.Tree, obs Observer) FrameStats {
	start := time.Now()
	r.ctx.fb.Clear(BackgroundColor)

	Project(m, obs, r.vp)

	stats := FrameStats{Vertices: m.VertexCount()}
	tree.Traverse(m, obs.WorldPosition(), func(f int) {
		for _, v := range m.FaceIndices(f) {
			if m.VertexDepth(v) <= 0 {
				stats.FacesCulled++
				return
			}
		}
		r.drawFace(m, f)
		stats.FacesDrawn++
	})
	stats.Duration = time.Since(start)
	return stats
}

// drawFace fills and outlines one face from its projected vertices.
func (r *Renderer) drawFace(m *mesh.Model, f int) {
	pts := r.ctx.points[:0]
	for _, v := range m.FaceIndices(f) {
		x, y := m.Screen(v)
		pts = append(pts, Point{x, y})
	}
	r.ctx.FillPolygon(pts, FillColor(f))
	if r.outline {
		r.ctx.DrawPolygonOutline(pts, OutlineColor)
	}
	r.ctx.points = pts[:0]
}
