package render

import (
	"github.com/taigrr/relic/pkg/fixed"
	"github.com/taigrr/relic/pkg/mesh"
)

// Project runs the fused transform and perspective pass over every vertex of
// the model, storing camera-space coordinates and integer screen coordinates
// in place. Vertices at or behind the camera plane (zo <= 0) get the
// offscreen sentinel instead of projected coordinates.
//
// Camera transform and projection are one loop on purpose: vertex columns
// are read once per frame, not twice.
func Project(m *mesh.Model, obs Observer, vp Viewport) {
	sinH := fixed.Radians(obs.AngleH).Sin()
	cosH := fixed.Radians(obs.AngleH).Cos()
	sinV := fixed.Radians(obs.AngleV).Sin()
	cosV := fixed.Radians(obs.AngleV).Cos()
	sinW := fixed.Radians(obs.AngleW).Sin()
	cosW := fixed.Radians(obs.AngleW).Cos()

	// Pairwise rotation products, once per frame.
	cosHcosV := cosH.Mul(cosV)
	sinHcosV := sinH.Mul(cosV)
	cosHsinV := cosH.Mul(sinV)
	sinHsinV := sinH.Mul(sinV)

	cx, cy := vp.Center()

	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.Vertex(i)

		zo := -x.Mul(cosHcosV) - y.Mul(sinHcosV) - z.Mul(sinV) + obs.Distance
		if zo <= 0 {
			m.SetCamera(i, 0, 0, zo)
			m.SetScreen(i, mesh.ScreenOffscreen, mesh.ScreenOffscreen)
			continue
		}

		xo := -x.Mul(sinH) + y.Mul(cosH)
		yo := -x.Mul(cosHsinV) - y.Mul(sinHsinV) + z.Mul(cosV)
		m.SetCamera(i, xo, yo, zo)

		inv := vp.Scale.Div(zo)
		sx := xo.Mul(inv) + cx
		sy := cy - yo.Mul(inv)

		// Screen roll rotates the projected point about the center.
		if obs.AngleW != 0 {
			dx := sx - cx
			dy := sy - cy
			sx = cx + dx.Mul(cosW) - dy.Mul(sinW)
			sy = cy + dx.Mul(sinW) + dy.Mul(cosW)
		}

		m.SetScreen(i, sx.Int(), sy.Int())
	}
}
