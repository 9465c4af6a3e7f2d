package render

import (
	"sort"
	"testing"

	"github.com/taigrr/relic/pkg/bsp"
	"github.com/taigrr/relic/pkg/fixed"
	"github.com/taigrr/relic/pkg/mesh"
)

// tetrahedron builds a small closed solid near the origin.
func tetrahedron(t *testing.T) *mesh.Model {
	t.Helper()
	m, err := mesh.New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	verts := [][3]int{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}, {0, 0, 0}}
	for _, v := range verts {
		if _, err := m.AppendVertex(
			fixed.FromInt(v[0]), fixed.FromInt(v[1]), fixed.FromInt(v[2]),
		); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range [][]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}} {
		if _, err := m.AppendFace(f); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

// linearTree chains every face into one BSP path so a traversal touches
// them all.
func linearTree(m *mesh.Model) *bsp.Tree {
	t := &bsp.Tree{}
	for f := 0; f < m.FaceCount(); f++ {
		next := f + 1
		if next == m.FaceCount() {
			next = bsp.NoChild
		}
		t.Nodes = append(t.Nodes, bsp.Node{
			PlaneFace:     f,
			CoplanarStart: f,
			CoplanarCount: 1,
			Front:         next,
			Back:          bsp.NoChild,
		})
		t.Coplanar = append(t.Coplanar, f)
	}
	return t
}

func TestFrameDrawsModel(t *testing.T) {
	m := tetrahedron(t)
	fb, err := NewFramebuffer(DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(NewRasterContext(fb), DefaultViewport())

	stats := r.Frame(m, DefaultObserver())
	if stats.Vertices != 4 {
		t.Errorf("stats.Vertices = %d, want 4", stats.Vertices)
	}
	if stats.FacesDrawn != 4 {
		t.Errorf("stats.FacesDrawn = %d, want 4", stats.FacesDrawn)
	}

	// Outline pixels must exist at the projected corners.
	drew := false
	for y := 0; y < fb.Height() && !drew; y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.GetPixel(x, y) != BackgroundColor {
				drew = true
				break
			}
		}
	}
	if !drew {
		t.Error("frame left the framebuffer empty")
	}
}

func TestFrameCullsFacesBehindCamera(t *testing.T) {
	m, err := mesh.New(4, 1)
	if err != nil {
		t.Fatal(err)
	}
	// With zero angles zo = distance - x; x = 50 puts the face behind a
	// camera at distance 30.
	for i := 0; i < 3; i++ {
		if _, err := m.AppendVertex(fixed.FromInt(50), fixed.FromInt(i), 0); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.AppendFace([]int{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	fb, err := NewFramebuffer(DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(NewRasterContext(fb), DefaultViewport())

	stats := r.Frame(m, Observer{Distance: fixed.FromInt(30)})
	if stats.FacesDrawn != 0 || stats.FacesCulled != 1 {
		t.Errorf("drawn/culled = %d/%d, want 0/1", stats.FacesDrawn, stats.FacesCulled)
	}
}

// Both visibility strategies must agree on the set of faces they emit when
// nothing is behind the camera; only the order may differ.
func TestDepthSortAndBSPEmitSameFaceSet(t *testing.T) {
	m := tetrahedron(t)
	tree := linearTree(m)
	obs := DefaultObserver()
	vp := DefaultViewport()

	Project(m, obs, vp)
	ComputeFaceDepths(m)
	SortFacesByDepth(m)

	var sorted []int
	for _, f := range m.Order() {
		if m.FaceVisible(f) {
			sorted = append(sorted, f)
		}
	}

	var walked []int
	tree.Traverse(m, obs.WorldPosition(), func(f int) {
		walked = append(walked, f)
	})

	sort.Ints(sorted)
	sort.Ints(walked)
	if len(sorted) != len(walked) {
		t.Fatalf("emitted sets differ in size: %v vs %v", sorted, walked)
	}
	for i := range sorted {
		if sorted[i] != walked[i] {
			t.Fatalf("emitted sets differ: %v vs %v", sorted, walked)
		}
	}
}

func TestFrameBSPDrawsModel(t *testing.T) {
	m := tetrahedron(t)
	tree := linearTree(m)
	fb, err := NewFramebuffer(DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(NewRasterContext(fb), DefaultViewport())

	stats := r.FrameBSP(m, tree, DefaultObserver())
	if stats.FacesDrawn != 4 {
		t.Errorf("stats.FacesDrawn = %d, want 4", stats.FacesDrawn)
	}
}

func TestSetOutlineOffDropsOutlinePen(t *testing.T) {
	m := tetrahedron(t)
	fb, err := NewFramebuffer(DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(NewRasterContext(fb), DefaultViewport())
	r.SetOutline(false)

	r.Frame(m, DefaultObserver())
	// The tetrahedron's fills are pens 1..4, so with outlines off pen 7
	// cannot appear anywhere.
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.GetPixel(x, y) == OutlineColor {
				t.Fatalf("outline pen at (%d,%d) with outlines disabled", x, y)
			}
		}
	}
}

func TestFillColorCycles(t *testing.T) {
	if FillColor(0) != 1 {
		t.Errorf("FillColor(0) = %d, want 1", FillColor(0))
	}
	if FillColor(14) != 15 {
		t.Errorf("FillColor(14) = %d, want 15", FillColor(14))
	}
	if FillColor(15) != 1 {
		t.Errorf("FillColor(15) = %d, want 1 (wraps past the background)", FillColor(15))
	}
	for f := 0; f < 64; f++ {
		if FillColor(f) == BackgroundColor {
			t.Fatalf("FillColor(%d) matches the background", f)
		}
	}
}
