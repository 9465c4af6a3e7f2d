package render

import (
	"math/rand"
	"testing"

	"github.com/taigrr/relic/pkg/fixed"
	"github.com/taigrr/relic/pkg/mesh"
)

// modelWithDepths builds one triangle per depth value and stamps the face
// depths directly, bypassing Project.
func modelWithDepths(t *testing.T, depths []fixed.Fixed) *mesh.Model {
	t.Helper()
	m, err := mesh.New(3, len(depths))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := m.AppendVertex(0, 0, 0); err != nil {
			t.Fatal(err)
		}
	}
	for range depths {
		if _, err := m.AppendFace([]int{0, 1, 2}); err != nil {
			t.Fatal(err)
		}
	}
	for f, d := range depths {
		m.SetFaceDepth(f, d)
	}
	return m
}

func assertDescending(t *testing.T, m *mesh.Model) {
	t.Helper()
	order := m.Order()
	for i := 1; i < len(order); i++ {
		if m.FaceDepth(order[i-1]) < m.FaceDepth(order[i]) {
			t.Fatalf("order not descending at %d: %v then %v",
				i, m.FaceDepth(order[i-1]).Float(), m.FaceDepth(order[i]).Float())
		}
	}
}

func assertPermutation(t *testing.T, m *mesh.Model) {
	t.Helper()
	seen := make(map[int]bool)
	for _, f := range m.Order() {
		if f < 0 || f >= m.FaceCount() || seen[f] {
			t.Fatalf("order is not a permutation: %v", m.Order())
		}
		seen[f] = true
	}
}

// Small face counts take the insertion sort path.
func TestSortFacesByDepthSmall(t *testing.T) {
	depths := []fixed.Fixed{
		fixed.FromInt(5), fixed.FromInt(40), fixed.FromInt(12),
		fixed.FromInt(40), fixed.FromInt(1),
	}
	m := modelWithDepths(t, depths)
	SortFacesByDepth(m)
	assertDescending(t, m)
	assertPermutation(t, m)
	if got := m.Order()[len(depths)-1]; got != 4 {
		t.Errorf("nearest face drawn last should be face 4, got %d", got)
	}
}

// Above the threshold the quicksort path runs, with insertion sort on the
// small partitions.
func TestSortFacesByDepthLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	depths := make([]fixed.Fixed, 300)
	for i := range depths {
		depths[i] = fixed.FromInt(rng.Intn(1000))
	}
	m := modelWithDepths(t, depths)
	SortFacesByDepth(m)
	assertDescending(t, m)
	assertPermutation(t, m)
}

// Sorting twice must give the same permutation as sorting once: the reset
// to identity makes the second sort start from the same state.
func TestSortFacesByDepthIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	depths := make([]fixed.Fixed, 64)
	for i := range depths {
		depths[i] = fixed.FromInt(rng.Intn(50))
	}
	m := modelWithDepths(t, depths)

	SortFacesByDepth(m)
	first := make([]int, len(depths))
	copy(first, m.Order())

	SortFacesByDepth(m)
	for i, f := range m.Order() {
		if f != first[i] {
			t.Fatalf("second sort diverged at %d: %d vs %d", i, f, first[i])
		}
	}
}

func TestComputeFaceDepths(t *testing.T) {
	m, err := mesh.New(6, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		if _, err := m.AppendVertex(0, 0, 0); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.AppendFace([]int{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AppendFace([]int{3, 4, 5}); err != nil {
		t.Fatal(err)
	}

	// Face 0 fully in front, face 1 with one vertex behind the camera.
	m.SetCamera(0, 0, 0, fixed.FromInt(10))
	m.SetCamera(1, 0, 0, fixed.FromInt(30))
	m.SetCamera(2, 0, 0, fixed.FromInt(20))
	m.SetCamera(3, 0, 0, fixed.FromInt(8))
	m.SetCamera(4, 0, 0, fixed.FromInt(-2))
	m.SetCamera(5, 0, 0, fixed.FromInt(9))

	ComputeFaceDepths(m)

	if got := m.FaceDepth(0); got != fixed.FromInt(10) {
		t.Errorf("face 0 depth = %v, want 10 (minimum zo)", got.Float())
	}
	if !m.FaceVisible(0) {
		t.Error("face 0 should be visible")
	}
	if got := m.FaceDepth(1); got != fixed.FromInt(-2) {
		t.Errorf("face 1 depth = %v, want -2", got.Float())
	}
	if m.FaceVisible(1) {
		t.Error("face 1 has a vertex behind the camera, should be culled")
	}
}
