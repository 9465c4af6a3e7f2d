// Package mesh provides column-oriented model storage and loaders for relic.
package mesh

import (
	"errors"
	"fmt"

	"github.com/taigrr/relic/pkg/fixed"
)

// Storage and loader errors.
var (
	ErrBadLimits    = errors.New("mesh: vertex and face limits must be positive")
	ErrVerticesFull = errors.New("mesh: vertex capacity exhausted")
	ErrFacesFull    = errors.New("mesh: face capacity exhausted")
	ErrIndexRange   = errors.New("mesh: face index out of range")
	ErrDegenerate   = errors.New("mesh: face needs at least three vertices")
)

// ScreenOffscreen is stored for both screen coordinates of a vertex that
// projected behind or onto the camera plane.
const ScreenOffscreen = -1

// Model holds a polygon model in column-oriented form: one slice per vertex
// attribute rather than a slice of vertex structs, and one shared packed
// index buffer for all faces. Every slice is allocated once at construction
// and never grows, so a loaded model performs no per-frame allocation.
type Model struct {
	name string

	// Object-space vertex coordinates.
	x, y, z []fixed.Fixed

	// Camera-space coordinates, rewritten by every transform pass.
	xo, yo, zo []fixed.Fixed

	// Projected screen coordinates, or ScreenOffscreen sentinels.
	x2d, y2d []int

	// Packed face index buffer: face f owns indices[offset[f] : offset[f]+count[f]].
	indices []int
	offset  []int
	count   []int

	// Per-face sort state.
	depth   []fixed.Fixed
	visible []bool
	order   []int

	vertexCount int
	faceCount   int
	indexCount  int
}

// New allocates a model with fixed capacity for maxVertices vertices and
// maxFaces faces. The shared index buffer is sized for maxFaces faces of up
// to eight vertices each, matching the loaders' per-face cap.
func New(maxVertices, maxFaces int) (*Model, error) {
	if maxVertices <= 0 || maxFaces <= 0 {
		return nil, fmt.Errorf("%w: vertices=%d faces=%d", ErrBadLimits, maxVertices, maxFaces)
	}
	return &Model{
		x:       make([]fixed.Fixed, maxVertices),
		y:       make([]fixed.Fixed, maxVertices),
		z:       make([]fixed.Fixed, maxVertices),
		xo:      make([]fixed.Fixed, maxVertices),
		yo:      make([]fixed.Fixed, maxVertices),
		zo:      make([]fixed.Fixed, maxVertices),
		x2d:     make([]int, maxVertices),
		y2d:     make([]int, maxVertices),
		indices: make([]int, 0, maxFaces*MaxFaceVertices),
		offset:  make([]int, maxFaces),
		count:   make([]int, maxFaces),
		depth:   make([]fixed.Fixed, maxFaces),
		visible: make([]bool, maxFaces),
		order:   make([]int, maxFaces),
	}, nil
}

// MaxFaceVertices caps the vertex count of a single face. The loaders reject
// longer faces rather than silently truncating them.
const MaxFaceVertices = 8

// Name returns the model's display name.
func (m *Model) Name() string { return m.name }

// SetName sets the model's display name.
func (m *Model) SetName(name string) { m.name = name }

// VertexCount returns the number of appended vertices.
func (m *Model) VertexCount() int { return m.vertexCount }

// FaceCount returns the number of appended faces.
func (m *Model) FaceCount() int { return m.faceCount }

// AppendVertex adds an object-space vertex and returns its index.
func (m *Model) AppendVertex(x, y, z fixed.Fixed) (int, error) {
	if m.vertexCount >= len(m.x) {
		return 0, ErrVerticesFull
	}
	i := m.vertexCount
	m.x[i], m.y[i], m.z[i] = x, y, z
	m.vertexCount++
	return i, nil
}

// AppendFace adds a face referencing previously appended vertices. Every
// index is validated against the current vertex count; a single bad index
// rejects the whole face and the model is left unchanged.
func (m *Model) AppendFace(verts []int) (int, error) {
	if m.faceCount >= len(m.offset) {
		return 0, ErrFacesFull
	}
	if len(verts) < 3 {
		return 0, fmt.Errorf("%w: got %d", ErrDegenerate, len(verts))
	}
	if len(verts) > MaxFaceVertices {
		return 0, fmt.Errorf("mesh: face has %d vertices, limit %d", len(verts), MaxFaceVertices)
	}
	for _, v := range verts {
		if v < 0 || v >= m.vertexCount {
			return 0, fmt.Errorf("%w: index %d, have %d vertices", ErrIndexRange, v, m.vertexCount)
		}
	}
	f := m.faceCount
	m.offset[f] = len(m.indices)
	m.count[f] = len(verts)
	m.indices = append(m.indices, verts...)
	m.faceCount++
	return f, nil
}

// Vertex returns the object-space coordinates of vertex i.
func (m *Model) Vertex(i int) (x, y, z fixed.Fixed) {
	return m.x[i], m.y[i], m.z[i]
}

// SetCamera stores the camera-space coordinates of vertex i.
func (m *Model) SetCamera(i int, xo, yo, zo fixed.Fixed) {
	m.xo[i], m.yo[i], m.zo[i] = xo, yo, zo
}

// Camera returns the camera-space coordinates of vertex i.
func (m *Model) Camera(i int) (xo, yo, zo fixed.Fixed) {
	return m.xo[i], m.yo[i], m.zo[i]
}

// VertexDepth returns only the camera-space depth of vertex i.
func (m *Model) VertexDepth(i int) fixed.Fixed { return m.zo[i] }

// SetScreen stores the projected screen coordinates of vertex i.
func (m *Model) SetScreen(i, x, y int) {
	m.x2d[i], m.y2d[i] = x, y
}

// Screen returns the projected screen coordinates of vertex i.
func (m *Model) Screen(i int) (x, y int) {
	return m.x2d[i], m.y2d[i]
}

// FaceIndices returns the vertex indices of face f as a view into the
// shared index buffer. Callers must not modify or retain it across appends.
func (m *Model) FaceIndices(f int) []int {
	o := m.offset[f]
	return m.indices[o : o+m.count[f]]
}

// FaceVertexCount returns the number of vertices in face f.
func (m *Model) FaceVertexCount(f int) int { return m.count[f] }

// SetFaceDepth stores the sort key for face f.
func (m *Model) SetFaceDepth(f int, d fixed.Fixed) { m.depth[f] = d }

// FaceDepth returns the sort key for face f.
func (m *Model) FaceDepth(f int) fixed.Fixed { return m.depth[f] }

// SetFaceVisible stores the visibility flag for face f.
func (m *Model) SetFaceVisible(f int, v bool) { m.visible[f] = v }

// FaceVisible reports whether face f survived the near-plane test.
func (m *Model) FaceVisible(f int) bool { return m.visible[f] }

// Order returns the face permutation produced by the last sort. Entry k is
// the face to draw k-th.
func (m *Model) Order() []int { return m.order[:m.faceCount] }

// ResetOrder rewrites the permutation to identity.
func (m *Model) ResetOrder() {
	for i := 0; i < m.faceCount; i++ {
		m.order[i] = i
	}
}
