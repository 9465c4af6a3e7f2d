// Package bsp consumes precomputed binary space partition trees for exact
// back-to-front face ordering without per-frame sorting. Trees are built
// offline; this package only loads and walks them.
package bsp

import (
	"github.com/taigrr/relic/pkg/fixed"
	"github.com/taigrr/relic/pkg/mesh"
)

// NoChild marks an absent subtree.
const NoChild = -1

// Node is one partition of the tree. The plane is defined by the first
// three vertices of PlaneFace; Coplanar ranges index into Tree.Coplanar.
type Node struct {
	PlaneFace     int
	CoplanarStart int
	CoplanarCount int
	Front         int
	Back          int
}

// Tree is a loaded partition tree over a model's faces. It is read-only
// during traversal; only the camera position changes between frames.
type Tree struct {
	Nodes    []Node
	Coplanar []int
}

// Classify returns the signed distance sense of the camera against the
// node's partition plane: positive when the camera is on the side the plane
// normal points toward. The normal comes from the cross product of two edge
// vectors of the plane face.
func (t *Tree) Classify(m *mesh.Model, node int, camera fixed.Vec3) fixed.Fixed {
	face := t.Nodes[node].PlaneFace
	idx := m.FaceIndices(face)
	ax, ay, az := m.Vertex(idx[0])
	bx, by, bz := m.Vertex(idx[1])
	cx, cy, cz := m.Vertex(idx[2])

	a := fixed.V3(ax, ay, az)
	ab := fixed.V3(bx, by, bz).Sub(a)
	ac := fixed.V3(cx, cy, cz).Sub(a)
	normal := ab.Cross(ac)

	return normal.Dot(camera.Sub(a))
}

// Traverse walks the tree back-to-front relative to the camera and calls
// emit for each drawable face. When the camera sits on the positive side of
// a node's plane, the back subtree is emitted first, then the node's
// coplanar faces, then the front subtree; on the negative side the order
// flips. Faces with fewer than three vertices or stale vertex references
// are filtered out before emit. Out-of-range node or face indices act as
// empty subtrees.
func (t *Tree) Traverse(m *mesh.Model, camera fixed.Vec3, emit func(face int)) {
	if len(t.Nodes) == 0 {
		return
	}
	t.walk(m, 0, camera, emit)
}

func (t *Tree) walk(m *mesh.Model, node int, camera fixed.Vec3, emit func(face int)) {
	if node < 0 || node >= len(t.Nodes) {
		return
	}
	n := t.Nodes[node]
	if n.PlaneFace < 0 || n.PlaneFace >= m.FaceCount() || m.FaceVertexCount(n.PlaneFace) < 3 {
		return
	}

	side := t.Classify(m, node, camera)
	if side > 0 {
		t.walk(m, n.Back, camera, emit)
		t.emitCoplanar(m, n, emit)
		t.walk(m, n.Front, camera, emit)
	} else {
		t.walk(m, n.Front, camera, emit)
		t.emitCoplanar(m, n, emit)
		t.walk(m, n.Back, camera, emit)
	}
}

func (t *Tree) emitCoplanar(m *mesh.Model, n Node, emit func(face int)) {
	for i := 0; i < n.CoplanarCount; i++ {
		k := n.CoplanarStart + i
		if k < 0 || k >= len(t.Coplanar) {
			continue
		}
		f := t.Coplanar[k]
		if f < 0 || f >= m.FaceCount() {
			continue
		}
		if m.FaceVertexCount(f) < 3 {
			continue
		}
		if !faceIndicesValid(m, f) {
			continue
		}
		emit(f)
	}
}

func faceIndicesValid(m *mesh.Model, f int) bool {
	for _, v := range m.FaceIndices(f) {
		if v < 0 || v >= m.VertexCount() {
			return false
		}
	}
	return true
}
