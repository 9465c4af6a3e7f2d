package render

import (
	"github.com/taigrr/relic/pkg/fixed"
	"github.com/taigrr/relic/pkg/mesh"
)

// Below this face count, or on quicksort partitions at or below it,
// insertion sort wins.
const insertionThreshold = 16

// ComputeFaceDepths derives the per-face sort key and visibility flag from
// the camera-space coordinates of the last Project pass. The key is the
// minimum zo among the face's vertices; a face with any vertex at or behind
// the camera plane is marked not visible.
func ComputeFaceDepths(m *mesh.Model) {
	for f := 0; f < m.FaceCount(); f++ {
		visible := true
		var depth fixed.Fixed
		for k, v := range m.FaceIndices(f) {
			zo := m.VertexDepth(v)
			if zo <= 0 {
				visible = false
			}
			if k == 0 || zo < depth {
				depth = zo
			}
		}
		m.SetFaceDepth(f, depth)
		m.SetFaceVisible(f, visible)
	}
}

// SortFacesByDepth orders the face permutation farthest-first so the
// painter's algorithm can overwrite far faces with near ones. The
// permutation is reset to identity first; last frame's order is stale data,
// not a starting point. Ties stay in whatever order the sort leaves them.
func SortFacesByDepth(m *mesh.Model) {
	m.ResetOrder()
	order := m.Order()
	if len(order) <= insertionThreshold {
		insertionSortFaces(m, order)
		return
	}
	quickSortFaces(m, order, 0, len(order)-1)
}

func insertionSortFaces(m *mesh.Model, order []int) {
	for i := 1; i < len(order); i++ {
		f := order[i]
		d := m.FaceDepth(f)
		j := i - 1
		for j >= 0 && m.FaceDepth(order[j]) < d {
			order[j+1] = order[j]
			j--
		}
		order[j+1] = f
	}
}

func quickSortFaces(m *mesh.Model, order []int, lo, hi int) {
	for hi-lo+1 > insertionThreshold {
		p := partitionFaces(m, order, lo, hi)
		// Recurse into the smaller half, loop on the larger.
		if p-lo < hi-p {
			quickSortFaces(m, order, lo, p-1)
			lo = p + 1
		} else {
			quickSortFaces(m, order, p+1, hi)
			hi = p - 1
		}
	}
	insertionSortFaces(m, order[lo:hi+1])
}

// partitionFaces does a median-of-three Hoare-style partition, descending
// by depth.
func partitionFaces(m *mesh.Model, order []int, lo, hi int) int {
	mid := lo + (hi-lo)/2
	// Order lo, mid, hi descending so the median lands at mid.
	if m.FaceDepth(order[mid]) > m.FaceDepth(order[lo]) {
		order[lo], order[mid] = order[mid], order[lo]
	}
	if m.FaceDepth(order[hi]) > m.FaceDepth(order[lo]) {
		order[lo], order[hi] = order[hi], order[lo]
	}
	if m.FaceDepth(order[hi]) > m.FaceDepth(order[mid]) {
		order[mid], order[hi] = order[hi], order[mid]
	}
	pivot := m.FaceDepth(order[mid])
	order[mid], order[hi-1] = order[hi-1], order[mid]

	i, j := lo, hi-1
	for {
		for i++; m.FaceDepth(order[i]) > pivot; i++ {
		}
		for j--; m.FaceDepth(order[j]) < pivot; j-- {
		}
		if i >= j {
			break
		}
		order[i], order[j] = order[j], order[i]
	}
	order[i], order[hi-1] = order[hi-1], order[i]
	return i
}
