package mesh

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/relic/pkg/fixed"
)

// LoadGLB reads a binary glTF file and flattens every triangle primitive of
// every mesh into one Model. Only positions and indices are read; normals,
// UVs, and materials have no meaning in a flat-shaded 16-color pipeline.
func LoadGLB(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glb: %w", err)
	}

	// Size the model before appending anything.
	var totalVerts, totalFaces int
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			totalVerts += doc.Accessors[posIdx].Count
			if prim.Indices != nil {
				totalFaces += doc.Accessors[*prim.Indices].Count / 3
			} else {
				totalFaces += doc.Accessors[posIdx].Count / 3
			}
		}
	}
	if totalVerts == 0 {
		return nil, fmt.Errorf("glb %s: no triangle geometry", path)
	}

	m, err := New(totalVerts, totalFaces)
	if err != nil {
		return nil, err
	}
	m.SetName(filepath.Base(path))

	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			positions, err := readPositions(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", gm.Name, err)
			}
			base := m.VertexCount()
			for _, p := range positions {
				v := [3]fixed.Fixed{
					fixed.FromFloat(float64(p[0])),
					fixed.FromFloat(float64(p[1])),
					fixed.FromFloat(float64(p[2])),
				}
				if _, err := m.AppendVertex(v[0], v[1], v[2]); err != nil {
					return nil, err
				}
			}

			var indices []int
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", gm.Name, err)
				}
			} else {
				indices = make([]int, len(positions))
				for i := range indices {
					indices[i] = i
				}
			}

			for i := 0; i+2 < len(indices); i += 3 {
				face := []int{base + indices[i], base + indices[i+1], base + indices[i+2]}
				if _, err := m.AppendFace(face); err != nil {
					return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
				}
			}
		}
	}

	return m, nil
}
