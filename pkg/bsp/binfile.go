package bsp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/taigrr/relic/pkg/fixed"
	"github.com/taigrr/relic/pkg/mesh"
)

// Binary layout constants. All multi-byte values are little-endian.
const (
	headerSize = 6  // three uint16 counts
	nodeSize   = 14 // uint16 plane, uint16 count, uint16 start, int32 front, int32 back
)

// LoadFile reads a precompiled scene: the model geometry and the partition
// tree that orders it.
func LoadFile(path string) (*mesh.Model, *Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open bsp: %w", err)
	}
	defer f.Close()

	m, t, err := Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("bsp %s: %w", filepath.Base(path), err)
	}
	m.SetName(filepath.Base(path))
	return m, t, nil
}

// Read decodes the binary scene format: a header of three 16-bit counts
// (vertices, faces, nodes), vertex positions as 32-bit floats, per-face
// index lists (one count byte then 16-bit 0-based indices), fixed-size node
// records, and a trailing 16-bit coplanar face index array whose length is
// whatever remains.
func Read(r io.Reader) (*mesh.Model, *Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	if len(data) < headerSize {
		return nil, nil, fmt.Errorf("truncated header: %d bytes", len(data))
	}

	vertexCount := int(binary.LittleEndian.Uint16(data[0:]))
	faceCount := int(binary.LittleEndian.Uint16(data[2:]))
	nodeCount := int(binary.LittleEndian.Uint16(data[4:]))
	pos := headerSize

	if vertexCount == 0 {
		return nil, nil, fmt.Errorf("no vertices")
	}
	maxFaces := faceCount
	if maxFaces == 0 {
		maxFaces = 1
	}
	m, err := mesh.New(vertexCount, maxFaces)
	if err != nil {
		return nil, nil, err
	}

	need := vertexCount * 12
	if len(data)-pos < need {
		return nil, nil, fmt.Errorf("truncated vertices: need %d bytes, have %d", need, len(data)-pos)
	}
	for i := 0; i < vertexCount; i++ {
		x := math.Float32frombits(binary.LittleEndian.Uint32(data[pos:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(data[pos+4:]))
		z := math.Float32frombits(binary.LittleEndian.Uint32(data[pos+8:]))
		pos += 12
		if _, err := m.AppendVertex(
			fixed.FromFloat(float64(x)),
			fixed.FromFloat(float64(y)),
			fixed.FromFloat(float64(z)),
		); err != nil {
			return nil, nil, err
		}
	}

	for i := 0; i < faceCount; i++ {
		if len(data)-pos < 1 {
			return nil, nil, fmt.Errorf("truncated face %d", i)
		}
		count := int(data[pos])
		pos++
		if len(data)-pos < count*2 {
			return nil, nil, fmt.Errorf("truncated face %d indices", i)
		}
		verts := make([]int, count)
		for j := 0; j < count; j++ {
			verts[j] = int(binary.LittleEndian.Uint16(data[pos:]))
			pos += 2
		}
		if _, err := m.AppendFace(verts); err != nil {
			return nil, nil, fmt.Errorf("face %d: %w", i, err)
		}
	}

	need = nodeCount * nodeSize
	if len(data)-pos < need {
		return nil, nil, fmt.Errorf("truncated nodes: need %d bytes, have %d", need, len(data)-pos)
	}
	t := &Tree{Nodes: make([]Node, nodeCount)}
	for i := range t.Nodes {
		t.Nodes[i] = Node{
			PlaneFace:     int(binary.LittleEndian.Uint16(data[pos:])),
			CoplanarCount: int(binary.LittleEndian.Uint16(data[pos+2:])),
			CoplanarStart: int(binary.LittleEndian.Uint16(data[pos+4:])),
			Front:         int(int32(binary.LittleEndian.Uint32(data[pos+6:]))),
			Back:          int(int32(binary.LittleEndian.Uint32(data[pos+10:]))),
		}
		pos += nodeSize
	}

	// Everything left is the shared coplanar index array.
	rest := len(data) - pos
	t.Coplanar = make([]int, rest/2)
	for i := range t.Coplanar {
		t.Coplanar[i] = int(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2
	}

	return m, t, nil
}
