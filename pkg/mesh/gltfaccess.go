package mesh

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
)

// accessorBytes resolves an accessor to its backing byte slice plus the
// element stride. Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	start := view.ByteOffset + accessor.ByteOffset
	need := start + (accessor.Count-1)*stride + defaultStride
	if need > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor overruns buffer: need %d bytes, have %d", need, len(buffer.Data))
	}
	return buffer.Data[start:], stride, nil
}

// readPositions reads a VEC3 float accessor.
func readPositions(doc *gltf.Document, idx int) ([][3]float32, error) {
	accessor := doc.Accessors[idx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}
	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}
	out := make([][3]float32, accessor.Count)
	for i := range out {
		off := i * stride
		for j := 0; j < 3; j++ {
			bits := binary.LittleEndian.Uint32(data[off+j*4:])
			out[i][j] = math.Float32frombits(bits)
		}
	}
	return out, nil
}

// readIndices reads a scalar index accessor of any of the three legal
// component widths.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	accessor := doc.Accessors[idx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, width)
	if err != nil {
		return nil, err
	}
	out := make([]int, accessor.Count)
	for i := range out {
		off := i * stride
		switch width {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}
