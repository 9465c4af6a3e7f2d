package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/relic/pkg/fixed"
)

// LoadOBJ reads a Wavefront-style text model from path. Only "v" and "f"
// records are honored; everything else (comments, normals, materials) is
// skipped. Face indices are 1-based in the file and any "/texture/normal"
// suffix on an index is ignored.
//
// Vertices and faces load in two passes. A failure in the face pass returns
// the error together with the vertices-only model, which remains valid for
// point-cloud inspection.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if m != nil {
		m.SetName(filepath.Base(path))
	}
	return m, err
}

// ReadOBJ parses a Wavefront-style text model from r. See LoadOBJ.
func ReadOBJ(r io.Reader) (*Model, error) {
	var vlines, flines []string
	var lineno int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "v "):
			vlines = append(vlines, line)
		case strings.HasPrefix(line, "f "):
			flines = append(flines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	if len(vlines) == 0 {
		return nil, fmt.Errorf("model has no vertices")
	}

	maxFaces := len(flines)
	if maxFaces == 0 {
		maxFaces = 1
	}
	m, err := New(len(vlines), maxFaces)
	if err != nil {
		return nil, err
	}

	for i, line := range vlines {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("vertex %d: want 3 coordinates, got %d", i+1, len(fields)-1)
		}
		var coords [3]fixed.Fixed
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i+1, err)
			}
			coords[j] = fixed.FromFloat(v)
		}
		if _, err := m.AppendVertex(coords[0], coords[1], coords[2]); err != nil {
			return nil, err
		}
	}

	// Face pass. Any bad face fails the whole pass; the vertices-only
	// model accompanies the error so it stays usable for inspection.
	faces := make([][]int, 0, len(flines))
	for i, line := range flines {
		fields := strings.Fields(line)[1:]
		verts := make([]int, 0, len(fields))
		for _, field := range fields {
			// "12/3/4" refers to vertex 12; texture and normal slots
			// are not used here.
			if slash := strings.IndexByte(field, '/'); slash >= 0 {
				field = field[:slash]
			}
			idx, err := strconv.Atoi(field)
			if err != nil {
				return m, fmt.Errorf("face %d: %w", i+1, err)
			}
			if idx < 1 || idx > m.VertexCount() {
				return m, fmt.Errorf("face %d: %w: index %d, have %d vertices",
					i+1, ErrIndexRange, idx, m.VertexCount())
			}
			verts = append(verts, idx-1)
		}
		if len(verts) < 3 {
			return m, fmt.Errorf("face %d: %w", i+1, ErrDegenerate)
		}
		if len(verts) > MaxFaceVertices {
			return m, fmt.Errorf("face %d: %d vertices, limit %d", i+1, len(verts), MaxFaceVertices)
		}
		faces = append(faces, verts)
	}
	for _, verts := range faces {
		if _, err := m.AppendFace(verts); err != nil {
			return m, err
		}
	}

	return m, nil
}
