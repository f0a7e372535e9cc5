// Package formats provides decoders for model and texture file formats.
// OBJ (Wavefront mesh subset) decoder for triangulated models.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedOBJLine   = errors.New("malformed OBJ line")
	ErrUnresolvedOBJIndex = errors.New("unresolved OBJ face index")
)

// DefaultVertexColor is the placeholder base color baked into every vertex.
// OBJ carries no per-vertex color; the value matches what the shading step expects.
var DefaultVertexColor = [3]float32{0.7, 0.7, 0.7}

// Vertex is a flattened, self-contained vertex record. Pool indices are
// resolved once at decode time; consumers never see indices.
type Vertex struct {
	Position [3]float32 // X, Y, Z
	Color    [3]float32 // R, G, B placeholder base color
	Normal   [3]float32 // Unit normal
	TexCoord [2]float32 // S, T
}

// Triangle is exactly three vertices in file order.
type Triangle struct {
	Vertices [3]Vertex
}

// OBJ represents a decoded mesh: a flat triangle list plus an optional
// material with a deferred texture path. No shared-vertex indexing is
// retained after decode.
type OBJ struct {
	Triangles      []Triangle
	Material       *Material // nil when no usable mtllib was found
	PendingTexture string    // resolved diffuse texture path, empty if none
	Warnings       []string  // non-fatal diagnostics collected during decode
}

// faceRef holds the 0-based pool indices of one face-vertex token.
// Absent slots stay at index 0.
type faceRef struct {
	pos, tex, norm int
}

// ParseOBJ decodes OBJ data. dir is the directory used to resolve mtllib
// references (pass the directory the OBJ file came from).
func ParseOBJ(data []byte, dir string) (*OBJ, error) {
	obj := &OBJ{}

	// Attribute pools, file order, addressed 0-based after index translation.
	var positions [][3]float32
	var normals [][3]float32
	var texcoords [][2]float32

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJLine, lineNo, err)
			}
			positions = append(positions, p)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJLine, lineNo, err)
			}
			// Normalized at decode time so consumers never see a non-unit normal.
			normals = append(normals, normalize(n))

		case "vt":
			// Stored unmodified; the vertical flip happens in the PPM decoder.
			t, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJLine, lineNo, err)
			}
			texcoords = append(texcoords, t)

		case "mtllib":
			if len(fields) < 2 {
				obj.Warnings = append(obj.Warnings,
					fmt.Sprintf("line %d: mtllib without a file name, ignored", lineNo))
				continue
			}
			// Material decode failure is non-fatal: the mesh still loads, untextured.
			mtlPath := filepath.Join(dir, fields[1])
			mat, err := ParseMTLFile(mtlPath)
			if err != nil {
				obj.Warnings = append(obj.Warnings,
					fmt.Sprintf("line %d: material library %s: %v", lineNo, mtlPath, err))
				continue
			}
			obj.Material = mat
			obj.PendingTexture = mat.DiffusePath

		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: face must reference exactly 3 vertices, got %d",
					ErrMalformedOBJLine, lineNo, len(fields)-1)
			}
			var tri Triangle
			for i, tok := range fields[1:4] {
				ref, err := parseFaceVertex(tok)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %q: %v", ErrMalformedOBJLine, lineNo, tok, err)
				}
				v, err := resolveVertex(obj, ref, positions, normals, texcoords, lineNo)
				if err != nil {
					return nil, err
				}
				tri.Vertices[i] = v
			}
			obj.Triangles = append(obj.Triangles, tri)

		default:
			// Unsupported directive, ignored for forward compatibility.
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	return obj, nil
}

// ParseOBJFile decodes an OBJ file from disk. mtllib references are
// resolved relative to the file's own directory.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data, filepath.Dir(path))
}

// parseFaceVertex parses one face-vertex token of the grammar
// v | v/vt | v//vn | v/vt/vn (1-based) into 0-based pool indices.
func parseFaceVertex(tok string) (faceRef, error) {
	ref := faceRef{}
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return ref, errors.New("too many index separators")
	}

	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return ref, fmt.Errorf("position index: %v", err)
	}
	ref.pos = idx - 1

	if len(parts) > 1 && parts[1] != "" {
		idx, err := strconv.Atoi(parts[1])
		if err != nil {
			return ref, fmt.Errorf("texcoord index: %v", err)
		}
		ref.tex = idx - 1
	}

	if len(parts) > 2 && parts[2] != "" {
		idx, err := strconv.Atoi(parts[2])
		if err != nil {
			return ref, fmt.Errorf("normal index: %v", err)
		}
		ref.norm = idx - 1
	}

	return ref, nil
}

// resolveVertex materializes one vertex from the pools. Position and normal
// indices out of range are fatal; a texcoord index out of range is clamped
// to 0 with a diagnostic (permissive by design).
func resolveVertex(obj *OBJ, ref faceRef, positions, normals [][3]float32, texcoords [][2]float32, lineNo int) (Vertex, error) {
	if ref.pos < 0 || ref.pos >= len(positions) {
		return Vertex{}, fmt.Errorf("%w: line %d: position index %d out of range (pool size %d)",
			ErrUnresolvedOBJIndex, lineNo, ref.pos+1, len(positions))
	}
	if ref.norm < 0 || ref.norm >= len(normals) {
		return Vertex{}, fmt.Errorf("%w: line %d: normal index %d out of range (pool size %d)",
			ErrUnresolvedOBJIndex, lineNo, ref.norm+1, len(normals))
	}

	var uv [2]float32
	if ref.tex >= 0 && ref.tex < len(texcoords) {
		uv = texcoords[ref.tex]
	} else {
		obj.Warnings = append(obj.Warnings,
			fmt.Sprintf("line %d: texcoord index %d out of range (pool size %d), clamped to 1",
				lineNo, ref.tex+1, len(texcoords)))
		if len(texcoords) > 0 {
			uv = texcoords[0]
		}
	}

	return Vertex{
		Position: positions[ref.pos],
		Color:    DefaultVertexColor,
		Normal:   normals[ref.norm],
		TexCoord: uv,
	}, nil
}

// parseVec3 parses exactly 3 float tokens.
func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("component %d: %v", i+1, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseVec2 parses exactly 2 float tokens.
func parseVec2(fields []string) ([2]float32, error) {
	var v [2]float32
	if len(fields) < 2 {
		return v, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("component %d: %v", i+1, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// normalize returns v scaled to unit length. The zero vector is returned as is.
func normalize(v [3]float32) [3]float32 {
	mag := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if mag == 0 {
		return v
	}
	return [3]float32{v[0] / mag, v[1] / mag, v[2] / mag}
}

// TriangleCount returns the number of decoded triangles.
func (o *OBJ) TriangleCount() int {
	return len(o.Triangles)
}

// HasPendingTexture reports whether a diffuse texture path was recorded
// during material decoding and still awaits loading.
func (o *OBJ) HasPendingTexture() bool {
	return o.PendingTexture != ""
}

// Bounds returns the axis-aligned bounding box of all triangle vertices.
// Both bounds are zero for an empty mesh.
func (o *OBJ) Bounds() (min, max [3]float32) {
	if len(o.Triangles) == 0 {
		return min, max
	}
	min = o.Triangles[0].Vertices[0].Position
	max = min
	for i := range o.Triangles {
		for j := range o.Triangles[i].Vertices {
			p := o.Triangles[i].Vertices[j].Position
			for k := 0; k < 3; k++ {
				if p[k] < min[k] {
					min[k] = p[k]
				}
				if p[k] > max[k] {
					max[k] = p[k]
				}
			}
		}
	}
	return min, max
}
