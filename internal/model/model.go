// Package model turns decoded mesh files into render-ready data and drives
// the two-phase texture load for the rendering layer.
package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/meshtools/objkit/internal/logger"
	"github.com/meshtools/objkit/pkg/formats"
)

// vertexFloats is the interleaved attribute count per vertex:
// position 3, color 3, normal 3, texcoord 2.
const vertexFloats = 11

// Model owns one decoded mesh and its deferred texture reference.
//
// The mesh text is decoded immediately; the texture it references stays on
// disk until LoadPendingTexture is called, so callers can sequence image
// decoding after a rendering context exists.
type Model struct {
	path    string
	obj     *formats.OBJ
	pending string
}

// Load decodes the mesh at path (phase one). Decoder diagnostics are logged
// and do not fail the load.
func Load(path string) (*Model, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading mesh %s: %w", path, err)
	}

	for _, w := range obj.Warnings {
		logger.Warn("mesh decode diagnostic",
			zap.String("mesh", path),
			zap.String("detail", w))
	}

	logger.Debug("mesh loaded",
		zap.String("mesh", path),
		zap.Int("triangles", obj.TriangleCount()),
		zap.Bool("texture_pending", obj.HasPendingTexture()))

	return &Model{path: path, obj: obj, pending: obj.PendingTexture}, nil
}

// TriangleCount returns the number of decoded triangles, for the rendering
// layer to size its buffers.
func (m *Model) TriangleCount() int {
	return m.obj.TriangleCount()
}

// Triangles returns the decoded triangle list.
func (m *Model) Triangles() []formats.Triangle {
	return m.obj.Triangles
}

// Material returns the decoded material, or nil if the mesh has none.
func (m *Model) Material() *formats.Material {
	return m.obj.Material
}

// Bounds returns the mesh's axis-aligned bounding box.
func (m *Model) Bounds() (min, max [3]float32) {
	return m.obj.Bounds()
}

// HasPendingTexture reports whether a deferred texture still awaits loading.
func (m *Model) HasPendingTexture() bool {
	return m.pending != ""
}

// LoadPendingTexture decodes the deferred texture (phase two). With nothing
// pending it returns (nil, nil). An attempt consumes the pending path whether
// or not it succeeds; there is no retry, so a second call is a no-op.
func (m *Model) LoadPendingTexture() (*formats.PPM, error) {
	if m.pending == "" {
		return nil, nil
	}
	path := m.pending
	m.pending = ""

	ppm, err := formats.ParsePPMFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}

	logger.Debug("texture loaded",
		zap.String("mesh", m.path),
		zap.String("texture", path),
		zap.Int("width", ppm.Width),
		zap.Int("height", ppm.Height))

	return ppm, nil
}

// VertexData flattens the triangle list into a single interleaved attribute
// buffer (11 floats per vertex) for the rendering layer's GPU upload.
func (m *Model) VertexData() []float32 {
	out := make([]float32, 0, len(m.obj.Triangles)*3*vertexFloats)
	for i := range m.obj.Triangles {
		for _, v := range m.obj.Triangles[i].Vertices {
			out = append(out,
				v.Position[0], v.Position[1], v.Position[2],
				v.Color[0], v.Color[1], v.Color[2],
				v.Normal[0], v.Normal[1], v.Normal[2],
				v.TexCoord[0], v.TexCoord[1])
		}
	}
	return out
}
