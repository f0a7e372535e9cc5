package model

import (
	"github.com/fogleman/simplify"

	"github.com/meshtools/objkit/pkg/formats"
)

// Simplify reduces the triangle count to roughly factor times the original
// (0 < factor <= 1). Only positions survive the reduction: each output
// triangle gets a flat face normal recomputed from its edges, the placeholder
// base color, and zeroed texture coordinates.
func (m *Model) Simplify(factor float64) []formats.Triangle {
	src := make([]*simplify.Triangle, 0, len(m.obj.Triangles))
	for i := range m.obj.Triangles {
		vs := m.obj.Triangles[i].Vertices
		src = append(src, simplify.NewTriangle(
			toVector(vs[0].Position),
			toVector(vs[1].Position),
			toVector(vs[2].Position)))
	}

	reduced := simplify.NewMesh(src).Simplify(factor)

	out := make([]formats.Triangle, 0, len(reduced.Triangles))
	for _, t := range reduced.Triangles {
		out = append(out, rebuildTriangle(t))
	}
	return out
}

func toVector(p [3]float32) simplify.Vector {
	return simplify.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

func fromVector(v simplify.Vector) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// rebuildTriangle turns a simplified position-only triangle back into the
// flattened vertex layout, with a flat normal from the edge cross product.
func rebuildTriangle(t *simplify.Triangle) formats.Triangle {
	p0 := fromVector(t.V1)
	p1 := fromVector(t.V2)
	p2 := fromVector(t.V3)

	e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := normalize(cross(e1, e2))

	var tri formats.Triangle
	for i, p := range [3][3]float32{p0, p1, p2} {
		tri.Vertices[i] = formats.Vertex{
			Position: p,
			Color:    formats.DefaultVertexColor,
			Normal:   n,
		}
	}
	return tri
}
