package model

import gomath "math"

// cross returns the cross product of two vectors.
func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns v scaled to unit length, or v itself when degenerate.
func normalize(v [3]float32) [3]float32 {
	mag := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if mag < 1e-10 {
		return v
	}
	return [3]float32{v[0] / mag, v[1] / mag, v[2] / mag}
}
