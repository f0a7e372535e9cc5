// Package formats provides decoders for model and texture file formats.
package formats

// Note: OBJ (Wavefront mesh subset) is fully implemented in obj.go
// Note: MTL (material library subset) is fully implemented in mtl.go
// Note: PPM (portable pixel map, P3/P6) is fully implemented in ppm.go
