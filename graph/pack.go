package graph

import "github.com/sgothel/gamp-sub001/geom"

// InterleavedStride is the byte stride of one packed vertex: three
// position floats followed by three texture-coordinate floats.
const InterleavedStride = 6 * 4

// PackTriangles flattens a triangle stream into an interleaved float32
// array of position (x, y, z) and texture coordinate (s, t, p) per
// vertex, ready for upload as one vertex buffer.
func PackTriangles(tris []*geom.Triangle) []float32 {
	out := make([]float32, 0, len(tris)*3*6)
	for _, t := range tris {
		for i := 0; i < 3; i++ {
			v := t.Vertex(i)
			out = append(out, v.X, v.Y, v.Z, v.TexX, v.TexY, v.TexZ)
		}
	}
	return out
}
