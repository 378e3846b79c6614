// Package geom provides the primitive value types of the glyph pipeline:
// vertices, triangles, windings and axis-aligned bounding boxes, together
// with the 2D predicates the triangulator is built on.
package geom

import "math"

// Epsilon is the default tolerance for coordinate comparisons.
// It matches the machine epsilon of float32.
const Epsilon = 1.1920929e-07

// Winding is the orientation of a closed polyline, derived from the sign
// of its signed area: counter-clockwise is positive, clockwise negative.
type Winding int8

const (
	// CW is clockwise winding (negative signed area). Hole outlines.
	CW Winding = -1

	// CCW is counter-clockwise winding (positive signed area). Solid outlines.
	CCW Winding = 1
)

// String returns "CCW" or "CW".
func (w Winding) String() string {
	if w == CW {
		return "CW"
	}
	return "CCW"
}

// Vertex is one point of a glyph outline. Off-curve vertices are quadratic
// Bezier control points; on-curve vertices lie on the glyph boundary.
//
// The texture coordinate encodes the curve fill rule for boundary
// triangles (see the tess package); for interior vertices it is zero.
type Vertex struct {
	// ID is the identity tag, re-issued densely before triangulation.
	ID int

	// X, Y, Z is the vertex coordinate.
	X, Y, Z float32

	// TexX, TexY, TexZ is the texture coordinate.
	TexX, TexY, TexZ float32

	// OnCurve reports whether the vertex lies on the glyph boundary.
	OnCurve bool
}

// NewVertex returns an on-curve vertex at (x, y, z).
func NewVertex(x, y, z float32) Vertex {
	return Vertex{X: x, Y: y, Z: z, OnCurve: true}
}

// Vert is a convenience constructor for a 2D vertex.
func Vert(x, y float32, onCurve bool) Vertex {
	return Vertex{X: x, Y: y, OnCurve: onCurve}
}

// SetCoord sets the vertex coordinate.
func (v *Vertex) SetCoord(x, y, z float32) {
	v.X, v.Y, v.Z = x, y, z
}

// SetTexCoord sets the texture coordinate.
func (v *Vertex) SetTexCoord(x, y, z float32) {
	v.TexX, v.TexY, v.TexZ = x, y, z
}

// Equals reports whether v and o have the same coordinate, texture
// coordinate and on-curve flag under [Epsilon]. The ID is not compared.
func (v Vertex) Equals(o Vertex) bool {
	return v.EqualsEps(o, Epsilon)
}

// EqualsEps is Equals with an explicit tolerance.
func (v Vertex) EqualsEps(o Vertex, eps float64) bool {
	return v.OnCurve == o.OnCurve &&
		eq(v.X, o.X, eps) && eq(v.Y, o.Y, eps) && eq(v.Z, o.Z, eps) &&
		eq(v.TexX, o.TexX, eps) && eq(v.TexY, o.TexY, eps) && eq(v.TexZ, o.TexZ, eps)
}

func eq(a, b float32, eps float64) bool {
	return math.Abs(float64(a)-float64(b)) <= eps
}

// Dist returns the 2D distance between v and o.
func (v Vertex) Dist(o Vertex) float64 {
	dx := float64(v.X) - float64(o.X)
	dy := float64(v.Y) - float64(o.Y)
	return math.Hypot(dx, dy)
}

// Mid returns the on-curve midpoint of v and o. Texture coordinates are
// not interpolated; the midpoint starts a fresh boundary segment.
func (v Vertex) Mid(o Vertex) Vertex {
	return Vertex{
		X: (v.X + o.X) / 2, Y: (v.Y + o.Y) / 2, Z: (v.Z + o.Z) / 2,
		OnCurve: true,
	}
}

// PolygonArea returns twice the signed area of the polygon described by
// verts, using the 2D shoelace formula over (x, y) in double precision.
// Positive area means counter-clockwise.
func PolygonArea(verts []Vertex) float64 {
	area := 0.0
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		area += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return area
}

// WindingOf returns the winding of the polygon described by verts.
// Polygons with fewer than 3 vertices or zero area are defined to be CCW.
func WindingOf(verts []Vertex) Winding {
	if len(verts) < 3 {
		return CCW
	}
	if PolygonArea(verts) < 0 {
		return CW
	}
	return CCW
}
