package geom

// Triangle is one emitted triangle of a triangulated shape. The boundary
// sets record which of the three vertices and edges lie on the outer
// boundary of the shape. Edge i connects vertex i and vertex (i+1)%3.
type Triangle struct {
	id    int
	verts [3]Vertex

	boundaryVertices [3]bool
	boundaryEdges    [3]bool
}

// NewTriangle creates a triangle over copies of a, b and c with the given
// boundary-vertex bits. Boundary-edge bits start cleared.
func NewTriangle(a, b, c Vertex, boundaryVertices [3]bool) *Triangle {
	return &Triangle{
		verts:            [3]Vertex{a, b, c},
		boundaryVertices: boundaryVertices,
	}
}

// ID returns the triangle id assigned at emission time.
func (t *Triangle) ID() int { return t.id }

// SetID sets the triangle id.
func (t *Triangle) SetID(id int) { t.id = id }

// Vertices returns the three vertices. The returned array aliases the
// triangle's storage; mutations through pointers into it are visible.
func (t *Triangle) Vertices() [3]Vertex { return t.verts }

// Vertex returns vertex i (0..2).
func (t *Triangle) Vertex(i int) Vertex { return t.verts[i] }

// BoundaryVertex reports whether vertex i lies on the shape boundary.
func (t *Triangle) BoundaryVertex(i int) bool { return t.boundaryVertices[i] }

// BoundaryEdge reports whether edge i lies on the shape boundary.
func (t *Triangle) BoundaryEdge(i int) bool { return t.boundaryEdges[i] }

// SetBoundaryEdges sets all three boundary-edge bits.
func (t *Triangle) SetBoundaryEdges(e [3]bool) { t.boundaryEdges = e }

// SetBoundaryVertices sets all three boundary-vertex bits.
func (t *Triangle) SetBoundaryVertices(v [3]bool) { t.boundaryVertices = v }

// OnBoundary reports whether any vertex of the triangle is on the boundary.
func (t *Triangle) OnBoundary() bool {
	return t.boundaryVertices[0] || t.boundaryVertices[1] || t.boundaryVertices[2]
}

// Area returns the absolute 2D area of the triangle.
func (t *Triangle) Area() float64 {
	a := PolygonArea(t.verts[:])
	if a < 0 {
		a = -a
	}
	return a / 2
}
