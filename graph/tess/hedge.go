// Package tess implements constrained Delaunay triangulation of glyph
// outlines over a half-edge topology. The entry point is Triangulator;
// boundary curve triangles are emitted during AddCurve and the interior
// is ear-cut by Generate.
package tess

import "github.com/sgothel/gamp-sub001/geom"

// EdgeType classifies a half-edge by the boundary it came from.
type EdgeType uint8

const (
	// EdgeBoundary lies on the outer boundary of the shape.
	EdgeBoundary EdgeType = iota

	// EdgeInner was created while cutting ears or bridging holes.
	EdgeInner

	// EdgeHole lies on a hole boundary.
	EdgeHole
)

// HEdge is one directed half of an edge. The next/prev chain forms a
// cycle around one face; sibling points to the opposite half. All
// pointers are non-owning: the edges of a loop live in the Loop's arena
// and are destroyed together.
type HEdge struct {
	vert    *GraphVertex // source vertex
	prev    *HEdge
	next    *HEdge
	sibling *HEdge
	typ     EdgeType
}

// Vert returns the source vertex of the edge.
func (e *HEdge) Vert() *GraphVertex { return e.vert }

// Next returns the next edge around the face.
func (e *HEdge) Next() *HEdge { return e.next }

// Prev returns the previous edge around the face.
func (e *HEdge) Prev() *HEdge { return e.prev }

// Sibling returns the opposite half-edge, or nil on an unpaired boundary.
func (e *HEdge) Sibling() *HEdge { return e.sibling }

// Type returns the edge classification.
func (e *HEdge) Type() EdgeType { return e.typ }

// pairSiblings establishes the symmetric sibling relation.
func pairSiblings(a, b *HEdge) {
	a.sibling = b
	b.sibling = a
}

// connect chains a before b around one face.
func connect(a, b *HEdge) {
	a.next = b
	b.prev = a
}

// GraphVertex pairs an outline vertex with its outgoing half-edges and
// the boundary-contained flag. It does not own the vertex data; storage
// lives in the owning outline.
type GraphVertex struct {
	point             *geom.Vertex
	edges             []*HEdge
	boundaryContained bool
}

// NewGraphVertex wraps p. The pointer is retained.
func NewGraphVertex(p *geom.Vertex) *GraphVertex {
	return &GraphVertex{point: p}
}

// Point returns the underlying vertex.
func (v *GraphVertex) Point() *geom.Vertex { return v.point }

// BoundaryContained reports whether the vertex was marked as lying on
// the shape boundary during extraction.
func (v *GraphVertex) BoundaryContained() bool { return v.boundaryContained }

// SetBoundaryContained sets the boundary-contained flag.
func (v *GraphVertex) SetBoundaryContained(b bool) { v.boundaryContained = b }

// Edges returns the outgoing half-edges.
func (v *GraphVertex) Edges() []*HEdge { return v.edges }

// AddEdge records e as outgoing from v.
func (v *GraphVertex) AddEdge(e *HEdge) {
	v.edges = append(v.edges, e)
}

// RemoveEdge forgets e. Removing an edge that was never added is a no-op.
func (v *GraphVertex) RemoveEdge(e *HEdge) {
	for i, o := range v.edges {
		if o == e {
			v.edges = append(v.edges[:i], v.edges[i+1:]...)
			return
		}
	}
}

// GraphOutline is an ordered set of graph vertices describing one closed
// polyline of the half-edge graph.
type GraphOutline struct {
	verts []*GraphVertex
}

// NewGraphOutline wraps the vertex storage of o. The graph vertices
// reference the outline's vertices in place.
func NewGraphOutline(o *geom.Outline) *GraphOutline {
	verts := o.Vertices()
	g := &GraphOutline{verts: make([]*GraphVertex, len(verts))}
	for i := range verts {
		g.verts[i] = NewGraphVertex(&verts[i])
	}
	return g
}

// NewEmptyGraphOutline returns an outline with no vertices.
func NewEmptyGraphOutline() *GraphOutline {
	return &GraphOutline{}
}

// Len returns the number of vertices.
func (g *GraphOutline) Len() int { return len(g.verts) }

// Vertices returns the graph vertices in order.
func (g *GraphOutline) Vertices() []*GraphVertex { return g.verts }

// AddVertex appends v.
func (g *GraphOutline) AddVertex(v *GraphVertex) {
	g.verts = append(g.verts, v)
}

// reverse flips the vertex order in place.
func (g *GraphOutline) reverse() {
	for i, j := 0, len(g.verts)-1; i < j; i, j = i+1, j-1 {
		g.verts[i], g.verts[j] = g.verts[j], g.verts[i]
	}
}

// points copies the vertex values, for the winding and containment
// predicates which operate on value slices.
func (g *GraphOutline) points() []geom.Vertex {
	pts := make([]geom.Vertex, len(g.verts))
	for i, v := range g.verts {
		pts[i] = *v.point
	}
	return pts
}
