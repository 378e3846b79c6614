package tess

import (
	"fmt"

	gamp "github.com/sgothel/gamp-sub001"
	"github.com/sgothel/gamp-sub001/geom"
)

// Loop is a closed boundary in the half-edge graph, corresponding to one
// face to be triangulated. The Loop owns every half-edge it creates in
// an arena; edge pointers inside the graph are non-owning.
type Loop struct {
	root    *HEdge
	box     geom.AABBox
	initial *GraphOutline
	holes   []*GraphOutline
	complex bool

	// arena owns all half-edges of this loop.
	arena []*HEdge

	// constraint segments of the initial outline and all holes, used for
	// the complex-shape intersection tests. Rebuilt after AddHole.
	segs [][2]*geom.Vertex
}

// NewLoop builds a loop over the closed polyline described by outline.
// The polyline must wind counter-clockwise; boundary loops are always
// oriented CCW so that ear candidates turn left.
func NewLoop(outline *GraphOutline, complexShape bool) (*Loop, error) {
	if outline.Len() < 3 {
		return nil, fmt.Errorf("tess: loop needs at least 3 vertices, got %d", outline.Len())
	}
	if geom.WindingOf(outline.points()) != geom.CCW {
		return nil, fmt.Errorf("tess: boundary loop must be CCW")
	}
	l := &Loop{
		box:     geom.NewAABBox(),
		initial: outline,
		complex: complexShape,
	}
	edges := l.initFromPolyline(outline, EdgeBoundary)
	l.root = edges[0]
	l.rebuildConstraints()
	return l, nil
}

// initFromPolyline creates the half-edge ring for gout, grows the loop
// box, marks every vertex boundary-contained and returns the new edges
// in polyline order.
func (l *Loop) initFromPolyline(gout *GraphOutline, typ EdgeType) []*HEdge {
	verts := gout.Vertices()
	n := len(verts)
	edges := make([]*HEdge, n)
	for i, v := range verts {
		edges[i] = &HEdge{vert: v, typ: typ}
	}
	for i := range edges {
		connect(edges[i], edges[(i+1)%n])
		verts[i].AddEdge(edges[i])
		verts[i].SetBoundaryContained(true)
		l.box.Resize(verts[i].point.X, verts[i].point.Y)
	}
	l.arena = append(l.arena, edges...)
	return edges
}

func (l *Loop) rebuildConstraints() {
	l.segs = l.segs[:0]
	add := func(g *GraphOutline) {
		vs := g.Vertices()
		for i := range vs {
			l.segs = append(l.segs, [2]*geom.Vertex{
				vs[i].point, vs[(i+1)%len(vs)].point,
			})
		}
	}
	add(l.initial)
	for _, h := range l.holes {
		add(h)
	}
}

// Box returns the bounding box over all loop vertices, holes included.
func (l *Loop) Box() geom.AABBox { return l.box }

// Initial returns the initial (outer) polyline of the loop.
func (l *Loop) Initial() *GraphOutline { return l.initial }

// Size returns the number of vertices remaining in the active cycle.
func (l *Loop) Size() int {
	if l.root == nil {
		return 0
	}
	n := 0
	for e := l.root; ; e = e.next {
		n++
		if e.next == l.root {
			return n
		}
	}
}

// IsSimplex reports whether exactly three vertices remain.
func (l *Loop) IsSimplex() bool {
	return l.root != nil && l.root.next.next.next == l.root
}

// Done reports whether the loop has been fully consumed.
func (l *Loop) Done() bool { return l.root == nil }

// Cut attempts to remove one ear from the loop and returns the emitted
// triangle, or nil when no ear was cut at the current root. On a nil
// return the root has been advanced so the next call tries the next
// candidate. With delaunay true an ear is additionally rejected when any
// other loop vertex lies strictly inside its circumcircle.
//
// When the loop is a simplex the one remaining triangle is emitted and
// the loop becomes Done.
func (l *Loop) Cut(delaunay bool) *geom.Triangle {
	if l.root == nil {
		return nil
	}
	if l.IsSimplex() {
		tri := l.cutSimplex()
		l.root = nil
		return tri
	}

	root := l.root
	next1 := root.next
	next2 := next1.next
	a, b, c := root.vert, next1.vert, next2.vert

	if !geom.IsCCW(*a.point, *b.point, *c.point) {
		l.root = root.next
		return nil
	}
	if l.complex && l.edgeIntersectsConstraints(a, b, c) {
		l.root = root.next
		return nil
	}
	if delaunay && l.vertexInCircumcircle(next2.next, a, b, c) {
		l.root = root.next
		return nil
	}

	tri := l.createTriangle(root, next1, true)

	// Splice in the inner edge pair: e shortens the loop by vertex b,
	// s closes the cut-off triangle face.
	e := &HEdge{vert: a, typ: EdgeInner}
	s := &HEdge{vert: c, typ: EdgeInner}
	pairSiblings(e, s)
	connect(root.prev, e)
	connect(e, next2)
	connect(next1, s)
	connect(s, root)
	a.RemoveEdge(root)
	a.AddEdge(e)
	c.AddEdge(s)
	l.arena = append(l.arena, e, s)
	l.root = e
	return tri
}

// cutSimplex emits the last remaining triangle. In complex shapes a
// degenerate or overlapping final triangle is dropped instead.
func (l *Loop) cutSimplex() *geom.Triangle {
	root := l.root
	next1 := root.next
	a, b, c := root.vert, next1.vert, next1.next.vert
	if l.complex {
		area := geom.TriArea(*a.point, *b.point, *c.point)
		if area < 0 {
			area = -area
		}
		if area <= geom.Epsilon || l.triangleCoversConstraint(a, b, c) {
			gamp.Logger().Debug("tess: dropping final simplex of complex loop",
				"area", area)
			return nil
		}
	}
	return l.createTriangle(root, next1, false)
}

// createTriangle emits the face (e0.vert, e1.vert, e1.next.vert) with
// boundary-vertex bits inherited from the graph vertices and
// boundary-edge bits from the edge types. The third edge is the freshly
// spliced inner edge unless the face is the final simplex, in which case
// it is e1.next itself.
func (l *Loop) createTriangle(e0, e1 *HEdge, thirdInner bool) *geom.Triangle {
	a, b, c := e0.vert, e1.vert, e1.next.vert
	tri := geom.NewTriangle(*a.point, *b.point, *c.point, [3]bool{
		a.boundaryContained, b.boundaryContained, c.boundaryContained,
	})
	third := e1.next.typ != EdgeInner
	if thirdInner {
		third = false
	}
	tri.SetBoundaryEdges([3]bool{
		e0.typ != EdgeInner,
		e1.typ != EdgeInner,
		third,
	})
	return tri
}

// vertexInCircumcircle walks the active cycle from start until root and
// reports whether any vertex other than a, b, c lies strictly inside
// the circumcircle of (a, b, c).
func (l *Loop) vertexInCircumcircle(start *HEdge, a, b, c *GraphVertex) bool {
	for e := start; e != l.root; e = e.next {
		v := e.vert
		if v == a || v == b || v == c {
			continue
		}
		if geom.InCircumcircle(*a.point, *b.point, *c.point, *v.point) {
			return true
		}
	}
	return false
}

// edgeIntersectsConstraints reports whether the candidate closing edge
// (a, c) properly crosses any constraint segment. Segments incident to
// the three candidate vertices are excluded.
func (l *Loop) edgeIntersectsConstraints(a, b, c *GraphVertex) bool {
	for _, s := range l.segs {
		if s[0] == a.point || s[0] == b.point || s[0] == c.point ||
			s[1] == a.point || s[1] == b.point || s[1] == c.point {
			continue
		}
		if geom.SegmentsIntersect(*a.point, *c.point, *s[0], *s[1]) {
			return true
		}
	}
	return false
}

// triangleCoversConstraint reports whether any constraint vertex other
// than the triangle's own corners lies strictly inside (a, b, c).
func (l *Loop) triangleCoversConstraint(a, b, c *GraphVertex) bool {
	for _, s := range l.segs {
		p := s[0]
		if p == a.point || p == b.point || p == c.point {
			continue
		}
		if geom.InTriangle(*a.point, *b.point, *c.point, *p) {
			return true
		}
	}
	return false
}

// AddHole stitches the hole polyline gout into this loop as a single
// combined face. The hole ring is built with hole-typed edges and CW
// orientation; a pair of sibling inner edges bridges the loop root's
// vertex to the hole vertex chosen by findBridgeVertex. The loop root
// is relocated to the bridge so the next Cut makes progress.
func (l *Loop) AddHole(gout *GraphOutline) error {
	if gout.Len() < 3 {
		return fmt.Errorf("tess: hole needs at least 3 vertices, got %d", gout.Len())
	}
	if geom.WindingOf(gout.points()) == geom.CCW {
		gout.reverse()
	}
	edges := l.initFromPolyline(gout, EdgeHole)
	l.holes = append(l.holes, gout)
	l.rebuildConstraints()

	best := l.findBridgeVertex(gout)
	if best < 0 {
		return fmt.Errorf("tess: no bridge vertex found for hole")
	}

	r := l.root
	h3 := edges[best]
	b1 := &HEdge{vert: r.vert, typ: EdgeInner}
	b2 := &HEdge{vert: h3.vert, typ: EdgeInner}
	pairSiblings(b1, b2)
	q := h3.prev
	connect(r.prev, b1)
	connect(b1, h3)
	connect(q, b2)
	connect(b2, r)
	r.vert.AddEdge(b1)
	h3.vert.AddEdge(b2)
	l.arena = append(l.arena, b1, b2)
	l.root = b1
	return nil
}

// findBridgeVertex picks the hole vertex closest to the loop root such
// that the circumcircle over the root segment (v0, v1) and the candidate
// contains no other hole vertex. Distance ties break to the lowest
// vertex index for determinism. Returns -1 when no vertex qualifies.
func (l *Loop) findBridgeVertex(gout *GraphOutline) int {
	v0 := l.root.vert.point
	v1 := l.root.next.vert.point
	verts := gout.Vertices()
	best := -1
	bestDist := 0.0
	for i, w := range verts {
		d := v0.Dist(*w.point)
		if best >= 0 && d >= bestDist {
			continue
		}
		ok := true
		for j, u := range verts {
			if j == i {
				continue
			}
			if inCircleOriented(*v0, *v1, *w.point, *u.point) {
				ok = false
				break
			}
		}
		if ok {
			best = i
			bestDist = d
		}
	}
	return best
}

// inCircleOriented is the incircle test with the triangle re-oriented
// CCW first, so the determinant sign is meaningful for either winding.
func inCircleOriented(a, b, c, p geom.Vertex) bool {
	if !geom.IsCCW(a, b, c) {
		b, c = c, b
	}
	return geom.InCircumcircle(a, b, c, p)
}
