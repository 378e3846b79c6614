package graph

import "github.com/sgothel/gamp-sub001/geom"

// cleanupOutlines normalizes the shape before triangulation:
//
//  1. the duplicate closing vertex introduced by closing an outline is
//     removed, and empty outlines are dropped;
//  2. every run of two consecutive off-curve vertices gets an on-curve
//     vertex inserted at their midpoint, so that afterwards an on-curve
//     vertex sits between any two off-curve vertices;
//  3. overlapping off-curve triangles are subdivided until a fixpoint.
//
// Afterwards the shape is in StateQuadNURBS.
func (s *OutlineShape) cleanupOutlines() {
	for i := 0; i < len(s.outlines); i++ {
		o := s.outlines[i]
		removeClosingVertex(o)
		normalizeQuadratic(o)
		if o.IsEmpty() {
			s.outlines = append(s.outlines[:i], s.outlines[i+1:]...)
			i--
		}
	}
	if len(s.outlines) == 0 {
		s.outlines = []*geom.Outline{geom.NewOutline()}
	}

	seen := make(map[[2]float32]bool)
	for s.subdivideOverlaps(seen) {
	}

	s.state = StateQuadNURBS
	s.dirty |= dirtyVertices
}

// removeClosingVertex drops the trailing duplicate of the first vertex
// on a closed outline.
func removeClosingVertex(o *geom.Outline) {
	if o.Closed() && o.Len() > 1 && o.Vertex(0).Equals(o.Vertex(o.Len()-1)) {
		o.RemoveVertex(o.Len() - 1)
	}
}

// normalizeQuadratic inserts an on-curve midpoint between every pair of
// consecutive off-curve vertices, wrap-around included.
func normalizeQuadratic(o *geom.Outline) {
	for i := 0; i < o.Len(); i++ {
		v := o.Vertex(i)
		next := o.Vertex((i + 1) % o.Len())
		if !v.OnCurve && !next.OnCurve {
			o.InsertVertex(i+1, v.Mid(next))
		}
	}
}

// subdivideOverlaps scans all off-curve triangles of the shape for
// overlaps with other geometry and subdivides the first one found:
// the off-curve vertex moves onto the curve midpoint and turns on-curve,
// and two new off-curve vertices take its place at the half segments.
// It returns whether a subdivision happened; callers iterate to a
// fixpoint. seen records already-subdivided control points so two
// neighbouring curves cannot ping-pong forever.
func (s *OutlineShape) subdivideOverlaps(seen map[[2]float32]bool) bool {
	for _, o := range s.outlines {
		for i := 0; i < o.Len(); i++ {
			curr := o.Vertex(i)
			if curr.OnCurve || o.Len() < 3 {
				continue
			}
			if seen[[2]float32{curr.X, curr.Y}] {
				continue
			}
			prev := o.Vertex((i + o.Len() - 1) % o.Len())
			next := o.Vertex((i + 1) % o.Len())
			if !s.overlaps(o, i, prev, curr, next) {
				continue
			}
			seen[[2]float32{curr.X, curr.Y}] = true

			a := offMid(prev, curr)
			b := offMid(curr, next)
			m := a.Mid(b)
			o.SetVertex(i, m)
			o.InsertVertex(i, a)
			o.InsertVertex(i+2, b)
			return true
		}
	}
	return false
}

func offMid(a, b geom.Vertex) geom.Vertex {
	m := a.Mid(b)
	m.OnCurve = false
	return m
}

// overlaps reports whether the off-curve triangle (prev, curr, next) at
// index i of outline o collides with other shape geometry: another
// vertex strictly inside it, or a segment of a non-adjacent off-curve
// triangle crossing two of its edges.
func (s *OutlineShape) overlaps(o *geom.Outline, i int, prev, curr, next geom.Vertex) bool {
	for _, oo := range s.outlines {
		verts := oo.Vertices()
		for j := range verts {
			v := verts[j]
			if oo == o {
				n := o.Len()
				if j == i || j == (i+n-1)%n || j == (i+1)%n {
					continue
				}
			}
			if v.Equals(prev) || v.Equals(curr) || v.Equals(next) {
				continue
			}
			if geom.InTriangle(prev, curr, next, v) {
				return true
			}
		}
	}
	return s.triTriOverlap(prev, curr, next)
}

// triTriOverlap reports whether any segment of another off-curve
// triangle crosses two edges of (prev, curr, next). Adjacent triangles
// (sharing a vertex) are excluded.
func (s *OutlineShape) triTriOverlap(prev, curr, next geom.Vertex) bool {
	edges := [3][2]geom.Vertex{{prev, curr}, {curr, next}, {next, prev}}
	for _, oo := range s.outlines {
		verts := oo.Vertices()
		n := len(verts)
		for j := 0; j < n; j++ {
			c2 := verts[j]
			if c2.OnCurve {
				continue
			}
			p2 := verts[(j+n-1)%n]
			n2 := verts[(j+1)%n]
			if sharesVertex(prev, curr, next, p2, c2, n2) {
				continue
			}
			for _, seg := range [3][2]geom.Vertex{{p2, c2}, {c2, n2}, {n2, p2}} {
				hits := 0
				for _, e := range edges {
					if geom.SegmentsIntersect(seg[0], seg[1], e[0], e[1]) {
						hits++
					}
				}
				if hits >= 2 {
					return true
				}
			}
		}
	}
	return false
}

func sharesVertex(a1, b1, c1, a2, b2, c2 geom.Vertex) bool {
	for _, u := range [3]geom.Vertex{a1, b1, c1} {
		for _, v := range [3]geom.Vertex{a2, b2, c2} {
			if u.Equals(v) {
				return true
			}
		}
	}
	return false
}
