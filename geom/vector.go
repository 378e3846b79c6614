package geom

// 2D predicates used by the triangulator. All arithmetic runs in double
// precision regardless of the float32 vertex storage.

// TriArea returns twice the signed area of triangle (a, b, c).
func TriArea(a, b, c Vertex) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)
	return (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
}

// IsCCW reports whether (a, b, c) turn counter-clockwise.
func IsCCW(a, b, c Vertex) bool {
	return TriArea(a, b, c) > 0
}

// InCircumcircle reports whether d lies strictly inside the circumcircle
// of the counter-clockwise triangle (a, b, c). This is the standard
// Delaunay incircle determinant.
func InCircumcircle(a, b, c, d Vertex) bool {
	adx := float64(a.X) - float64(d.X)
	ady := float64(a.Y) - float64(d.Y)
	bdx := float64(b.X) - float64(d.X)
	bdy := float64(b.Y) - float64(d.Y)
	cdx := float64(c.X) - float64(d.X)
	cdy := float64(c.Y) - float64(d.Y)

	abdet := adx*bdy - bdx*ady
	bcdet := bdx*cdy - cdx*bdy
	cadet := cdx*ady - adx*cdy
	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	return alift*bcdet+blift*cadet+clift*abdet > 0
}

// InTriangle reports whether p lies inside triangle (a, b, c), borders
// excluded. Orientation of the triangle does not matter.
func InTriangle(a, b, c, p Vertex) bool {
	d1 := TriArea(p, a, b)
	d2 := TriArea(p, b, c)
	d3 := TriArea(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos) && d1 != 0 && d2 != 0 && d3 != 0
}

// SegmentsIntersect reports whether segments (p1, p2) and (q1, q2)
// properly intersect, i.e. cross at a single interior point. Shared
// endpoints do not count as an intersection.
func SegmentsIntersect(p1, p2, q1, q2 Vertex) bool {
	d1 := TriArea(q1, q2, p1)
	d2 := TriArea(q1, q2, p2)
	d3 := TriArea(p1, p2, q1)
	d4 := TriArea(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// PointInPolygon reports whether p lies inside the polygon described by
// verts, using the winding-ray (even-odd crossing) test.
func PointInPolygon(verts []Vertex, p Vertex) bool {
	inside := false
	n := len(verts)
	j := n - 1
	px, py := float64(p.X), float64(p.Y)
	for i := 0; i < n; i++ {
		xi, yi := float64(verts[i].X), float64(verts[i].Y)
		xj, yj := float64(verts[j].X), float64(verts[j].Y)
		if (yi > py) != (yj > py) &&
			px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
