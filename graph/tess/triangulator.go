package tess

import (
	gamp "github.com/sgothel/gamp-sub001"
	"github.com/sgothel/gamp-sub001/geom"
)

// Triangulator is the constrained Delaunay triangulation driver. Add
// every outline of a shape with AddCurve, outer shells before their
// holes (outlines sorted by bounding-box size descending guarantee
// this), then call Generate to ear-cut the remaining loops.
//
// Triangle ids are issued monotonically across the whole shape, in
// emission order. A Triangulator is reusable after Reset.
type Triangulator struct {
	loops   []*Loop
	tris    []*geom.Triangle
	nextID  int
	complex bool
}

// New returns an empty triangulator.
func New() *Triangulator {
	return &Triangulator{}
}

// SetComplexShape switches on the self-intersection guards for shapes
// whose outlines are non-convex in a self-touching way.
func (t *Triangulator) SetComplexShape(complex bool) {
	t.complex = complex
}

// Reset drops all loops and triangles so the triangulator can be reused.
func (t *Triangulator) Reset() {
	t.loops = nil
	t.tris = nil
	t.nextID = 0
}

// emit assigns the next triangle id and collects tri.
func (t *Triangulator) emit(tri *geom.Triangle) {
	tri.SetID(t.nextID)
	t.nextID++
	t.tris = append(t.tris, tri)
}

// AddCurve adds one outline. If no existing loop contains the outline it
// opens a new boundary loop; otherwise the outline is a hole of the
// containing loop. Off-curve boundary triangles are emitted immediately;
// the returned inner polygon seeds or extends the loop.
func (t *Triangulator) AddCurve(outline *geom.Outline, sharpness float32) {
	loop := t.containerLoop(outline)
	if loop == nil {
		outline.SetWinding(geom.CCW)
		gout := NewGraphOutline(outline)
		inner := t.extractBoundaryTriangles(gout, false, sharpness)
		if inner.Len() < 3 {
			gamp.Logger().Debug("tess: dropping degenerate boundary outline",
				"vertices", inner.Len())
			return
		}
		l, err := NewLoop(inner, t.complex)
		if err != nil {
			gamp.Logger().Debug("tess: dropping boundary outline", "err", err)
			return
		}
		t.loops = append(t.loops, l)
		return
	}

	gout := NewGraphOutline(outline)
	inner := t.extractBoundaryTriangles(gout, true, sharpness)
	if err := loop.AddHole(inner); err != nil {
		gamp.Logger().Warn("tess: dropping hole outline", "err", err)
	}
}

// containerLoop returns the first loop whose bounding box and initial
// polygon contain the outline's first vertex, or nil.
func (t *Triangulator) containerLoop(outline *geom.Outline) *Loop {
	if outline.IsEmpty() {
		return nil
	}
	v := outline.Vertex(0)
	for _, l := range t.loops {
		box := l.Box()
		if !box.Contains(v.X, v.Y) {
			continue
		}
		if geom.PointInPolygon(l.Initial().points(), v) {
			return l
		}
	}
	return nil
}

// extractBoundaryTriangles emits one curve triangle per off-curve vertex
// v1 with its on-outline neighbours v0, v2 and returns the inner polygon
// of on-curve vertices plus the off-curve vertices of hole-like lobes.
//
// The texture coordinates of the emitted triangle encode the quadratic
// Bezier fill rule: the solid side uses (0, 0.1), (1, 0.1),
// (0.5, 0.1+sharpness); the hole side (chosen when the lobe is concave
// or the outline is a hole) negates the second coordinate. Emitted
// triangles own cloned vertices so later cuts do not alias them.
func (t *Triangulator) extractBoundaryTriangles(gout *GraphOutline, hole bool, sharpness float32) *GraphOutline {
	inner := NewEmptyGraphOutline()
	verts := gout.Vertices()
	size := len(verts)
	for i := 0; i < size; i++ {
		gv1 := verts[i]
		if gv1.Point().OnCurve {
			inner.AddVertex(gv1)
			continue
		}
		gv0 := verts[(i+size-1)%size]
		gv2 := verts[(i+1)%size]
		gv0.SetBoundaryContained(true)
		gv2.SetBoundaryContained(true)

		v0 := *gv0.Point()
		v1 := *gv1.Point()
		v2 := *gv2.Point()
		holeLike := !geom.IsCCW(v0, v1, v2)
		if hole || holeLike {
			v0.SetTexCoord(0, -0.1, 0)
			v2.SetTexCoord(1, -0.1, 0)
			v1.SetTexCoord(0.5, -0.1-sharpness, 0)
			// The boundary triangle fills the concavity; v1 still
			// belongs to the solid boundary.
			inner.AddVertex(gv1)
		} else {
			v0.SetTexCoord(0, 0.1, 0)
			v2.SetTexCoord(1, 0.1, 0)
			v1.SetTexCoord(0.5, 0.1+sharpness, 0)
		}
		tri := geom.NewTriangle(v0, v1, v2, [3]bool{true, true, true})
		tri.SetBoundaryEdges([3]bool{true, true, true})
		t.emit(tri)
	}
	return inner
}

// Generate ear-cuts every loop down to a simplex and emits the final
// triangles. Per loop, up to about loop-size cuts are attempted with the
// Delaunay preference, then up to twice that without; a loop that still
// cannot progress is abandoned with a partial result.
func (t *Triangulator) Generate() []*geom.Triangle {
	for _, l := range t.loops {
		tries := 0
		size := l.Size()
		for !l.Done() && !l.IsSimplex() {
			tri := l.Cut(tries <= size)
			if tri != nil {
				t.emit(tri)
				tries = 0
				size--
				continue
			}
			tries++
			if tries > 2*size {
				gamp.Logger().Debug("tess: degenerate loop, aborting with partial result",
					"remaining", l.Size())
				break
			}
		}
		if l.IsSimplex() {
			if tri := l.Cut(true); tri != nil {
				t.emit(tri)
			}
		}
	}
	return t.tris
}

// Triangles returns all triangles emitted so far.
func (t *Triangulator) Triangles() []*geom.Triangle { return t.tris }
