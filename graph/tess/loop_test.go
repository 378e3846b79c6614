package tess

import (
	"math"
	"testing"

	"github.com/sgothel/gamp-sub001/geom"
)

func outlineOf(t *testing.T, pts [][2]float32) *geom.Outline {
	t.Helper()
	o := geom.NewOutline()
	for _, p := range pts {
		if err := o.AddVertex(geom.Vert(p[0], p[1], true)); err != nil {
			t.Fatalf("AddVertex: %v", err)
		}
	}
	return o
}

func TestNewLoop_RequiresCCW(t *testing.T) {
	cw := outlineOf(t, [][2]float32{{0, 0}, {0, 4}, {4, 4}, {4, 0}})
	if _, err := NewLoop(NewGraphOutline(cw), false); err == nil {
		t.Error("NewLoop accepted a CW polyline")
	}

	ccw := outlineOf(t, [][2]float32{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	l, err := NewLoop(NewGraphOutline(ccw), false)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	if got := l.Size(); got != 4 {
		t.Errorf("Size() = %d, want 4", got)
	}
}

func TestLoop_SiblingPairingSymmetric(t *testing.T) {
	ccw := outlineOf(t, [][2]float32{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	l, err := NewLoop(NewGraphOutline(ccw), false)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	if l.Cut(true) == nil {
		t.Fatal("Cut on convex quad returned nil")
	}
	for _, e := range l.arena {
		if e.sibling != nil && e.sibling.sibling != e {
			t.Error("sibling pairing is not symmetric")
		}
	}
}

func TestLoop_CutConvexPolygon(t *testing.T) {
	// Regular-ish CCW pentagon: 5 vertices yield 3 triangles.
	pts := [][2]float32{{0, 0}, {4, 0}, {5, 3}, {2, 5}, {-1, 3}}
	l, err := NewLoop(NewGraphOutline(outlineOf(t, pts)), false)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	var tris []*geom.Triangle
	for !l.Done() {
		if tri := l.Cut(true); tri != nil {
			tris = append(tris, tri)
		}
	}
	if len(tris) != 3 {
		t.Fatalf("got %d triangles, want 3", len(tris))
	}
	want := math.Abs(geom.PolygonArea(outlineOf(t, pts).Vertices())) / 2
	sum := 0.0
	for _, tri := range tris {
		sum += tri.Area()
	}
	if math.Abs(sum-want) > 1e-6 {
		t.Errorf("area sum = %v, want %v", sum, want)
	}
}

func TestLoop_CutRejectsReflexEar(t *testing.T) {
	// CCW polygon with a reflex vertex at (2, 1): the ear starting at
	// index 1 is not CCW and must be rejected with the root advanced.
	pts := [][2]float32{{4, 0}, {2, 1}, {2, 4}, {0, 0}}
	l, err := NewLoop(NewGraphOutline(outlineOf(t, pts)), false)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	root := l.root
	a, b, c := root.vert.point, root.next.vert.point, root.next.next.vert.point
	if geom.IsCCW(*a, *b, *c) {
		t.Skip("candidate unexpectedly convex; polygon changed")
	}
	if tri := l.Cut(false); tri != nil {
		t.Fatal("Cut accepted a non-CCW ear")
	}
	if l.root == root {
		t.Error("root not advanced after rejection")
	}
}

func TestLoop_AddHoleBridges(t *testing.T) {
	outer, err := NewLoop(NewGraphOutline(outlineOf(t,
		[][2]float32{{0, 0}, {10, 0}, {10, 10}, {0, 10}})), false)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	hole := NewGraphOutline(outlineOf(t,
		[][2]float32{{3, 3}, {3, 7}, {7, 7}, {7, 3}}))
	if err := outer.AddHole(hole); err != nil {
		t.Fatalf("AddHole: %v", err)
	}

	// 4 outer + 4 hole + 2 bridge traversals.
	if got := outer.Size(); got != 10 {
		t.Errorf("Size() after AddHole = %d, want 10", got)
	}
	// The root sits on the bridge.
	if outer.root.typ != EdgeInner {
		t.Errorf("root edge type = %v, want EdgeInner", outer.root.typ)
	}
	// Bridge picks the hole vertex closest to the reference vertex,
	// lowest index on ties.
	if got := outer.root.next.vert.point; got.X != 3 || got.Y != 3 {
		t.Errorf("bridge target = (%v,%v), want (3,3)", got.X, got.Y)
	}

	var tris []*geom.Triangle
	guard := 0
	for !outer.Done() && guard < 100 {
		if tri := outer.Cut(true); tri != nil {
			tris = append(tris, tri)
		}
		guard++
	}
	sum := 0.0
	for _, tri := range tris {
		sum += tri.Area()
	}
	if math.Abs(sum-84) > 1e-6 {
		t.Errorf("area sum = %v, want 84", sum)
	}
}

func TestLoop_AddHoleDegenerate(t *testing.T) {
	outer, err := NewLoop(NewGraphOutline(outlineOf(t,
		[][2]float32{{0, 0}, {10, 0}, {10, 10}, {0, 10}})), false)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	hole := NewGraphOutline(outlineOf(t, [][2]float32{{3, 3}, {4, 4}}))
	if err := outer.AddHole(hole); err == nil {
		t.Error("AddHole accepted a 2-vertex hole")
	}
}

func TestTriangulator_SelfTouchingComplexOutline(t *testing.T) {
	// Bowtie-adjacent shape that touches itself at (2,2) without
	// crossing; the triangulator must produce a valid partial fan with
	// no intersecting triangle edges.
	o := outlineOf(t, [][2]float32{
		{0, 0}, {4, 0}, {2, 2}, {4, 4}, {0, 4}, {2, 2},
	})
	tr := New()
	tr.SetComplexShape(true)
	tr.AddCurve(o, 0.5)
	tris := tr.Generate()
	for _, tri := range tris {
		if tri.Area() <= 1e-9 {
			t.Errorf("triangle %d has ~zero area", tri.ID())
		}
	}
	// No two triangle edges may properly intersect.
	type seg struct{ a, b geom.Vertex }
	var segs []seg
	for _, tri := range tris {
		vs := tri.Vertices()
		for i := 0; i < 3; i++ {
			segs = append(segs, seg{vs[i], vs[(i+1)%3]})
		}
	}
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if geom.SegmentsIntersect(segs[i].a, segs[i].b, segs[j].a, segs[j].b) {
				t.Fatalf("triangle edges intersect: %v-%v x %v-%v",
					segs[i].a, segs[i].b, segs[j].a, segs[j].b)
			}
		}
	}
}
