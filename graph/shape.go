// Package graph provides the resolution-independent vector-glyph model:
// outline shapes built from on-curve and off-curve vertices, their
// normalization to quadratic curves, and the triangulation driver that
// turns them into GPU-ready triangle meshes.
package graph

import (
	"sort"

	"github.com/sgothel/gamp-sub001/geom"
	"github.com/sgothel/gamp-sub001/graph/tess"
)

// VertexState tracks whether a shape's control points have been
// normalized to quadratic curves.
type VertexState uint8

const (
	// StateRaw is the state of a freshly built shape: consecutive
	// off-curve vertices (cubic control runs) may still be present.
	StateRaw VertexState = iota

	// StateQuadNURBS means every off-curve vertex sits between two
	// on-curve vertices, as required by the quadratic fill rule.
	StateQuadNURBS
)

// DefaultSharpness is the default curve tex-coord depth.
const DefaultSharpness = 0.5

// dirty bits for the derived collections of an OutlineShape.
const (
	dirtyVertices uint8 = 1 << iota
	dirtyTriangles
)

// OutlineShape is an ordered set of outlines describing one glyph: outer
// boundaries wind CCW, holes CW. The flattened vertex list and the
// triangle list are derived lazily and guarded by dirty bits.
type OutlineShape struct {
	outlines  []*geom.Outline
	state     VertexState
	sharpness float32

	dirty uint8
	verts []geom.Vertex
	tris  []*geom.Triangle
}

// NewOutlineShape returns an empty shape holding one empty outline.
func NewOutlineShape() *OutlineShape {
	return &OutlineShape{
		outlines:  []*geom.Outline{geom.NewOutline()},
		sharpness: DefaultSharpness,
		dirty:     dirtyVertices | dirtyTriangles,
	}
}

// VertexState returns the normalization state of the shape.
func (s *OutlineShape) VertexState() VertexState { return s.state }

// Sharpness returns the curve tex-coord depth.
func (s *OutlineShape) Sharpness() float32 { return s.sharpness }

// SetSharpness sets the curve tex-coord depth and invalidates the
// triangle list.
func (s *OutlineShape) SetSharpness(sharpness float32) {
	if s.sharpness != sharpness {
		s.sharpness = sharpness
		s.dirty |= dirtyTriangles
	}
}

// Outlines returns the outlines of the shape.
func (s *OutlineShape) Outlines() []*geom.Outline { return s.outlines }

// LastOutline returns the outline under construction.
func (s *OutlineShape) LastOutline() *geom.Outline {
	return s.outlines[len(s.outlines)-1]
}

// AddEmptyOutline appends a fresh outline and returns it.
func (s *OutlineShape) AddEmptyOutline() *geom.Outline {
	o := geom.NewOutline()
	s.outlines = append(s.outlines, o)
	s.dirty |= dirtyVertices | dirtyTriangles
	return o
}

// AddOutline appends o to the shape.
func (s *OutlineShape) AddOutline(o *geom.Outline) {
	if s.LastOutline().IsEmpty() {
		s.outlines[len(s.outlines)-1] = o
	} else {
		s.outlines = append(s.outlines, o)
	}
	s.dirty |= dirtyVertices | dirtyTriangles
	s.state = StateRaw
}

// AddVertex appends v to the outline under construction.
func (s *OutlineShape) AddVertex(v geom.Vertex) error {
	s.dirty |= dirtyVertices | dirtyTriangles
	s.state = StateRaw
	return s.LastOutline().AddVertex(v)
}

// CloseLastOutline closes the outline under construction, duplicating
// the first vertex at the tail so first == last.
func (s *OutlineShape) CloseLastOutline() error {
	s.dirty |= dirtyVertices | dirtyTriangles
	return s.LastOutline().SetClosed(true, true)
}

// MoveTo starts a new outline at (x, y). The outline under construction
// is reused when still empty.
func (s *OutlineShape) MoveTo(x, y float32) error {
	if !s.LastOutline().IsEmpty() {
		s.AddEmptyOutline()
	}
	return s.AddVertex(geom.Vert(x, y, true))
}

// LineTo appends a straight segment to (x, y).
func (s *OutlineShape) LineTo(x, y float32) error {
	return s.AddVertex(geom.Vert(x, y, true))
}

// QuadTo appends a quadratic segment with control (cx, cy) ending at
// (x, y).
func (s *OutlineShape) QuadTo(cx, cy, x, y float32) error {
	if err := s.AddVertex(geom.Vert(cx, cy, false)); err != nil {
		return err
	}
	return s.AddVertex(geom.Vert(x, y, true))
}

// CubicTo appends a cubic segment with controls (c1x, c1y), (c2x, c2y)
// ending at (x, y). The consecutive off-curve pair is normalized to
// quadratic form during cleanup.
func (s *OutlineShape) CubicTo(c1x, c1y, c2x, c2y, x, y float32) error {
	if err := s.AddVertex(geom.Vert(c1x, c1y, false)); err != nil {
		return err
	}
	if err := s.AddVertex(geom.Vert(c2x, c2y, false)); err != nil {
		return err
	}
	return s.AddVertex(geom.Vert(x, y, true))
}

// Bounds returns the bounding box over all outlines.
func (s *OutlineShape) Bounds() geom.AABBox {
	box := geom.NewAABBox()
	for _, o := range s.outlines {
		box.ResizeBox(o.Bounds())
	}
	return box
}

// IsComplex reports whether any outline of the shape is non-convex.
func (s *OutlineShape) IsComplex() bool {
	for _, o := range s.outlines {
		if o.IsComplex() {
			return true
		}
	}
	return false
}

// Vertices returns the flattened vertex list over all outlines.
func (s *OutlineShape) Vertices() []geom.Vertex {
	if s.dirty&dirtyVertices != 0 {
		s.verts = s.verts[:0]
		for _, o := range s.outlines {
			s.verts = append(s.verts, o.Vertices()...)
		}
		s.dirty &^= dirtyVertices
	}
	return s.verts
}

// Triangles triangulates the shape if needed and returns the triangle
// stream. After the first call the shape is in StateQuadNURBS.
func (s *OutlineShape) Triangles() []*geom.Triangle {
	if s.dirty&dirtyTriangles != 0 {
		s.triangulate()
		s.dirty &^= dirtyTriangles
	}
	return s.tris
}

func (s *OutlineShape) triangulate() {
	if s.state != StateQuadNURBS {
		s.cleanupOutlines()
	}

	// Outer shells first: sort by bounding-box size descending so holes
	// find their containing loop already present.
	sort.SliceStable(s.outlines, func(i, j int) bool {
		bi, bj := s.outlines[i].Bounds(), s.outlines[j].Bounds()
		return bi.Size() > bj.Size()
	})

	// Re-issue vertex ids densely across the whole shape.
	id := 0
	for _, o := range s.outlines {
		verts := o.Vertices()
		for i := range verts {
			verts[i].ID = id
			id++
		}
	}
	s.dirty |= dirtyVertices

	tr := tess.New()
	tr.SetComplexShape(s.IsComplex())
	for _, o := range s.outlines {
		tr.AddCurve(o, s.sharpness)
	}
	s.tris = tr.Generate()
}
