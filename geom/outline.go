package geom

import (
	"fmt"
	"math"
)

// MaxOutlineVertices bounds the element count of an Outline; the vector
// glyph format addresses outline elements with a 32-bit size type.
const MaxOutlineVertices = math.MaxUint32

// dirty bits for the lazily-validated derived values of an Outline.
const (
	dirtyBounds uint8 = 1 << iota
	dirtyWinding
	dirtyComplex
)

// Outline is a single closed stroke of a glyph: an ordered vertex
// sequence with cached bounding box, winding and convexity. Mutations
// invalidate the caches through a dirty bitmask.
//
// An outline of fewer than 3 vertices is defined to be CCW and simple.
type Outline struct {
	verts  []Vertex
	closed bool

	dirty   uint8
	bounds  AABBox
	winding Winding
	complex bool
}

// NewOutline returns an empty open outline.
func NewOutline() *Outline {
	return &Outline{
		bounds:  NewAABBox(),
		winding: CCW,
	}
}

// Len returns the number of vertices.
func (o *Outline) Len() int { return len(o.verts) }

// IsEmpty reports whether the outline has no vertices.
func (o *Outline) IsEmpty() bool { return len(o.verts) == 0 }

// Vertex returns vertex i.
func (o *Outline) Vertex(i int) Vertex { return o.verts[i] }

// SetVertex replaces vertex i and invalidates the caches.
func (o *Outline) SetVertex(i int, v Vertex) {
	o.verts[i] = v
	o.dirty |= dirtyBounds | dirtyWinding | dirtyComplex
}

// Vertices returns the internal vertex slice. Callers must not grow it;
// use AddVertex and friends so the caches stay coherent.
func (o *Outline) Vertices() []Vertex { return o.verts }

// LastVertex returns the last vertex and true, or a zero vertex and
// false when the outline is empty.
func (o *Outline) LastVertex() (Vertex, bool) {
	if len(o.verts) == 0 {
		return Vertex{}, false
	}
	return o.verts[len(o.verts)-1], true
}

// AddVertex appends v. The bounding box is grown in place when its cache
// is valid; winding and convexity are invalidated.
func (o *Outline) AddVertex(v Vertex) error {
	return o.InsertVertex(len(o.verts), v)
}

// InsertVertex inserts v at position i.
func (o *Outline) InsertVertex(i int, v Vertex) error {
	if uint64(len(o.verts)) >= uint64(MaxOutlineVertices) {
		return fmt.Errorf("geom: outline full (%d vertices)", len(o.verts))
	}
	o.verts = append(o.verts, Vertex{})
	copy(o.verts[i+1:], o.verts[i:])
	o.verts[i] = v
	if o.dirty&dirtyBounds == 0 {
		o.bounds.Resize(v.X, v.Y)
	}
	o.dirty |= dirtyWinding | dirtyComplex
	return nil
}

// RemoveVertex removes and returns vertex i. All caches are invalidated;
// the bounding box may shrink.
func (o *Outline) RemoveVertex(i int) Vertex {
	v := o.verts[i]
	copy(o.verts[i:], o.verts[i+1:])
	o.verts = o.verts[:len(o.verts)-1]
	o.dirty |= dirtyBounds | dirtyWinding | dirtyComplex
	return v
}

// Closed reports whether the outline has been closed.
func (o *Outline) Closed() bool { return o.closed }

// SetClosed closes or opens the outline. Closing with closeTail true
// appends a copy of the first vertex when first != last; with closeTail
// false it prepends a copy of the last vertex instead. Either way the
// closed outline starts and ends on the same point.
func (o *Outline) SetClosed(closed, closeTail bool) error {
	if closed && len(o.verts) > 0 {
		first := o.verts[0]
		last := o.verts[len(o.verts)-1]
		if !first.Equals(last) {
			if closeTail {
				if err := o.AddVertex(first); err != nil {
					return err
				}
			} else {
				if err := o.InsertVertex(0, last); err != nil {
					return err
				}
			}
		}
	}
	o.closed = closed
	return nil
}

// Bounds returns the axis-aligned bounding box, recomputing it if dirty.
func (o *Outline) Bounds() AABBox {
	if o.dirty&dirtyBounds != 0 {
		o.bounds.Reset()
		for _, v := range o.verts {
			o.bounds.Resize(v.X, v.Y)
		}
		o.dirty &^= dirtyBounds
	}
	return o.bounds
}

// Winding returns the cached winding, recomputing it from the signed
// polygon area if dirty.
func (o *Outline) Winding() Winding {
	if o.dirty&dirtyWinding != 0 {
		o.winding = WindingOf(o.verts)
		o.dirty &^= dirtyWinding
	}
	return o.winding
}

// SetWinding reverses the vertex sequence if the current winding differs
// from w. Afterwards the cached winding is w and valid.
func (o *Outline) SetWinding(w Winding) {
	if o.Winding() == w {
		return
	}
	for i, j := 0, len(o.verts)-1; i < j; i, j = i+1, j-1 {
		o.verts[i], o.verts[j] = o.verts[j], o.verts[i]
	}
	o.dirty |= dirtyBounds | dirtyComplex
	o.dirty &^= dirtyWinding
	o.winding = w
}

// IsComplex reports whether the outline is non-convex. The walk visits
// on-curve vertices only and classifies sign flips of the consecutive
// edge-vector components and of the cross product: more than two x-sign
// flips, more than two y-sign flips, or a cross-product sign disagreement
// makes the polyline complex.
func (o *Outline) IsComplex() bool {
	if o.dirty&dirtyComplex != 0 {
		o.complex = computeComplex(o.verts)
		o.dirty &^= dirtyComplex
	}
	return o.complex
}

func computeComplex(verts []Vertex) bool {
	var on []Vertex
	for _, v := range verts {
		if v.OnCurve {
			on = append(on, v)
		}
	}
	n := len(on)
	if n < 3 {
		return false
	}

	var xFlips, yFlips int
	var lastDX, lastDY, crossSign float64
	haveDX, haveDY := false, false
	for i := 0; i < n; i++ {
		a := on[i]
		b := on[(i+1)%n]
		c := on[(i+2)%n]
		dx := float64(b.X) - float64(a.X)
		dy := float64(b.Y) - float64(a.Y)
		if dx != 0 {
			if haveDX && (dx > 0) != (lastDX > 0) {
				xFlips++
			}
			lastDX, haveDX = dx, true
		}
		if dy != 0 {
			if haveDY && (dy > 0) != (lastDY > 0) {
				yFlips++
			}
			lastDY, haveDY = dy, true
		}
		cross := TriArea(a, b, c)
		if cross != 0 {
			if crossSign != 0 && (cross > 0) != (crossSign > 0) {
				return true
			}
			crossSign = cross
		}
	}
	return xFlips > 2 || yFlips > 2
}
