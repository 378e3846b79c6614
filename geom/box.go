package geom

import "math"

// AABBox is a 2D axis-aligned bounding box over the (x, y) plane.
// The zero value is not valid; use NewAABBox or Reset.
type AABBox struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// NewAABBox returns an empty box, ready to be grown with Resize.
func NewAABBox() AABBox {
	b := AABBox{}
	b.Reset()
	return b
}

// Reset empties the box so that the next Resize sets both corners.
func (b *AABBox) Reset() {
	b.MinX, b.MinY = math.MaxFloat32, math.MaxFloat32
	b.MaxX, b.MaxY = -math.MaxFloat32, -math.MaxFloat32
}

// IsEmpty reports whether the box has never been resized.
func (b *AABBox) IsEmpty() bool {
	return b.MinX > b.MaxX
}

// Resize grows the box to include (x, y).
func (b *AABBox) Resize(x, y float32) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// ResizeBox grows the box to include box o.
func (b *AABBox) ResizeBox(o AABBox) {
	if o.IsEmpty() {
		return
	}
	b.Resize(o.MinX, o.MinY)
	b.Resize(o.MaxX, o.MaxY)
}

// Contains reports whether (x, y) lies inside the box, borders included.
func (b *AABBox) Contains(x, y float32) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Size returns the diagonal length of the box, used to order outer shells
// before their holes.
func (b *AABBox) Size() float64 {
	if b.IsEmpty() {
		return 0
	}
	dx := float64(b.MaxX) - float64(b.MinX)
	dy := float64(b.MaxY) - float64(b.MinY)
	return math.Hypot(dx, dy)
}
