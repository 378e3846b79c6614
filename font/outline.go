package font

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/sgothel/gamp-sub001/graph"
)

// GlyphShape loads the outline of gid at size pixels per em and
// converts it to a triangulable shape. sfnt delivers y-down
// coordinates; the shape is flipped to y-up so winding semantics match
// the triangulator's CCW-is-solid convention.
func (f *Face) GlyphShape(gid uint16, size float64) (*graph.OutlineShape, error) {
	segments, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), floatToFixed(size), nil)
	if err != nil {
		return nil, fmt.Errorf("font: load glyph %d: %w", gid, err)
	}
	return segmentsToShape(segments)
}

// RuneShape is GlyphShape keyed by rune.
func (f *Face) RuneShape(r rune, size float64) (*graph.OutlineShape, error) {
	gid := f.GlyphIndex(r)
	if gid == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	return f.GlyphShape(gid, size)
}

func segmentsToShape(segments sfnt.Segments) (*graph.OutlineShape, error) {
	shape := graph.NewOutlineShape()
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				if err := shape.CloseLastOutline(); err != nil {
					return nil, err
				}
			}
			x, y := segPoint(seg.Args[0])
			if err := shape.MoveTo(x, y); err != nil {
				return nil, err
			}
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := segPoint(seg.Args[0])
			if err := shape.LineTo(x, y); err != nil {
				return nil, err
			}
		case sfnt.SegmentOpQuadTo:
			cx, cy := segPoint(seg.Args[0])
			x, y := segPoint(seg.Args[1])
			if err := shape.QuadTo(cx, cy, x, y); err != nil {
				return nil, err
			}
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := segPoint(seg.Args[0])
			c2x, c2y := segPoint(seg.Args[1])
			x, y := segPoint(seg.Args[2])
			if err := shape.CubicTo(c1x, c1y, c2x, c2y, x, y); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("font: unknown segment op %d", seg.Op)
		}
	}
	if open {
		if err := shape.CloseLastOutline(); err != nil {
			return nil, err
		}
	}
	return shape, nil
}

// segPoint converts one fixed-point segment argument, flipping y.
func segPoint(p fixed.Point26_6) (x, y float32) {
	return float32(fixedToFloat(p.X)), -float32(fixedToFloat(p.Y))
}
