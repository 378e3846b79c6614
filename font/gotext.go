package font

import (
	"bytes"
	"fmt"
	"os"

	gtfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/sgothel/gamp-sub001/graph"
)

// GoTextFace is the go-text/typesetting parsing path. Outlines arrive
// in font units and are scaled by size/unitsPerEm at extraction; this
// path skips hinting and serves fonts the sfnt parser rejects.
type GoTextFace struct {
	face *gtfont.Face
}

// ParseGoText parses TTF/OTF data with go-text/typesetting.
func ParseGoText(data []byte) (*GoTextFace, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: gotext parse: %w", err)
	}
	return &GoTextFace{face: face}, nil
}

// ParseGoTextFile reads and parses a font file.
func ParseGoTextFile(path string) (*GoTextFace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	return ParseGoText(data)
}

// UnitsPerEm returns the design grid density.
func (f *GoTextFace) UnitsPerEm() int {
	return int(f.face.Font.Upem())
}

// GlyphIndex resolves a rune to its glyph id; 0 is the missing glyph.
func (f *GoTextFace) GlyphIndex(r rune) uint16 {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return uint16(gid)
}

// GlyphShape extracts the outline of gid scaled to size pixels per em.
// Font-unit coordinates are y-up already, so no flip is applied.
func (f *GoTextFace) GlyphShape(gid uint16, size float64) (*graph.OutlineShape, error) {
	data := f.face.GlyphData(gtfont.GID(gid))
	outline, ok := data.(gtfont.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("font: glyph %d has no outline data", gid)
	}
	scale := float32(size) / float32(f.face.Font.Upem())
	return outlineToShape(outline.Segments, scale)
}

// outlineToShape replays scaled outline segments into a shape, closing
// each contour at the next move or at the end of the stream.
func outlineToShape(segments []ot.Segment, scale float32) (*graph.OutlineShape, error) {
	shape := graph.NewOutlineShape()
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				if err := shape.CloseLastOutline(); err != nil {
					return nil, err
				}
			}
			if err := shape.MoveTo(seg.Args[0].X*scale, seg.Args[0].Y*scale); err != nil {
				return nil, err
			}
			open = true
		case ot.SegmentOpLineTo:
			if err := shape.LineTo(seg.Args[0].X*scale, seg.Args[0].Y*scale); err != nil {
				return nil, err
			}
		case ot.SegmentOpQuadTo:
			if err := shape.QuadTo(
				seg.Args[0].X*scale, seg.Args[0].Y*scale,
				seg.Args[1].X*scale, seg.Args[1].Y*scale); err != nil {
				return nil, err
			}
		case ot.SegmentOpCubeTo:
			if err := shape.CubicTo(
				seg.Args[0].X*scale, seg.Args[0].Y*scale,
				seg.Args[1].X*scale, seg.Args[1].Y*scale,
				seg.Args[2].X*scale, seg.Args[2].Y*scale); err != nil {
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

// RuneShape is GlyphShape keyed by rune.
func (f *GoTextFace) RuneShape(r rune, size float64) (*graph.OutlineShape, error) {
	gid := f.GlyphIndex(r)
	if gid == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoGlyph, r)
	}
	return f.GlyphShape(gid, size)
}
