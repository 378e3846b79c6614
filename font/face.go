// Package font turns font files into triangulable glyph shapes. Two
// parsing paths are provided: the x/image sfnt path (Face), which
// loads hinted, ppem-scaled outlines, and the go-text/typesetting path
// (GoTextFace), which reads outlines in raw font units. Both emit
// graph.OutlineShape values ready for the triangulator.
package font

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNoGlyph reports a rune with no glyph in the face.
var ErrNoGlyph = errors.New("font: no glyph for rune")

// Face wraps a parsed sfnt font plus a reusable raster buffer. A Face
// is not safe for concurrent use; the glyph pipeline runs on the
// render goroutine.
type Face struct {
	font *opentype.Font
	buf  sfnt.Buffer
}

// Parse parses TTF/OTF data into a Face.
func Parse(data []byte) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	return &Face{font: f}, nil
}

// ParseFile reads and parses a font file.
func ParseFile(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: read %s: %w", path, err)
	}
	return Parse(data)
}

// Name returns the font family name, empty when absent.
func (f *Face) Name() string {
	name, err := f.font.Name(&f.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// UnitsPerEm returns the design grid density.
func (f *Face) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex resolves a rune to its glyph id; 0 is the missing glyph.
func (f *Face) GlyphIndex(r rune) uint16 {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// Advance returns the horizontal advance of gid at size pixels per em.
func (f *Face) Advance(gid uint16, size float64) float64 {
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), floatToFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// Metrics returns ascent and descent at size pixels per em, both as
// positive distances from the baseline.
func (f *Face) Metrics(size float64) (ascent, descent float64, err error) {
	m, err := f.font.Metrics(&f.buf, floatToFixed(size), font.HintingNone)
	if err != nil {
		return 0, 0, fmt.Errorf("font: metrics: %w", err)
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), nil
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
