package font

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/sgothel/gamp-sub001/graph"
)

// Direction is the base paragraph direction.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// Run is a maximal substring of uniform direction, in rune indices
// [Start, End).
type Run struct {
	Start int
	End   int
	RTL   bool
}

// SplitRuns splits text into directional runs in visual order using the
// Unicode bidi algorithm. Empty text yields no runs.
func SplitRuns(text string, base Direction) []Run {
	if text == "" {
		return nil
	}
	defaultDir := bidi.Neutral
	if base == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(defaultDir)); err != nil {
		return []Run{{Start: 0, End: len([]rune(text)), RTL: base == DirectionRTL}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []Run{{Start: 0, End: len([]rune(text)), RTL: base == DirectionRTL}}
	}

	runs := make([]Run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		// Pos reports inclusive rune indices.
		start, end := r.Pos()
		runs = append(runs, Run{
			Start: start,
			End:   end + 1,
			RTL:   r.Direction() == bidi.RightToLeft,
		})
	}
	return runs
}

// PlacedGlyph is one glyph shape positioned on the baseline.
type PlacedGlyph struct {
	Rune  rune
	Shape *graph.OutlineShape
	X     float64
}

// GlyphSource is the part of a face the layout needs; Face and
// GoTextFace both satisfy it.
type GlyphSource interface {
	GlyphIndex(r rune) uint16
	RuneShape(r rune, size float64) (*graph.OutlineShape, error)
}

// Layout places the glyphs of text on one baseline at size pixels per
// em, honoring directional runs: runs arrive in visual order, and RTL
// run content is reversed. Runes without a glyph advance by advancer
// but contribute no shape (space behavior); advancer may be nil when
// the source is a *Face.
func Layout(src GlyphSource, text string, size float64, base Direction) ([]PlacedGlyph, error) {
	runes := []rune(text)
	var placed []PlacedGlyph
	x := 0.0

	advance := func(r rune) float64 {
		if f, ok := src.(*Face); ok {
			return f.Advance(f.GlyphIndex(r), size)
		}
		// Fixed fallback advance for sources without metrics.
		return size * 0.6
	}

	emit := func(r rune) error {
		if r == ' ' || r == '\t' {
			x += advance(r)
			return nil
		}
		shape, err := src.RuneShape(r, size)
		if err != nil {
			x += advance(r)
			return nil
		}
		placed = append(placed, PlacedGlyph{Rune: r, Shape: shape, X: x})
		x += advance(r)
		return nil
	}

	for _, run := range SplitRuns(text, base) {
		if run.RTL {
			for i := run.End - 1; i >= run.Start; i-- {
				if err := emit(runes[i]); err != nil {
					return nil, err
				}
			}
		} else {
			for i := run.Start; i < run.End; i++ {
				if err := emit(runes[i]); err != nil {
					return nil, err
				}
			}
		}
	}
	return placed, nil
}
