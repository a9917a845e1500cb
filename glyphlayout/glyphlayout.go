// SPDX-License-Identifier: Unlicense OR MIT

// Package glyphlayout is the external glyph-layout boundary the text
// emitter shapes and positions runs of text through: it never
// rasterizes a glyph itself, only resolves a Face plus a style into a
// Layout of positioned GlyphIDs in document coordinates, the way a
// caller would then hand off to a font rasterizer outside this
// module.
//
// Modeled on gioui.org/text's Face/Glyph/Shaper shape (ID, per-glyph
// X/Y/Advance in fixed.Int26_6, one Layout per call to Shape), trimmed
// to the fields the tessellator's text emitter actually consumes:
// pen position and advance, not line-breaking or bidi metadata, since
// this module emits geometry for already-shaped runs rather than
// performing paragraph layout itself.
package glyphlayout

import (
	tfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"
)

// Face resolves runes to glyph IDs and metrics for one font at one
// size, implemented by a caller-supplied shaper wrapping
// github.com/go-text/typesetting/font.Face.
type Face interface {
	// Font returns the underlying typesetting face this Face shapes
	// glyphs against.
	Font() *tfont.Face
	// Shape lays out text (already resolved to a rune sequence) at
	// pxPerEm, returning one Glyph per shaped glyph in visual order.
	Shape(text []rune, pxPerEm fixed.Int26_6) []Glyph
}

// Glyph is one shaped, positioned glyph in document coordinates: (0,0)
// is the run's origin, X grows rightward and Y downward.
type Glyph struct {
	GID     tfont.GID
	X       fixed.Int26_6
	Y       fixed.Int26_6
	Advance fixed.Int26_6
	// Bounds is the glyph's visual extent relative to its own (X, Y)
	// dot, used to size the text info record's bounding box.
	Bounds fixed.Rectangle26_6
	// ClusterRune is the index, within the range's original text, of
	// the first rune in this glyph's cluster.
	ClusterRune int
}

// Style parameterizes one TextRange's Shape call.
type Style struct {
	Face    Face
	PxPerEm fixed.Int26_6
}

// Layout is the result of shaping one run of text: the full glyph
// sequence plus the pen advance consumed by the run as a whole.
type Layout struct {
	Glyphs       []Glyph
	TotalAdvance fixed.Int26_6
}

// Shape lays out text with style, returning a Layout whose Glyphs span
// the entire input (TextRange sub-ranges index into this slice by
// ClusterRune, not by allocating a fresh Layout per range).
func Shape(style Style, text []rune) Layout {
	if style.Face == nil || len(text) == 0 {
		return Layout{}
	}
	glyphs := style.Face.Shape(text, style.PxPerEm)
	var total fixed.Int26_6
	for _, g := range glyphs {
		total += g.Advance
	}
	return Layout{Glyphs: glyphs, TotalAdvance: total}
}

// GlyphsForRange returns the subslice of l.Glyphs whose ClusterRune
// falls within [start, start+count).
func (l Layout) GlyphsForRange(start, count int) []Glyph {
	end := start + count
	lo, hi := len(l.Glyphs), len(l.Glyphs)
	for i, g := range l.Glyphs {
		if g.ClusterRune >= start && i < lo {
			lo = i
		}
		if g.ClusterRune >= end && i < hi {
			hi = i
			break
		}
	}
	if lo > hi {
		lo = hi
	}
	return l.Glyphs[lo:hi]
}

// Bounds returns the union bounding box, in document coordinates, of
// glyphs (each placed at its own X/Y dot).
func Bounds(glyphs []Glyph) fixed.Rectangle26_6 {
	if len(glyphs) == 0 {
		return fixed.Rectangle26_6{}
	}
	b := offsetRect(glyphs[0])
	for _, g := range glyphs[1:] {
		gb := offsetRect(g)
		if gb.Min.X < b.Min.X {
			b.Min.X = gb.Min.X
		}
		if gb.Min.Y < b.Min.Y {
			b.Min.Y = gb.Min.Y
		}
		if gb.Max.X > b.Max.X {
			b.Max.X = gb.Max.X
		}
		if gb.Max.Y > b.Max.Y {
			b.Max.Y = gb.Max.Y
		}
	}
	return b
}

func offsetRect(g Glyph) fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: g.Bounds.Min.X + g.X, Y: g.Bounds.Min.Y + g.Y},
		Max: fixed.Point26_6{X: g.Bounds.Max.X + g.X, Y: g.Bounds.Max.Y + g.Y},
	}
}
