// SPDX-License-Identifier: Unlicense OR MIT

package glyphlayout

import (
	"testing"

	tfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"
)

type fakeFace struct{}

func (fakeFace) Font() *tfont.Face { return nil }

func (fakeFace) Shape(text []rune, pxPerEm fixed.Int26_6) []Glyph {
	glyphs := make([]Glyph, len(text))
	var x fixed.Int26_6
	for i := range text {
		glyphs[i] = Glyph{
			GID:         tfont.GID(i),
			X:           x,
			Advance:     pxPerEm,
			ClusterRune: i,
			Bounds:      fixed.Rectangle26_6{Max: fixed.Point26_6{X: pxPerEm, Y: pxPerEm}},
		}
		x += pxPerEm
	}
	return glyphs
}

func TestShapeAccumulatesAdvance(t *testing.T) {
	l := Shape(Style{Face: fakeFace{}, PxPerEm: fixed.I(16)}, []rune("abc"))
	if len(l.Glyphs) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(l.Glyphs))
	}
	if want := fixed.I(48); l.TotalAdvance != want {
		t.Errorf("TotalAdvance = %v, want %v", l.TotalAdvance, want)
	}
}

func TestShapeNilFaceIsEmpty(t *testing.T) {
	l := Shape(Style{}, []rune("abc"))
	if len(l.Glyphs) != 0 {
		t.Errorf("expected empty layout for nil face")
	}
}

func TestGlyphsForRangeSlicesByCluster(t *testing.T) {
	l := Shape(Style{Face: fakeFace{}, PxPerEm: fixed.I(10)}, []rune("abcdef"))
	sub := l.GlyphsForRange(2, 3)
	if len(sub) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(sub))
	}
	if sub[0].ClusterRune != 2 {
		t.Errorf("first glyph ClusterRune = %d, want 2", sub[0].ClusterRune)
	}
}

func TestBoundsUnionsGlyphExtents(t *testing.T) {
	l := Shape(Style{Face: fakeFace{}, PxPerEm: fixed.I(16)}, []rune("ab"))
	b := Bounds(l.Glyphs)
	if b.Min.X != 0 {
		t.Errorf("Min.X = %v, want 0", b.Min.X)
	}
	if want := fixed.I(32); b.Max.X != want {
		t.Errorf("Max.X = %v, want %v", b.Max.X, want)
	}
}
