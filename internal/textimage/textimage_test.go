// SPDX-License-Identifier: Unlicense OR MIT

package textimage

import (
	"testing"

	tfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/vectorforge/tessel/glyphlayout"
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

type fakeFace struct{}

func (fakeFace) Font() *tfont.Face { return nil }

func (fakeFace) Shape(text []rune, pxPerEm fixed.Int26_6) []glyphlayout.Glyph {
	glyphs := make([]glyphlayout.Glyph, len(text))
	var x fixed.Int26_6
	for i := range text {
		glyphs[i] = glyphlayout.Glyph{
			X: x, Advance: pxPerEm, ClusterRune: i,
			Bounds: fixed.Rectangle26_6{Max: fixed.Point26_6{X: pxPerEm, Y: pxPerEm}},
		}
		x += pxPerEm
	}
	return glyphs
}

func palette() *material.Palette {
	p := material.NewPalette()
	p.AddColor(material.ColorMaterial{Name: "fg"})
	return p
}

func TestEmitImageProducesQuad(t *testing.T) {
	a := arena.New()
	mesh, err := EmitImage(a, pathbuild.ImageSpec{Texture: "tex", Rect: vecmath.Rect{Max: vecmath.Pt(10, 10)}}, vecmath.Affine2D{}, 1)
	if err != nil {
		t.Fatalf("EmitImage: %v", err)
	}
	if mesh.VertexEnd-mesh.VertexStart != 4 {
		t.Errorf("vertex count = %d, want 4", mesh.VertexEnd-mesh.VertexStart)
	}
	if mesh.IndexEnd-mesh.IndexStart != 6 {
		t.Errorf("index count = %d, want 6", mesh.IndexEnd-mesh.IndexStart)
	}
	if a.Infos.Len() != 1 {
		t.Errorf("Infos.Len() = %d, want 1", a.Infos.Len())
	}
}

func TestEmitImageRejectsNilTexture(t *testing.T) {
	a := arena.New()
	_, err := EmitImage(a, pathbuild.ImageSpec{Rect: vecmath.Rect{Max: vecmath.Pt(10, 10)}}, vecmath.Affine2D{}, 1)
	if err == nil {
		t.Fatal("expected an error for a nil texture")
	}
}

func TestEmitTextMergesMatchingRanges(t *testing.T) {
	a := arena.New()
	shared := palette()
	ranges := []pathbuild.TextRangeSpec{
		{Start: 0, Count: 3, Font: fakeFace{}, FillMaterial: material.Ref{Name: "fg"}},
		{Start: 3, Count: 2, Font: fakeFace{}, FillMaterial: material.Ref{Name: "fg"}},
	}
	results, err := EmitText(a, shared, nil, ranges, []rune("abcde"), vecmath.Affine2D{})
	if err != nil {
		t.Fatalf("EmitText: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (matching ranges merge)", len(results))
	}
	if results[0].RangeCount != 5 {
		t.Errorf("RangeCount = %d, want 5", results[0].RangeCount)
	}
	if a.TextDrawInfos.Len() != 1 {
		t.Errorf("TextDrawInfos.Len() = %d, want 1", a.TextDrawInfos.Len())
	}
}

func TestEmitTextUnknownMaterialFails(t *testing.T) {
	a := arena.New()
	ranges := []pathbuild.TextRangeSpec{
		{Start: 0, Count: 1, Font: fakeFace{}, FillMaterial: material.Ref{Name: "missing"}},
	}
	_, err := EmitText(a, palette(), nil, ranges, []rune("a"), vecmath.Affine2D{})
	if err == nil {
		t.Fatal("expected an error for an unresolved fill material")
	}
}

func TestEmitTextOutlineSelectsVariant(t *testing.T) {
	a := arena.New()
	shared := palette()
	shared.AddColor(material.ColorMaterial{Name: "outline"})
	ranges := []pathbuild.TextRangeSpec{
		{Start: 0, Count: 1, Font: fakeFace{}, FillMaterial: material.Ref{Name: "fg"}, OutlineMaterial: material.Ref{Name: "outline"}},
	}
	results, err := EmitText(a, shared, nil, ranges, []rune("a"), vecmath.Affine2D{})
	if err != nil {
		t.Fatalf("EmitText: %v", err)
	}
	if results[0].Variant != arena.TextColorOutline {
		t.Errorf("Variant = %v, want TextColorOutline", results[0].Variant)
	}
}
