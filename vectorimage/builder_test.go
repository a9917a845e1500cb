// SPDX-License-Identifier: Unlicense OR MIT

package vectorimage

import (
	"image/color"
	"testing"

	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

func redPalette() *material.Palette {
	p := material.NewPalette()
	p.AddColor(material.ColorMaterial{Name: "red", Color: color.RGBA{R: 255, A: 255}})
	return p
}

// TestBuilderFilledTriangle mirrors the filled-triangle scenario: a
// single closed triangle filled with a flat color should coalesce into
// one FillColor piece over 3 vertices and 3 indices.
func TestBuilderFilledTriangle(t *testing.T) {
	b := NewBuilder(1)
	b.Path.StartPath(vecmath.Identity(), true)
	b.Path.Move(vecmath.Pt(0, 0))
	b.Path.Line(vecmath.Pt(10, 0))
	b.Path.Line(vecmath.Pt(10, 10))
	b.Path.ClosePath()
	b.Path.FillPath(material.Ref{Name: "red"}, 1, pathbuild.NonZero)

	shared := redPalette()
	img, err := b.Build(shared, nil, 10, 10, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(img.ShapeVertices) != 3 {
		t.Fatalf("ShapeVertices = %d, want 3", len(img.ShapeVertices))
	}
	if len(img.Indices) != 3 {
		t.Fatalf("Indices = %d, want 3", len(img.Indices))
	}
	if len(img.Pieces) != 1 {
		t.Fatalf("Pieces = %d, want 1", len(img.Pieces))
	}
	piece := img.Pieces[0]
	if piece.Key.Variant != arena.FillColor {
		t.Errorf("Variant = %v, want FillColor", piece.Key.Variant)
	}
	if piece.Key.MaterialSource != arena.SharedMaterial {
		t.Errorf("MaterialSource = %v, want SharedMaterial", piece.Key.MaterialSource)
	}
	if len(img.Infos) != 1 {
		t.Fatalf("Infos = %d, want 1", len(img.Infos))
	}
	wantBounds := vecmath.Rect{Min: vecmath.Pt(0, 0), Max: vecmath.Pt(10, 10)}
	if img.Infos[0].Bounds != wantBounds {
		t.Errorf("Bounds = %+v, want %+v", img.Infos[0].Bounds, wantBounds)
	}
}

// TestBuilderStrokeUsesLineVariant checks that a stroked path always
// coalesces under the single Line shader variant, and that its dash
// array and opacity land on the info record.
func TestBuilderStrokeUsesLineVariant(t *testing.T) {
	b := NewBuilder(1)
	b.Path.StartPath(vecmath.Identity(), true)
	b.Path.Move(vecmath.Pt(0, 0))
	b.Path.Line(vecmath.Pt(10, 0))
	style := pathbuild.StrokeStyle{
		Material:  material.Ref{Name: "red"},
		Opacity:   1,
		Width:     2,
		DashArray: [4]float32{4, 2, 0, 0},
	}
	b.Path.StrokePath(style)

	shared := redPalette()
	img, err := b.Build(shared, nil, 10, 10, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(img.Pieces) == 0 {
		t.Fatal("Pieces is empty")
	}
	for _, p := range img.Pieces {
		if p.Key.Variant != arena.Line {
			t.Errorf("Variant = %v, want Line", p.Key.Variant)
		}
	}
	if len(img.Infos) == 0 {
		t.Fatal("Infos is empty")
	}
	if img.Infos[0].DashArray != style.DashArray {
		t.Errorf("DashArray = %v, want %v", img.Infos[0].DashArray, style.DashArray)
	}
}

// TestBuilderImageTextureStable checks that two Image commands
// referencing the same texture handle coalesce into pieces sharing the
// same PieceKey.Texture id, while a different handle gets a distinct
// id.
func TestBuilderImageTextureStable(t *testing.T) {
	b := NewBuilder(1)
	texA := new(int)
	texB := new(int)

	b.Path.StartPath(vecmath.Identity(), true)
	b.Path.Image(texA, vecmath.Rect{Min: vecmath.Pt(0, 0), Max: vecmath.Pt(4, 4)})
	b.Path.Image(texA, vecmath.Rect{Min: vecmath.Pt(4, 0), Max: vecmath.Pt(8, 4)})
	b.Path.Image(texB, vecmath.Rect{Min: vecmath.Pt(0, 4), Max: vecmath.Pt(4, 8)})

	img, err := b.Build(nil, nil, 8, 8, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	imagePieces := 0
	for _, p := range img.Pieces {
		if p.Key.Variant == arena.Image {
			imagePieces++
		}
	}
	if imagePieces == 0 {
		t.Fatal("no Image-variant pieces were produced")
	}

	idA, ok := b.textureIDs[texA]
	if !ok || idA == 0 {
		t.Fatalf("texA id = %d, ok=%v", idA, ok)
	}
	idB, ok := b.textureIDs[texB]
	if !ok || idB == 0 {
		t.Fatalf("texB id = %d, ok=%v", idB, ok)
	}
	if idA == idB {
		t.Errorf("texA and texB got the same id %d", idA)
	}
}

// TestBuilderTextProducesNoPieces checks that a text request populates
// TextLayouts/TextDrawInfos without going through the piece
// coalescer — text rendering bypasses the vertex/index pipeline
// entirely.
func TestBuilderTextProducesNoPieces(t *testing.T) {
	b := NewBuilder(1)
	b.Path.StartPath(vecmath.Identity(), true)
	shared := material.NewPalette()
	shared.AddColor(material.ColorMaterial{Name: "ink", Color: color.RGBA{A: 255}})
	font := new(int)
	b.Text([]rune("hi"), []pathbuild.TextRangeSpec{
		{Start: 0, Count: 2, Font: font, FillMaterial: material.Ref{Name: "ink"}},
	})

	img, err := b.Build(shared, nil, 10, 10, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(img.Pieces) != 0 {
		t.Errorf("Pieces = %d, want 0 (text bypasses the coalescer)", len(img.Pieces))
	}
	if len(img.TextDrawInfos) == 0 {
		t.Error("TextDrawInfos is empty, want at least one entry")
	}
}

func TestBuilderResetClearsState(t *testing.T) {
	b := NewBuilder(1)
	b.Path.StartPath(vecmath.Identity(), true)
	b.Path.Move(vecmath.Pt(0, 0))
	b.Path.Line(vecmath.Pt(1, 0))
	b.Path.Line(vecmath.Pt(1, 1))
	b.Path.ClosePath()
	b.Path.FillPath(material.Ref{Name: "red"}, 1, pathbuild.NonZero)
	_, _ = b.Build(redPalette(), nil, 1, 1, false)

	b.Reset()
	if len(b.Path.Commands()) != 0 {
		t.Errorf("Commands after Reset = %d, want 0", len(b.Path.Commands()))
	}
	if b.Arena().ShapeVertices.Len() != 0 {
		t.Errorf("ShapeVertices after Reset = %d, want 0", b.Arena().ShapeVertices.Len())
	}
	if len(b.textureIDs) != 0 {
		t.Errorf("textureIDs after Reset = %d, want 0", len(b.textureIDs))
	}
}
