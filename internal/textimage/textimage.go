// SPDX-License-Identifier: Unlicense OR MIT

// Package textimage emits the two per-piece record kinds the
// component design groups together (C6): axis-aligned textured quads
// for Image requests, and glyph-positioned draw-info records for Text
// requests. Neither rasterizes anything itself; both only populate
// the scratch arena's pools. Image quads go on to package piece to be
// coalesced into draw units; text draw-info records are used as they
// are and do not pass through package piece.
//
// Grounded on spec.md §4.6 directly (gio has no equivalent component:
// its text and image drawing both go through the general clip/paint op
// recording rather than a dedicated info-texture record), using
// glyphlayout as the external shaping boundary and
// golang.org/x/image/math/fixed for glyph positions.
package textimage

import (
	"golang.org/x/image/math/fixed"

	"github.com/vectorforge/tessel/errs"
	"github.com/vectorforge/tessel/glyphlayout"
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

// Mesh describes one emitted primitive's vertex/index extent, the same
// shape stroketess.Mesh and filltess.Mesh use so piece.Coalescer can
// treat all three uniformly.
type Mesh struct {
	Bounds                 vecmath.Rect
	VertexStart, VertexEnd int
	IndexStart, IndexEnd   int
	InfoIndex              int
}

// EmitImage validates img and appends 4 image-vertices (two triangles,
// texCoords (0,0),(0,1),(1,1),(1,0)) plus one image-info record.
func EmitImage(a *arena.Arena, img pathbuild.ImageSpec, transform vecmath.Affine2D, opacity float32) (Mesh, error) {
	if img.Texture == nil {
		return Mesh{}, errs.E("textimage.EmitImage", errs.InvalidArg)
	}
	if img.Rect.Dx() <= 0 || img.Rect.Dy() <= 0 {
		return Mesh{}, errs.E("textimage.EmitImage", errs.InvalidArg)
	}
	infoIndex := a.Infos.Append(arena.InfoRecord{
		Bounds:    img.Rect,
		Transform: transform,
		Kind:      arena.InfoShape,
		Opacity:   opacity,
	})
	corners := [4]vecmath.Vec2{
		{X: img.Rect.Min.X, Y: img.Rect.Min.Y},
		{X: img.Rect.Min.X, Y: img.Rect.Max.Y},
		{X: img.Rect.Max.X, Y: img.Rect.Max.Y},
		{X: img.Rect.Max.X, Y: img.Rect.Min.Y},
	}
	texCoords := [4][2]int16{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	base, verts := a.ImageVertices.Grow(4)
	for i, c := range corners {
		verts[i] = arena.ImageVertex{
			Position:   c,
			TexCoordX:  texCoords[i][0],
			TexCoordY:  texCoords[i][1],
			ShapeIndex: int16(infoIndex),
		}
	}
	idxBase, idxs := a.Indices.Grow(6)
	tri := [6]uint32{0, 1, 2, 0, 2, 3}
	for i, off := range tri {
		idxs[i] = uint32(base) + off
	}
	return Mesh{
		Bounds:      img.Rect,
		VertexStart: base,
		VertexEnd:   base + 4,
		IndexStart:  idxBase,
		IndexEnd:    idxBase + 6,
		InfoIndex:   infoIndex,
	}, nil
}

// RangeResult is one TextRange's resolved shader variant, material
// sources and info index, as also recorded in its TextDrawInfo.
type RangeResult struct {
	Variant       arena.ShaderVariant
	FillSource    arena.MaterialSource
	OutlineSource arena.MaterialSource
	InfoIndex     int
	LayoutIndex   int
	RangeStart    int
	RangeCount    int
}

// EmitText shapes text (the full text backing every range in ranges,
// indexed by each range's Start/Count) and emits one TextDrawInfo per
// range, reusing the previous one when style, piece key and material
// sources all match (spec.md §4.6 step 4).
func EmitText(a *arena.Arena, shared, local *material.Palette, ranges []pathbuild.TextRangeSpec, text []rune, transform vecmath.Affine2D) ([]RangeResult, error) {
	if len(ranges) == 0 {
		return nil, nil
	}
	results := make([]RangeResult, 0, len(ranges))
	var prev *RangeResult
	var prevStyle arena.TextStyle
	prevDrawInfoIndex := -1
	for _, rg := range ranges {
		face, _ := rg.Font.(glyphlayout.Face)
		pxPerEm := rg.PxPerEm
		if pxPerEm == 0 {
			pxPerEm = fixed.I(16)
		}
		layout := glyphlayout.Shape(glyphlayout.Style{Face: face, PxPerEm: pxPerEm}, sliceRange(text, rg.Start, rg.Count))
		layoutIndex := a.TextLayouts.Append(arena.TextLayoutHandle{Layout: layout})

		fillKind, fillIdx, fillSrc, fillOK := material.Resolve(shared, local, rg.FillMaterial)
		if !fillOK {
			return results, errs.E("textimage.EmitText", errs.InvalidArg)
		}
		var outlineIdx int
		var outlineSrc material.Source
		hasOutline := rg.OutlineMaterial.Valid()
		if hasOutline {
			var ok bool
			_, outlineIdx, outlineSrc, ok = material.Resolve(shared, local, rg.OutlineMaterial)
			if !ok {
				return results, errs.E("textimage.EmitText", errs.InvalidArg)
			}
		}
		variant := variantFor(fillKind, hasOutline)

		style := arena.TextStyle{
			Embolden:         rg.Embolden,
			Slant:            rg.Slant,
			OutlineThickness: rg.OutlineWidth,
			FillOpacity:      1,
			OutlineOpacity:   1,
		}
		bounds := glyphsBounds(layout.Glyphs, transform)
		infoIndex := a.Infos.Append(arena.InfoRecord{
			Bounds:    bounds,
			Transform: transform,
			Kind:      arena.InfoText,
			Style:     style,
		})

		result := RangeResult{
			Variant:       variant,
			FillSource:    toArenaSource(fillSrc),
			OutlineSource: toArenaSource(outlineSrc),
			InfoIndex:     infoIndex,
			LayoutIndex:   layoutIndex,
			RangeStart:    rg.Start,
			RangeCount:    rg.Count,
		}

		if prev != nil && samePieceKey(*prev, result) && style == prevStyle {
			a.TextDrawInfos.At(prevDrawInfoIndex).RangeCount += rg.Count
			results[len(results)-1].RangeCount += rg.Count
			continue
		}
		prevDrawInfoIndex = a.TextDrawInfos.Append(arena.TextDrawInfo{
			LayoutIndex:   layoutIndex,
			RangeStart:    rg.Start,
			RangeCount:    rg.Count,
			InfoIndex:     infoIndex,
			Variant:       variant,
			FillSource:    result.FillSource,
			FillIndex:     fillIdx,
			OutlineSource: result.OutlineSource,
			OutlineIndex:  outlineIdx,
		})
		results = append(results, result)
		prev = &results[len(results)-1]
		prevStyle = style
	}
	return results, nil
}

func samePieceKey(a, b RangeResult) bool {
	return a.Variant == b.Variant && a.FillSource == b.FillSource && a.OutlineSource == b.OutlineSource
}

func variantFor(fillKind material.Kind, hasOutline bool) arena.ShaderVariant {
	gradient := fillKind == material.KindLinearGradient || fillKind == material.KindRadialGradient
	switch {
	case gradient && hasOutline:
		return arena.TextGradientOutline
	case gradient:
		return arena.TextGradient
	case hasOutline:
		return arena.TextColorOutline
	default:
		return arena.TextColor
	}
}

func toArenaSource(s material.Source) arena.MaterialSource {
	if s == material.Local {
		return arena.LocalMaterial
	}
	return arena.SharedMaterial
}

func sliceRange(text []rune, start, count int) []rune {
	if start < 0 || start > len(text) {
		return nil
	}
	end := start + count
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

func glyphsBounds(glyphs []glyphlayout.Glyph, transform vecmath.Affine2D) vecmath.Rect {
	if len(glyphs) == 0 {
		return vecmath.Rect{}
	}
	b := glyphlayout.Bounds(glyphs)
	min := transform.Transform(vecmath.Pt(float32(b.Min.X)/64, float32(b.Min.Y)/64))
	max := transform.Transform(vecmath.Pt(float32(b.Max.X)/64, float32(b.Max.Y)/64))
	r := vecmath.Rect{Min: min, Max: min}
	return r.AddPoint(max)
}
