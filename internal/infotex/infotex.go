// SPDX-License-Identifier: Unlicense OR MIT

// Package infotex packs the scratch arena's shape/text info records
// into one or more R32G32B32A32-float textures of fixed width 4,
// sampled by the vertex shader by (texture index, row), the texture
// index being infoIndex/1024 and the row infoIndex%1024.
package infotex

import "github.com/vectorforge/tessel/internal/arena"

// Width is the fixed texel width of every info texture.
const Width = 4

// MaxRecordsPerTexture bounds how many info records (rows) a single
// texture holds before a new texture is started.
const MaxRecordsPerTexture = 1024

// Texture is one packed info texture: Width*Height texels, each
// texel four float32 components, row-major.
type Texture struct {
	Width, Height int
	Data          []float32
}

// TextureIndex returns which texture infoIndex belongs to.
func TextureIndex(infoIndex int) int { return infoIndex / MaxRecordsPerTexture }

// RowInTexture returns infoIndex's row within its texture.
func RowInTexture(infoIndex int) int { return infoIndex % MaxRecordsPerTexture }

// Pack splits records into chunks of at most MaxRecordsPerTexture and
// packs each chunk into a Texture whose height is the next power of
// two ≥ the chunk's record count (minimum 1).
func Pack(records []arena.InfoRecord) []Texture {
	if len(records) == 0 {
		return nil
	}
	var textures []Texture
	for start := 0; start < len(records); start += MaxRecordsPerTexture {
		end := start + MaxRecordsPerTexture
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]
		h := nextPow2(len(chunk))
		data := make([]float32, Width*h*4)
		for i, r := range chunk {
			packRow(data[i*Width*4:i*Width*4+Width*4], r)
		}
		textures = append(textures, Texture{Width: Width, Height: h, Data: data})
	}
	return textures
}

// packRow lays out one InfoRecord's 16 floats across width's 4 RGBA32F
// texels: bounds (4), the path transform's six elements (6), then
// either (opacity, dashArray[4]) for a shape record or
// (style's four fields, fillOpacity, outlineOpacity) for a text
// record, selected by r.Kind.
func packRow(row []float32, r arena.InfoRecord) {
	row[0], row[1] = r.Bounds.Min.X, r.Bounds.Min.Y
	row[2], row[3] = r.Bounds.Max.X, r.Bounds.Max.Y
	sx, hx, ox, hy, sy, oy := r.Transform.Elems()
	row[4], row[5], row[6] = sx, hx, ox
	row[7], row[8], row[9] = hy, sy, oy
	switch r.Kind {
	case arena.InfoText:
		row[10] = r.Style.Embolden
		row[11] = r.Style.Slant
		row[12] = r.Style.OutlineThickness
		row[13] = r.Style.AntiAlias
		row[14] = r.Style.FillOpacity
		row[15] = r.Style.OutlineOpacity
	default:
		row[10] = r.Opacity
		row[11] = r.DashArray[0]
		row[12] = r.DashArray[1]
		row[13] = r.DashArray[2]
		row[14] = r.DashArray[3]
		row[15] = 0
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	if n > MaxRecordsPerTexture {
		n = MaxRecordsPerTexture
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
