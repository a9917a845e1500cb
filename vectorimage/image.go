// SPDX-License-Identifier: Unlicense OR MIT

// Package vectorimage is the top-level builder (and binary format) that
// wires the scratch-arena components — path assembler, stroke and fill
// tessellators, text/image emitter, piece coalescer and info-texture
// packer — into one finished VectorImage, the way gio's op.Ops is
// recorded once and then frozen into a single immutable frame.
package vectorimage

import (
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/infotex"
	"github.com/vectorforge/tessel/internal/rawbytes"
	"github.com/vectorforge/tessel/material"
)

// VectorImage is the finished, immutable output of a Builder: GPU-ready
// vertex and index buffers, info records packed into textures, text
// draw-info records, and the local material palette the image's
// commands may have referenced alongside a caller-supplied shared one.
type VectorImage struct {
	Width, Height float32
	SRGB          bool

	ShapeVertices []arena.ShapeVertex
	ImageVertices []arena.ImageVertex
	Indices       []uint32
	Infos         []arena.InfoRecord
	Pieces        []arena.Piece

	TextLayouts   []arena.TextLayoutHandle
	TextDrawInfos []arena.TextDrawInfo

	InfoTextures []infotex.Texture

	Local *material.Palette
}

// ShapeVertexBytes views ShapeVertices as raw bytes, ready for a
// driver's vertex-buffer upload call.
func (v *VectorImage) ShapeVertexBytes() []byte { return rawbytes.View(v.ShapeVertices) }

// ImageVertexBytes views ImageVertices as raw bytes.
func (v *VectorImage) ImageVertexBytes() []byte { return rawbytes.View(v.ImageVertices) }

// IndexBytes views Indices as raw bytes, ready for a driver's
// index-buffer upload call.
func (v *VectorImage) IndexBytes() []byte { return rawbytes.View(v.Indices) }

// InfoTextureBytes views the info texture at index i's Data as raw
// bytes, ready for a driver's texture-upload call.
func (v *VectorImage) InfoTextureBytes(i int) []byte { return rawbytes.View(v.InfoTextures[i].Data) }
