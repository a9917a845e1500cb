// SPDX-License-Identifier: Unlicense OR MIT

package arena

import "github.com/vectorforge/tessel/vecmath"

func unsafeSizeof(v any) uintptr {
	switch v.(type) {
	case byte:
		return 1
	case uint32:
		return 4
	default:
		return 64
	}
}

// PointFlags classifies a path point for downstream tessellation.
type PointFlags uint8

const (
	// Normal marks an interior, non-corner point (e.g. a curve sample).
	Normal PointFlags = 0
	// Corner marks a point that should receive a sharp join or cap,
	// such as a line endpoint or curve endpoint.
	Corner PointFlags = 1 << iota
	// JoinStart marks the first point of a closed subpath, so the
	// stroker can join its start back to its end instead of capping.
	JoinStart
	// End marks the last point of a subpath.
	End
)

// Point is a single path vertex with its classification flags.
type Point struct {
	Position vecmath.Vec2
	Flags    PointFlags
}

// ShapeVertex is the per-vertex record emitted for strokes and fills.
// Distance carries stroke distance-along-subpath (X) and the
// subpath's total length (Y), used by dash evaluation.
type ShapeVertex struct {
	Position      vecmath.Vec2
	Distance      vecmath.Vec2
	ShapeIndex    uint16
	MaterialIndex uint16
}

// ImageVertex is the per-vertex record emitted for textured quads.
type ImageVertex struct {
	Position   vecmath.Vec2
	TexCoordX  int16
	TexCoordY  int16
	ShapeIndex int16
	_          int16 // padding, matches the 2-byte-aligned wire record
}

// InfoRecord is one shape/text info slot, packed by package infotex
// into one 64-byte texel row (four RGBA32F texels) of an info texture
// of width 4: floats 0-3 carry bounds and floats 4-9 the 2x3 affine
// transform; the remaining floats carry either (opacity, dashArray)
// for shapes or (style, fill/outline opacity) for text, selected by
// Kind.
type InfoRecord struct {
	Bounds    vecmath.Rect
	Transform vecmath.Affine2D
	Kind      InfoKind
	Opacity   float32
	DashArray [4]float32
	Style     TextStyle
}

// InfoKind selects which of InfoRecord's trailing fields are valid.
type InfoKind uint8

const (
	InfoShape InfoKind = iota
	InfoText
)

// TextStyle carries the embolden/slant/outline/antialias parameters
// plus fill and outline opacity for a text info record.
type TextStyle struct {
	Embolden         float32
	Slant            float32
	OutlineThickness float32
	AntiAlias        float32
	FillOpacity      float32
	OutlineOpacity   float32
}

// ShaderVariant identifies the draw program a piece is rendered with.
type ShaderVariant uint8

const (
	FillColor ShaderVariant = iota
	FillLinearGradient
	FillRadialGradient
	Line
	Image
	TextColor
	TextColorOutline
	TextGradient
	TextGradientOutline
)

// MaterialSource distinguishes a material looked up from the
// image-local palette from one in the shared palette.
type MaterialSource uint8

const (
	SharedMaterial MaterialSource = iota
	LocalMaterial
)

// PieceKey is the grouping key the coalescer uses to decide whether a
// new emission can extend the last piece.
type PieceKey struct {
	Variant         ShaderVariant
	Texture         uint32 // 0 means "no texture"
	MaterialSource  MaterialSource
	OutlineSource   MaterialSource
	InfoTextureSlot uint32
}

// Piece is a contiguous draw unit: a run of indices sharing a key.
type Piece struct {
	Key          PieceKey
	VertexOffset uint32 // base subtracted from absolute vertex indices
	IndexStart   int
	IndexCount   int
}

// Loop is a simple (non-self-intersecting) polygon loop produced by
// the self-intersection simplifier ahead of triangulation.
type Loop struct {
	PointStart int
	PointCount int
}

// TextLayoutHandle references a laid-out glyph run owned by the
// scratch arena until transferred to a finished vector image.
type TextLayoutHandle struct {
	Layout any // external glyph-layout result; see package glyphlayout
}

// TextDrawInfo records one contiguous text range's rendering
// parameters, reused across ranges that share style, piece key and
// material sources.
type TextDrawInfo struct {
	LayoutIndex   int
	RangeStart    int
	RangeCount    int
	InfoIndex     int
	Variant       ShaderVariant
	FillSource    MaterialSource
	FillIndex     int
	OutlineSource MaterialSource
	OutlineIndex  int
}
