// SPDX-License-Identifier: Unlicense OR MIT

// Package pathbuild consumes the declarative vector command stream
// (move/line/bezier/arc/ellipse/rectangle/stroke/fill/text/image) and
// maintains the implicit pen and path transform described in the
// component design, emitting points with their corner/join/end
// attribute flags.
//
// The command encoding mirrors gioui.org/op: a flat, ordered sequence
// of tagged records that a single linear pass (Assembler.Run) replays
// against the scratch arena. Unlike that package's byte-packed
// encoding (needed there to interleave with unrelated UI ops), this
// stream is a plain slice of tagged Go values, which is sufficient
// since the vector command stream is self-contained.
package pathbuild

import (
	"golang.org/x/image/math/fixed"

	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

// Op identifies the kind of a Command.
type Op uint8

const (
	OpStartPath Op = iota
	OpMove
	OpLine
	OpBezier
	OpQuadratic
	OpArc
	OpClosePath
	OpEllipse
	OpRectangle
	OpRoundedRectangle
	OpStrokePath
	OpFillPath
	OpImage
	OpText
	OpTextRange
)

// FillRule selects the polygon inside-ness test used by fill.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// CapType is the style of a stroke's subpath endpoints.
type CapType uint8

const (
	ButtCap CapType = iota
	RoundCap
	SquareCap
)

// JoinType is the style used to connect two stroke segments at an
// interior corner.
type JoinType uint8

const (
	MiterJoin JoinType = iota
	BevelJoin
	RoundJoinType
)

// StrokeStyle parameterizes StrokePath.
type StrokeStyle struct {
	Material   material.Ref
	Opacity    float32
	Cap        CapType
	Join       JoinType
	Width      float32
	MiterLimit float32
	DashArray  [4]float32
}

// Command is one entry in the vector command stream.
type Command struct {
	Op Op

	// StartPath
	Transform vecmath.Affine2D
	Simple    bool

	// Move / Line
	To vecmath.Vec2

	// Bezier
	Ctrl0, Ctrl1 vecmath.Vec2

	// Quadratic
	Ctrl vecmath.Vec2

	// Arc
	Radius    vecmath.Vec2
	Rotation  float32
	LargeArc  bool
	Clockwise bool

	// Ellipse
	Center vecmath.Vec2

	// Rectangle / RoundedRectangle
	Rect    vecmath.Rect
	Corners [4]float32 // SE, SW, NW, NE radii

	// StrokePath
	Stroke StrokeStyle

	// FillPath
	FillMaterial material.Ref
	FillOpacity  float32
	Rule         FillRule

	// Image
	TextureRef any
	ImageSize  vecmath.Vec2

	// Text / TextRange
	RangeCount int
	Range      TextRangeSpec
}

// TextRangeSpec describes one contiguous run of text sharing style.
type TextRangeSpec struct {
	Start, Count    int
	Font            any // external glyph-layout face/style reference
	PxPerEm         fixed.Int26_6
	FillMaterial    material.Ref
	OutlineMaterial material.Ref
	OutlineWidth    float32
	Embolden        float32
	Slant           float32
}

// Builder accumulates a Command stream in order, the way op.Ops
// accumulates a byte stream: append-only, replayed later in a single
// linear pass.
type Builder struct {
	cmds []Command
}

func (b *Builder) Reset() { b.cmds = b.cmds[:0] }

func (b *Builder) append(c Command) { b.cmds = append(b.cmds, c) }

func (b *Builder) Commands() []Command { return b.cmds }

// Raw appends a fully-formed Command verbatim, for callers (such as a
// saved-stream loader) that already have one assembled.
func (b *Builder) Raw(c Command) { b.append(c) }

func (b *Builder) StartPath(transform vecmath.Affine2D, simple bool) {
	b.append(Command{Op: OpStartPath, Transform: transform, Simple: simple})
}

func (b *Builder) Move(to vecmath.Vec2) { b.append(Command{Op: OpMove, To: to}) }

func (b *Builder) Line(to vecmath.Vec2) { b.append(Command{Op: OpLine, To: to}) }

func (b *Builder) Bezier(ctrl0, ctrl1, to vecmath.Vec2) {
	b.append(Command{Op: OpBezier, Ctrl0: ctrl0, Ctrl1: ctrl1, To: to})
}

func (b *Builder) Quadratic(ctrl, to vecmath.Vec2) {
	b.append(Command{Op: OpQuadratic, Ctrl: ctrl, To: to})
}

func (b *Builder) Arc(to, radius vecmath.Vec2, rotation float32, largeArc, clockwise bool) {
	b.append(Command{Op: OpArc, To: to, Radius: radius, Rotation: rotation, LargeArc: largeArc, Clockwise: clockwise})
}

func (b *Builder) ClosePath() { b.append(Command{Op: OpClosePath}) }

func (b *Builder) Ellipse(center, radius vecmath.Vec2) {
	b.append(Command{Op: OpEllipse, Center: center, Radius: radius})
}

func (b *Builder) Rectangle(r vecmath.Rect) {
	b.append(Command{Op: OpRectangle, Rect: r})
}

func (b *Builder) RoundedRectangle(r vecmath.Rect, se, sw, nw, ne float32) {
	b.append(Command{Op: OpRoundedRectangle, Rect: r, Corners: [4]float32{se, sw, nw, ne}})
}

func (b *Builder) StrokePath(style StrokeStyle) {
	b.append(Command{Op: OpStrokePath, Stroke: style})
}

func (b *Builder) FillPath(mat material.Ref, opacity float32, rule FillRule) {
	b.append(Command{Op: OpFillPath, FillMaterial: mat, FillOpacity: opacity, Rule: rule})
}

func (b *Builder) Image(texture any, rect vecmath.Rect) {
	b.append(Command{Op: OpImage, TextureRef: texture, Rect: rect})
}

func (b *Builder) Text(rangeCount int) {
	b.append(Command{Op: OpText, RangeCount: rangeCount})
}

func (b *Builder) TextRange(spec TextRangeSpec) {
	b.append(Command{Op: OpTextRange, Range: spec})
}
