// SPDX-License-Identifier: Unlicense OR MIT

package pathbuild

import (
	"github.com/vectorforge/tessel/errs"
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/curve"
	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

// RequestKind identifies which downstream tessellator a Request feeds.
type RequestKind uint8

const (
	RequestStroke RequestKind = iota
	RequestFill
	RequestImage
	RequestText
)

// Request is one fully-assembled unit of work handed to C4/C5/C6: a
// run of loops already in the arena's Points pool, plus the style
// that consumed them.
type Request struct {
	Kind      RequestKind
	Transform vecmath.Affine2D
	PixelSize float32

	// LoopIndices names the loops (by index into arena.Arena.Loops)
	// that belong to this request, in path order.
	LoopIndices []int

	Stroke StrokeStyle

	FillMaterial material.Ref
	FillOpacity  float32
	FillRule     FillRule
	FillSimple   bool

	Image ImageSpec
	Text  []TextRangeSpec
}

// ImageSpec carries Image's parameters.
type ImageSpec struct {
	Texture any
	Rect    vecmath.Rect
}

// Assembler replays a Command stream against a scratch arena,
// maintaining the implicit pen, current path transform and simple
// flag, and accumulating points into loops as described for the path
// assembler. Run is a single linear pass; it does not retain state
// from a previous call beyond what's still referenced by the arena.
type Assembler struct {
	arena         *arena.Arena
	basePixelSize float32

	inPath        bool
	pathSimple    bool
	pathTransform vecmath.Affine2D
	pixelSize     float32 // basePixelSize scaled by the path transform

	loopOpen  bool // a subpath is currently being accumulated
	loopStart int  // index into arena.Points where the current loop begins

	pathLoops []int // loop indices (into arena.Loops) opened since StartPath
}

// NewAssembler returns an Assembler writing into a, using
// basePixelSize as the unscaled curve-flattening error budget.
func NewAssembler(a *arena.Arena, basePixelSize float32) *Assembler {
	return &Assembler{arena: a, basePixelSize: basePixelSize}
}

// Run replays cmds in order and returns one Request per
// StrokePath/FillPath/Image/Text command encountered.
func (as *Assembler) Run(cmds []Command) ([]Request, error) {
	var reqs []Request
	for _, c := range cmds {
		switch c.Op {
		case OpStartPath:
			as.startPath(c.Transform, c.Simple)
		case OpMove:
			if err := as.requireInPath("pathbuild.Move"); err != nil {
				return reqs, err
			}
			as.move(c.To)
		case OpLine:
			if err := as.requireCurrentPoint("pathbuild.Line"); err != nil {
				return reqs, err
			}
			as.emit(c.To, arena.Normal)
		case OpBezier:
			if err := as.requireCurrentPoint("pathbuild.Bezier"); err != nil {
				return reqs, err
			}
			p0 := as.lastPoint()
			curve.Cubic(p0, c.Ctrl0, c.Ctrl1, c.To, as.pixelSize, as.curveEmit())
		case OpQuadratic:
			if err := as.requireCurrentPoint("pathbuild.Quadratic"); err != nil {
				return reqs, err
			}
			p0 := as.lastPoint()
			curve.Quadratic(p0, c.Ctrl, c.To, as.pixelSize, as.curveEmit())
		case OpArc:
			if err := as.requireCurrentPoint("pathbuild.Arc"); err != nil {
				return reqs, err
			}
			p0 := as.lastPoint()
			curve.Arc(p0, c.To, c.Radius.X, c.Radius.Y, c.Rotation, c.LargeArc, c.Clockwise, as.pixelSize, as.curveEmit())
		case OpClosePath:
			if err := as.requireCurrentPoint("pathbuild.ClosePath"); err != nil {
				return reqs, err
			}
			as.closePath()
		case OpEllipse:
			if err := as.requireInPath("pathbuild.Ellipse"); err != nil {
				return reqs, err
			}
			as.ellipse(c.Center, c.Radius)
		case OpRectangle:
			if err := as.requireInPath("pathbuild.Rectangle"); err != nil {
				return reqs, err
			}
			as.rectangle(c.Rect)
		case OpRoundedRectangle:
			if err := as.requireInPath("pathbuild.RoundedRectangle"); err != nil {
				return reqs, err
			}
			as.roundedRectangle(c.Rect, c.Corners)
		case OpStrokePath:
			if err := as.requireInPath("pathbuild.StrokePath"); err != nil {
				return reqs, err
			}
			as.finishLoop()
			reqs = append(reqs, Request{
				Kind:        RequestStroke,
				Transform:   as.pathTransform,
				PixelSize:   as.pixelSize,
				LoopIndices: as.takeLoops(),
				Stroke:      c.Stroke,
			})
		case OpFillPath:
			if err := as.requireInPath("pathbuild.FillPath"); err != nil {
				return reqs, err
			}
			as.finishLoop()
			reqs = append(reqs, Request{
				Kind:         RequestFill,
				Transform:    as.pathTransform,
				PixelSize:    as.pixelSize,
				LoopIndices:  as.takeLoops(),
				FillMaterial: c.FillMaterial,
				FillOpacity:  c.FillOpacity,
				FillRule:     c.Rule,
				FillSimple:   as.pathSimple,
			})
		case OpImage:
			reqs = append(reqs, Request{
				Kind:      RequestImage,
				Transform: as.pathTransform,
				Image:     ImageSpec{Texture: c.TextureRef, Rect: c.Rect},
			})
		case OpText:
			// Ranges accumulate on subsequent OpTextRange commands;
			// the Text marker itself just reserves the slot order.
			reqs = append(reqs, Request{Kind: RequestText, Transform: as.pathTransform})
		case OpTextRange:
			if len(reqs) == 0 || reqs[len(reqs)-1].Kind != RequestText {
				return reqs, errs.E("pathbuild.TextRange", errs.InvalidArg)
			}
			reqs[len(reqs)-1].Text = append(reqs[len(reqs)-1].Text, c.Range)
		}
	}
	return reqs, nil
}

func (as *Assembler) requireInPath(op string) error {
	if !as.inPath {
		return errs.E(op, errs.InvalidArg)
	}
	return nil
}

func (as *Assembler) requireCurrentPoint(op string) error {
	if !as.inPath || !as.loopOpen {
		return errs.E(op, errs.InvalidArg)
	}
	return nil
}

func (as *Assembler) startPath(transform vecmath.Affine2D, simple bool) {
	as.inPath = true
	as.pathSimple = simple
	as.pathTransform = transform
	as.pixelSize = as.basePixelSize * transform.MaxScale()
	as.loopOpen = false
	as.pathLoops = nil
}

// move starts a new subpath, closing out the previous one (marking
// its last point End) if one was open.
func (as *Assembler) move(to vecmath.Vec2) {
	as.finishLoop()
	as.loopStart = as.arena.Points.Len()
	as.arena.Points.Append(arena.Point{Position: to, Flags: arena.Normal})
	as.loopOpen = true
}

// emit appends a point to the current subpath, collapsing it into the
// previous point if within the duplicate-point tolerance.
func (as *Assembler) emit(p vecmath.Vec2, flags arena.PointFlags) {
	n := as.arena.Points.Len()
	if n > as.loopStart {
		last := as.arena.Points.At(n - 1)
		if vecmath.Eq(last.Position, p) {
			last.Flags |= flags
			return
		}
	}
	as.arena.Points.Append(arena.Point{Position: p, Flags: flags})
}

func (as *Assembler) curveEmit() curve.Emit {
	return func(p vecmath.Vec2, last bool) {
		flags := arena.Normal
		if last {
			flags = arena.Corner
		}
		as.emit(p, flags)
	}
}

func (as *Assembler) lastPoint() vecmath.Vec2 {
	n := as.arena.Points.Len()
	if n == 0 {
		return vecmath.Vec2{}
	}
	return as.arena.Points.At(n - 1).Position
}

// closePath emits a line back to the subpath's first point, tagging
// that point JoinStart and the emitted closing point End.
func (as *Assembler) closePath() {
	start := as.arena.Points.At(as.loopStart).Position
	as.arena.Points.At(as.loopStart).Flags |= arena.JoinStart
	as.emit(start, arena.End)
	as.finishLoop()
}

// finishLoop marks the current subpath's last point End (if it
// wasn't already from ClosePath) and records the loop's extent.
func (as *Assembler) finishLoop() {
	if !as.loopOpen {
		return
	}
	n := as.arena.Points.Len()
	if n > as.loopStart {
		as.arena.Points.At(n - 1).Flags |= arena.End
	}
	idx := as.arena.Loops.Append(arena.Loop{PointStart: as.loopStart, PointCount: n - as.loopStart})
	as.pathLoops = append(as.pathLoops, idx)
	as.loopOpen = false
}

func (as *Assembler) takeLoops() []int {
	l := as.pathLoops
	as.pathLoops = nil
	return l
}

func (as *Assembler) ellipse(center, radius vecmath.Vec2) {
	as.move(vecmath.Pt(center.X+radius.X, center.Y))
	quarter := func(from, to vecmath.Vec2) {
		curve.Arc(from, to, radius.X, radius.Y, 0, false, true, as.pixelSize, func(p vecmath.Vec2, last bool) {
			flags := arena.Normal
			if last {
				flags = arena.Corner
			}
			as.emit(p, flags)
		})
	}
	quarter(vecmath.Pt(center.X+radius.X, center.Y), vecmath.Pt(center.X, center.Y+radius.Y))
	quarter(vecmath.Pt(center.X, center.Y+radius.Y), vecmath.Pt(center.X-radius.X, center.Y))
	quarter(vecmath.Pt(center.X-radius.X, center.Y), vecmath.Pt(center.X, center.Y-radius.Y))
	quarter(vecmath.Pt(center.X, center.Y-radius.Y), vecmath.Pt(center.X+radius.X, center.Y))
	as.closePath()
}

func (as *Assembler) rectangle(r vecmath.Rect) {
	as.move(vecmath.Pt(r.Min.X, r.Min.Y))
	as.emit(vecmath.Pt(r.Max.X, r.Min.Y), arena.Corner)
	as.emit(vecmath.Pt(r.Max.X, r.Max.Y), arena.Corner)
	as.emit(vecmath.Pt(r.Min.X, r.Max.Y), arena.Corner)
	as.closePath()
}

// roundedRectangle builds four quarter-arcs for corners whose radius
// is positive, connected by straight edges; a zero-length edge (the
// radius equals the half-extent on that side) collapses because emit
// merges a point equal to the previous one into it.
func (as *Assembler) roundedRectangle(r vecmath.Rect, radii [4]float32) {
	se, sw, nw, ne := radii[0], radii[1], radii[2], radii[3]
	hw, hh := r.Dx()/2, r.Dy()/2
	clamp := func(rad, half float32) float32 {
		if rad > half {
			return half
		}
		return rad
	}
	se, sw, nw, ne = clamp(se, hw), clamp(sw, hw), clamp(nw, hw), clamp(ne, hw)
	se, sw, nw, ne = min32(se, hh), min32(sw, hh), min32(nw, hh), min32(ne, hh)

	corner := func(cx, cy, rad float32, from, to vecmath.Vec2) {
		if rad <= 0 {
			as.emit(from, arena.Corner)
			return
		}
		curve.Arc(from, to, rad, rad, 0, false, true, as.pixelSize, func(p vecmath.Vec2, last bool) {
			flags := arena.Normal
			if last {
				flags = arena.Corner
			}
			as.emit(p, flags)
		})
	}

	as.move(vecmath.Pt(r.Min.X+nw, r.Min.Y))
	as.emit(vecmath.Pt(r.Max.X-ne, r.Min.Y), arena.Corner)
	corner(r.Max.X-ne, r.Min.Y+ne, ne, vecmath.Pt(r.Max.X-ne, r.Min.Y), vecmath.Pt(r.Max.X, r.Min.Y+ne))
	as.emit(vecmath.Pt(r.Max.X, r.Max.Y-se), arena.Corner)
	corner(r.Max.X-se, r.Max.Y-se, se, vecmath.Pt(r.Max.X, r.Max.Y-se), vecmath.Pt(r.Max.X-se, r.Max.Y))
	as.emit(vecmath.Pt(r.Min.X+sw, r.Max.Y), arena.Corner)
	corner(r.Min.X+sw, r.Max.Y-sw, sw, vecmath.Pt(r.Min.X+sw, r.Max.Y), vecmath.Pt(r.Min.X, r.Max.Y-sw))
	as.emit(vecmath.Pt(r.Min.X, r.Min.Y+nw), arena.Corner)
	corner(r.Min.X+nw, r.Min.Y+nw, nw, vecmath.Pt(r.Min.X, r.Min.Y+nw), vecmath.Pt(r.Min.X+nw, r.Min.Y))
	as.closePath()
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
