// SPDX-License-Identifier: Unlicense OR MIT

// Package curve adaptively flattens cubic and quadratic Bézier
// curves and elliptical arcs into polylines bounded by a pixel-error
// tolerance, for consumption by package pathbuild.
package curve

import (
	"math"

	"github.com/vectorforge/tessel/vecmath"
)

// PixelError is the chordal error tolerance applied to Bézier
// subdivision, expressed as a fraction of pixelSize (a quarter
// pixel).
const PixelError = 0.25

// MaxDepth bounds the recursion depth of Bézier subdivision.
const MaxDepth = 10

// Emit is called once per produced point, in curve order, excluding
// the curve's start point (which the caller already holds as the
// current pen position). last is true for the final point.
type Emit func(p vecmath.Vec2, last bool)

// Cubic adaptively flattens the cubic Bézier (p0, p1, p2, p3) to a
// chordal error of pixelSize*PixelError, emitting interior points as
// Normal and the final point as Corner via emit's last flag.
func Cubic(p0, p1, p2, p3 vecmath.Vec2, pixelSize float32, emit Emit) {
	tol := pixelSize * PixelError
	subdivideCubic(p0, p1, p2, p3, tol, 0, emit)
	emit(p3, true)
}

func subdivideCubic(p0, p1, p2, p3 vecmath.Vec2, tol float32, depth int, emit Emit) {
	if depth >= MaxDepth || cubicFlatEnough(p0, p1, p2, p3, tol) {
		return
	}
	// De Casteljau split at t=0.5.
	p01 := mid(p0, p1)
	p12 := mid(p1, p2)
	p23 := mid(p2, p3)
	p012 := mid(p01, p12)
	p123 := mid(p12, p23)
	p0123 := mid(p012, p123)

	subdivideCubic(p0, p01, p012, p0123, tol, depth+1, emit)
	emit(p0123, false)
	subdivideCubic(p0123, p123, p23, p3, tol, depth+1, emit)
}

// cubicFlatEnough reports whether the chordal deviation of the
// control points from the p0-p3 baseline is within tol.
func cubicFlatEnough(p0, p1, p2, p3 vecmath.Vec2, tol float32) bool {
	d1 := pointLineDistance(p1, p0, p3)
	d2 := pointLineDistance(p2, p0, p3)
	return d1 <= tol && d2 <= tol
}

func pointLineDistance(p, a, b vecmath.Vec2) float32 {
	ab := b.Sub(a)
	len := ab.Len()
	if len == 0 {
		return p.Sub(a).Len()
	}
	// |ab x ap| / |ab|
	ap := p.Sub(a)
	return float32(math.Abs(float64(ab.Cross(ap)))) / len
}

func mid(a, b vecmath.Vec2) vecmath.Vec2 {
	return a.Add(b).Mul(0.5)
}

// Quadratic adaptively flattens the quadratic Bézier (p0, ctrl, p1) by
// elevating it to an equivalent cubic and delegating to Cubic.
func Quadratic(p0, ctrl, p1 vecmath.Vec2, pixelSize float32, emit Emit) {
	c1 := p0.Add(ctrl.Sub(p0).Mul(2.0 / 3.0))
	c2 := p1.Add(ctrl.Sub(p1).Mul(2.0 / 3.0))
	Cubic(p0, c1, c2, p1, pixelSize, emit)
}

// PixelTheta returns the per-sample angular step that keeps a
// circular arc of the given radius within err of its chord, per
// pixelTheta = sqrt(2*err/radius).
func PixelTheta(pixelSize, radius float32) float32 {
	if radius <= 0 {
		return math.Pi
	}
	return float32(math.Sqrt(2 * float64(pixelSize) / float64(radius)))
}
