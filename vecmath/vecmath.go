// SPDX-License-Identifier: Unlicense OR MIT

// Package vecmath provides the float32 vector, rectangle and affine
// transform types shared across the tessellator and command buffer
// packages.
//
// The coordinate space has its origin in the upper-left corner with
// the axes extending right and down, matching the image-space
// convention used throughout the rest of the module.
package vecmath

import "math"

// Vec2 is a two dimensional point or vector.
type Vec2 struct {
	X, Y float32
}

// Pt is a shorthand for constructing a Vec2.
func Pt(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (p Vec2) Add(q Vec2) Vec2 { return Vec2{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Vec2) Sub(q Vec2) Vec2 { return Vec2{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Vec2) Mul(s float32) Vec2 { return Vec2{X: p.X * s, Y: p.Y * s} }

// Dot returns the dot product of p and q.
func (p Vec2) Dot(q Vec2) float32 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z-component of the 3D cross product of p and q,
// i.e. the perpendicular dot product.
func (p Vec2) Cross(q Vec2) float32 { return p.X*q.Y - p.Y*q.X }

// Len returns the Euclidean length of p.
func (p Vec2) Len() float32 { return float32(math.Hypot(float64(p.X), float64(p.Y))) }

// Normalize returns p scaled to length l, or the zero vector if p is
// (numerically) already that length or the zero vector.
func (p Vec2) Normalize(l float32) Vec2 {
	d := p.Len()
	if d == 0 {
		return Vec2{}
	}
	if float64(l) != 0 && math.Abs(float64(d)-float64(l)) < 1e-10 {
		return Vec2{}
	}
	return p.Mul(l / d)
}

// Rot90CW rotates p by 90 degrees clockwise as seen with the Y axis
// pointing up: it turns +X into -Y, which in the upper-left-origin
// space is a counter-clockwise turn on screen.
func Rot90CW(p Vec2) Vec2 { return Vec2{X: p.Y, Y: -p.X} }

// Rot90CCW rotates p by 90 degrees counter-clockwise as seen with the
// Y axis pointing up: it turns +X into +Y, which in the
// upper-left-origin space is a clockwise turn on screen.
func Rot90CCW(p Vec2) Vec2 { return Vec2{X: -p.Y, Y: p.X} }

// Eq reports whether a and b are equal within an absolute tolerance
// of 1e-5, the collapse distance used when merging duplicate path
// points (see package pathbuild).
func Eq(a, b Vec2) bool {
	const eps = 1e-5
	return math.Abs(float64(a.X-b.X)) < eps && math.Abs(float64(a.Y-b.Y)) < eps
}

// Rect is an axis aligned rectangle.
type Rect struct {
	Min, Max Vec2
}

func (r Rect) Size() Vec2 { return Vec2{X: r.Dx(), Y: r.Dy()} }
func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if s.Empty() {
		return r
	}
	if r.Empty() {
		return s
	}
	return Rect{
		Min: Vec2{X: minf(r.Min.X, s.Min.X), Y: minf(r.Min.Y, s.Min.Y)},
		Max: Vec2{X: maxf(r.Max.X, s.Max.X), Y: maxf(r.Max.Y, s.Max.Y)},
	}
}

// AddPoint grows r (in place semantics via return value) so that it
// contains p. The zero Rect is treated as holding no point, so AddPoint
// on it returns the rectangle holding only p; a rectangle that has
// collapsed to the single point at the origin is treated the same way.
func (r Rect) AddPoint(p Vec2) Rect {
	if r == (Rect{}) {
		return Rect{Min: p, Max: p}
	}
	return Rect{
		Min: Vec2{X: minf(r.Min.X, p.X), Y: minf(r.Min.Y, p.Y)},
		Max: Vec2{X: maxf(r.Max.X, p.X), Y: maxf(r.Max.Y, p.Y)},
	}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Affine2D is a 2D affine transform, stored as the upper two rows of
// a 3x3 matrix:
//
//	[sx hx ox]
//	[hy sy oy]
//	[0  0  1]
type Affine2D struct {
	sx, hx, ox float32
	hy, sy, oy float32
}

// NewAffine2D returns the affine transform described by its six
// matrix elements, in the order produced by Elems.
func NewAffine2D(sx, hx, ox, hy, sy, oy float32) Affine2D {
	return Affine2D{sx: sx, hx: hx, ox: ox, hy: hy, sy: sy, oy: oy}
}

// Identity returns the identity transform.
func Identity() Affine2D {
	return Affine2D{sx: 1, sy: 1}
}

// Elems decomposes the transform into its six matrix elements.
func (a Affine2D) Elems() (sx, hx, ox, hy, sy, oy float32) {
	if a == (Affine2D{}) {
		return 1, 0, 0, 0, 1, 0
	}
	return a.sx, a.hx, a.ox, a.hy, a.sy, a.oy
}

// Transform returns a transformed by the vector p.
func (a Affine2D) Transform(p Vec2) Vec2 {
	sx, hx, ox, hy, sy, oy := a.Elems()
	return Vec2{
		X: sx*p.X + hx*p.Y + ox,
		Y: hy*p.X + sy*p.Y + oy,
	}
}

// TransformVector transforms p as a vector, ignoring the
// translation component.
func (a Affine2D) TransformVector(p Vec2) Vec2 {
	sx, hx, _, hy, sy, _ := a.Elems()
	return Vec2{X: sx*p.X + hx*p.Y, Y: hy*p.X + sy*p.Y}
}

// Mul returns the transform that applies a followed by b.
func (a Affine2D) Mul(b Affine2D) Affine2D {
	asx, ahx, aox, ahy, asy, aoy := a.Elems()
	bsx, bhx, box_, bhy, bsy, boy := b.Elems()
	return Affine2D{
		sx: bsx*asx + bhx*ahy,
		hx: bsx*ahx + bhx*asy,
		ox: bsx*aox + bhx*aoy + box_,
		hy: bhy*asx + bsy*ahy,
		sy: bhy*ahx + bsy*asy,
		oy: bhy*aox + bsy*aoy + boy,
	}
}

// Offset returns a transform that translates by offset.
func (a Affine2D) Offset(offset Vec2) Affine2D {
	return a.Mul(Affine2D{sx: 1, sy: 1, ox: offset.X, oy: offset.Y})
}

// Scale returns a transform that scales around origin by factor, applied
// after a.
func (a Affine2D) Scale(origin, factor Vec2) Affine2D {
	return a.Mul(Affine2D{
		sx: factor.X, sy: factor.Y,
		ox: origin.X - factor.X*origin.X,
		oy: origin.Y - factor.Y*origin.Y,
	})
}

// Rotate returns a transform that rotates by angle radians around
// origin, applied after a.
func (a Affine2D) Rotate(origin Vec2, angle float32) Affine2D {
	s, c := math.Sincos(float64(angle))
	sin, cos := float32(s), float32(c)
	m := Affine2D{
		sx: cos, hx: -sin,
		hy: sin, sy: cos,
	}
	m.ox = origin.X - cos*origin.X + sin*origin.Y
	m.oy = origin.Y - sin*origin.X - cos*origin.Y
	return a.Mul(m)
}

// Invert returns the inverse of a. Invert panics if a is singular.
func (a Affine2D) Invert() Affine2D {
	sx, hx, ox, hy, sy, oy := a.Elems()
	det := sx*sy - hx*hy
	if det == 0 {
		panic("vecmath: Affine2D is not invertible")
	}
	invDet := 1 / det
	isx := sy * invDet
	ihx := -hx * invDet
	ihy := -hy * invDet
	isy := sx * invDet
	iox := -(isx*ox + ihx*oy)
	ioy := -(ihy*ox + isy*oy)
	return Affine2D{sx: isx, hx: ihx, ox: iox, hy: ihy, sy: isy, oy: ioy}
}

// ColumnLengths returns the Euclidean lengths of the transform's two
// basis columns, used to estimate how much a transform magnifies
// curvature for the purposes of adaptive tessellation.
func (a Affine2D) ColumnLengths() (x, y float32) {
	sx, hx, _, hy, sy, _ := a.Elems()
	return Vec2{X: sx, Y: hy}.Len(), Vec2{X: hx, Y: sy}.Len()
}

// MaxScale returns the larger of the transform's two column lengths,
// used as the effective scale factor applied to pixelSize tolerances.
func (a Affine2D) MaxScale() float32 {
	x, y := a.ColumnLengths()
	if x > y {
		return x
	}
	return y
}
