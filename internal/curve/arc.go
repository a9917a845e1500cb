// SPDX-License-Identifier: Unlicense OR MIT

package curve

import (
	"math"

	"github.com/vectorforge/tessel/vecmath"
)

// Arc flattens the SVG-semantics elliptical arc from p0 to p1 with
// radii (rx, ry), x-axis rotation phi (radians), and the largeArc /
// clockwise sweep flags, following the endpoint-to-center
// parameterization from the SVG implementation notes
// (https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes).
//
// If either radius is non-positive, a straight line to p1 is emitted
// instead. Interior samples are emitted Normal; p1 is always emitted
// last via emit's last flag, whatever the path taken to reach it.
func Arc(p0, p1 vecmath.Vec2, rx, ry, phi float32, largeArc, clockwise bool, pixelSize float32, emit Emit) {
	if rx <= 0 || ry <= 0 {
		emit(p1, true)
		return
	}
	arc(p0, p1, rx, ry, phi, largeArc, clockwise, pixelSize, emit, false)
}

func arc(p0, p1 vecmath.Vec2, rx, ry, phi float32, largeArc, clockwise bool, pixelSize float32, emit Emit, forceCenterScale0 bool) {
	sinPhi, cosPhi := float32(math.Sin(float64(phi))), float32(math.Cos(float64(phi)))

	rotTranspose := func(v vecmath.Vec2) vecmath.Vec2 {
		// Rotate by -phi (transpose of the rotation matrix).
		return vecmath.Vec2{
			X: cosPhi*v.X + sinPhi*v.Y,
			Y: -sinPhi*v.X + cosPhi*v.Y,
		}
	}
	rot := func(v vecmath.Vec2) vecmath.Vec2 {
		return vecmath.Vec2{
			X: cosPhi*v.X - sinPhi*v.Y,
			Y: sinPhi*v.X + cosPhi*v.Y,
		}
	}

	midPrime := p0.Sub(p1).Mul(0.5)
	posPrime := rotTranspose(midPrime)

	var centerScale float32
	if !forceCenterScale0 {
		minRadius := vecmath.Vec2{X: float32(math.Abs(float64(posPrime.X))), Y: float32(math.Abs(float64(posPrime.Y)))}
		if rx < minRadius.X || ry < minRadius.Y {
			scaleX := minRadius.X / rx
			scaleY := minRadius.Y / ry
			maxScale := scaleX
			if scaleY > maxScale {
				maxScale = scaleY
			}
			arc(p0, p1, rx*maxScale, ry*maxScale, phi, largeArc, clockwise, pixelSize, emit, true)
			return
		}

		rx2, ry2 := rx*rx, ry*ry
		px2, py2 := posPrime.X*posPrime.X, posPrime.Y*posPrime.Y
		num := rx2*ry2 - rx2*py2 - ry2*px2
		den := rx2*py2 + ry2*px2
		cs := float32(0)
		if den != 0 && num > 0 {
			cs = float32(math.Sqrt(float64(num / den)))
		}
		if clockwise == largeArc {
			cs = -cs
		}
		centerScale = cs
	}

	centerPrime := vecmath.Vec2{
		X: rx * posPrime.Y / ry,
		Y: -ry * posPrime.X / rx,
	}.Mul(centerScale)

	mid := p0.Add(p1).Mul(0.5)
	center := rot(centerPrime).Add(mid)

	u := vecmath.Vec2{X: (posPrime.X - centerPrime.X) / rx, Y: (posPrime.Y - centerPrime.Y) / ry}
	v := vecmath.Vec2{X: (-posPrime.X - centerPrime.X) / rx, Y: (-posPrime.Y - centerPrime.Y) / ry}

	startTheta := angleBetween(vecmath.Vec2{X: 1, Y: 0}, u)
	if centerPrime.Y > posPrime.Y {
		startTheta = -startTheta
	}

	deltaTheta := angleBetween(u, v)
	if u.Y*v.X > u.X*v.Y {
		deltaTheta = -deltaTheta
	}

	if clockwise && deltaTheta < 0 {
		deltaTheta += 2 * math.Pi
	} else if !clockwise && deltaTheta > 0 {
		deltaTheta -= 2 * math.Pi
	}

	maxRadius := rx
	if ry > maxRadius {
		maxRadius = ry
	}
	pixelTheta := PixelTheta(pixelSize, maxRadius)
	pointCount := int(float32(math.Abs(float64(deltaTheta))) / pixelTheta)
	if pointCount < 1 {
		emit(p1, true)
		return
	}
	incr := deltaTheta / float32(pointCount)
	for i := 1; i < pointCount; i++ {
		theta := startTheta + float32(i)*incr
		base := vecmath.Vec2{X: float32(math.Cos(float64(theta))) * rx, Y: float32(math.Sin(float64(theta))) * ry}
		pos := rot(base).Add(center)
		emit(pos, false)
	}
	emit(p1, true)
}

// angleBetween returns the unsigned angle between vectors a and b,
// clamping the cosine to [-1, 1] to guard against rounding pushing it
// just outside that range.
func angleBetween(a, b vecmath.Vec2) float32 {
	cosAngle := a.Dot(b) / (a.Len() * b.Len())
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}
	return float32(math.Acos(float64(cosAngle)))
}
