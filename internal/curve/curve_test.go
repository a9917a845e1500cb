// SPDX-License-Identifier: Unlicense OR MIT

package curve

import (
	"math"
	"testing"

	"github.com/vectorforge/tessel/vecmath"
)

func TestCubicEndsAtLastControlPoint(t *testing.T) {
	p0 := vecmath.Pt(0, 0)
	p1 := vecmath.Pt(0, 100)
	p2 := vecmath.Pt(100, 100)
	p3 := vecmath.Pt(100, 0)

	var pts []vecmath.Vec2
	Cubic(p0, p1, p2, p3, 1, func(p vecmath.Vec2, last bool) {
		pts = append(pts, p)
	})
	if len(pts) == 0 {
		t.Fatal("expected at least one emitted point")
	}
	if pts[len(pts)-1] != p3 {
		t.Errorf("last point = %v, want %v", pts[len(pts)-1], p3)
	}
}

func TestCubicRefinesUnderSmallerPixelSize(t *testing.T) {
	p0, p1, p2, p3 := vecmath.Pt(0, 0), vecmath.Pt(0, 100), vecmath.Pt(100, 100), vecmath.Pt(100, 0)
	count := func(pixelSize float32) int {
		n := 0
		Cubic(p0, p1, p2, p3, pixelSize, func(vecmath.Vec2, bool) { n++ })
		return n
	}
	fine := count(0.1)
	coarse := count(10)
	if fine <= coarse {
		t.Errorf("fine subdivision (pixelSize=0.1) produced %d points, coarse (pixelSize=10) produced %d; want fine > coarse", fine, coarse)
	}
}

func TestArcZeroRadiusIsLine(t *testing.T) {
	p0 := vecmath.Pt(0, 0)
	p1 := vecmath.Pt(10, 10)
	var got []vecmath.Vec2
	Arc(p0, p1, 0, 0, 0, false, true, 1, func(p vecmath.Vec2, last bool) {
		got = append(got, p)
	})
	if len(got) != 1 || got[0] != p1 {
		t.Fatalf("got %v, want exactly [p1]", got)
	}
}

func TestArcQuarterCircle(t *testing.T) {
	// Quarter circle of radius 10 from (10,0) to (0,10) around the origin,
	// sweeping clockwise (image space), large-arc=false.
	p0 := vecmath.Pt(10, 0)
	p1 := vecmath.Pt(0, 10)
	var pts []vecmath.Vec2
	Arc(p0, p1, 10, 10, 0, false, true, 0.1, func(p vecmath.Vec2, last bool) {
		pts = append(pts, p)
	})
	if len(pts) == 0 {
		t.Fatal("expected points")
	}
	last := pts[len(pts)-1]
	if vecmath.Eq(last, p1) {
		// fine
	} else if dist(last, p1) > 1e-3 {
		t.Errorf("last point %v far from expected end %v", last, p1)
	}
	for _, p := range pts {
		r := p.Len()
		if math.Abs(float64(r-10)) > 1e-2 {
			t.Errorf("point %v has radius %v, want ~10", p, r)
		}
	}
}

func dist(a, b vecmath.Vec2) float32 {
	return a.Sub(b).Len()
}
