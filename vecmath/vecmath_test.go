// SPDX-License-Identifier: Unlicense OR MIT

package vecmath

import (
	"math"
	"testing"
)

func TestAffineOffsetRoundtrip(t *testing.T) {
	o := Pt(3, -4)
	p := Pt(1, 2)
	r := Identity().Offset(o).Transform(p)
	i := Identity().Offset(o).Invert().Transform(r)
	if !Eq(i, p) {
		t.Errorf("got %v, want %v", i, p)
	}
}

func TestAffineScaleRoundtrip(t *testing.T) {
	s := Pt(2, 0.5)
	p := Pt(7, 9)
	r := Identity().Scale(Vec2{}, s).Transform(p)
	i := Identity().Scale(Vec2{}, s).Invert().Transform(r)
	if !Eq(i, p) {
		t.Errorf("got %v, want %v", i, p)
	}
}

func TestAffineRotateRoundtrip(t *testing.T) {
	p := Pt(5, 0)
	r := Identity().Rotate(Vec2{}, math.Pi/2).Transform(p)
	if !Eq(r, Pt(0, 5)) {
		t.Errorf("got %v, want (0,5)", r)
	}
}

func TestAffineMaxScale(t *testing.T) {
	a := Identity().Scale(Vec2{}, Pt(2, 4))
	if got := a.MaxScale(); got != 4 {
		t.Errorf("got %v, want 4", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{Min: Pt(0, 0), Max: Pt(1, 1)}
	b := Rect{Min: Pt(2, 2), Max: Pt(3, 3)}
	u := a.Union(b)
	if u.Min != (Vec2{0, 0}) || u.Max != (Vec2{3, 3}) {
		t.Errorf("got %v", u)
	}
}

func TestRectAddPoint(t *testing.T) {
	var r Rect
	r = r.AddPoint(Pt(1, 2))
	r = r.AddPoint(Pt(-1, 5))
	if r.Min != (Vec2{-1, 2}) || r.Max != (Vec2{1, 5}) {
		t.Errorf("got %v", r)
	}
}
