// SPDX-License-Identifier: Unlicense OR MIT

package pathbuild

import (
	"testing"

	"github.com/vectorforge/tessel/errs"
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

func TestAssemblerRectangleClosesLoop(t *testing.T) {
	a := arena.New()
	as := NewAssembler(a, 1)
	var b Builder
	b.StartPath(vecmath.Affine2D{}, true)
	b.Rectangle(vecmath.Rect{Min: vecmath.Pt(0, 0), Max: vecmath.Pt(10, 10)})
	b.FillPath(material.Ref{Name: "fg"}, 1, NonZero)

	reqs, err := as.Run(b.Commands())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Kind != RequestFill {
		t.Fatalf("got %d requests, want 1 fill request", len(reqs))
	}
	if len(reqs[0].LoopIndices) != 1 {
		t.Fatalf("got %d loops, want 1", len(reqs[0].LoopIndices))
	}
	loop := a.Loops.At(reqs[0].LoopIndices[0])
	if loop.PointCount != 5 {
		t.Errorf("PointCount = %d, want 5 (4 corners + closing point)", loop.PointCount)
	}
	last := a.Points.At(loop.PointStart + loop.PointCount - 1)
	if last.Flags&arena.End == 0 {
		t.Error("closing point missing End flag")
	}
	first := a.Points.At(loop.PointStart)
	if first.Flags&arena.JoinStart == 0 {
		t.Error("first point missing JoinStart flag")
	}
}

func TestAssemblerCurveOutsidePathFails(t *testing.T) {
	a := arena.New()
	as := NewAssembler(a, 1)
	var b Builder
	b.Line(vecmath.Pt(1, 1))
	_, err := as.Run(b.Commands())
	if errs.KindOf(err) != errs.InvalidArg {
		t.Fatalf("err = %v, want InvalidArg", err)
	}
}

func TestAssemblerLineWithNoStartingPointFails(t *testing.T) {
	a := arena.New()
	as := NewAssembler(a, 1)
	var b Builder
	b.StartPath(vecmath.Affine2D{}, true)
	b.Line(vecmath.Pt(1, 1))
	_, err := as.Run(b.Commands())
	if errs.KindOf(err) != errs.InvalidArg {
		t.Fatalf("err = %v, want InvalidArg", err)
	}
}

func TestAssemblerMoveEndsPreviousSubpath(t *testing.T) {
	a := arena.New()
	as := NewAssembler(a, 1)
	var b Builder
	b.StartPath(vecmath.Affine2D{}, true)
	b.Move(vecmath.Pt(0, 0))
	b.Line(vecmath.Pt(1, 0))
	b.Move(vecmath.Pt(5, 5))
	b.Line(vecmath.Pt(6, 5))
	b.StrokePath(StrokeStyle{Width: 1})

	reqs, err := as.Run(b.Commands())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(reqs[0].LoopIndices) != 2 {
		t.Fatalf("got %d loops, want 2", len(reqs[0].LoopIndices))
	}
	firstLoop := a.Loops.At(reqs[0].LoopIndices[0])
	if p := a.Points.At(firstLoop.PointStart + firstLoop.PointCount - 1); p.Flags&arena.End == 0 {
		t.Error("first subpath's last point missing End flag after Move broke it off")
	}
}

func TestAssemblerDuplicatePointsCollapse(t *testing.T) {
	a := arena.New()
	as := NewAssembler(a, 1)
	var b Builder
	b.StartPath(vecmath.Affine2D{}, true)
	b.Move(vecmath.Pt(0, 0))
	b.Line(vecmath.Pt(0, 0))
	b.Line(vecmath.Pt(10, 0))
	b.StrokePath(StrokeStyle{Width: 1})

	reqs, err := as.Run(b.Commands())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	loop := a.Loops.At(reqs[0].LoopIndices[0])
	if loop.PointCount != 2 {
		t.Errorf("PointCount = %d, want 2 (duplicate point collapsed)", loop.PointCount)
	}
}
