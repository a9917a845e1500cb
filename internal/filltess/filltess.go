// SPDX-License-Identifier: Unlicense OR MIT

// Package filltess triangulates closed polylines into a mesh, using a
// simple-polygon ear-clipping triangulator behind a Triangulator
// interface, following the design note that the source's triangulator
// callback should be modeled as an interface with a single
// point(index) → vec2 method rather than a concrete data structure.
// Complex (self-intersecting) input is decomposed into simple loops
// by Simplify first; multiple loops belonging to one fill are then
// grouped into hole/fill regions by classifyLoops, per the active
// FillRule, before triangulation.
//
// No example repo in the retrieval pack imports a general polygon
// triangulation library, so this is a from-scratch implementation
// rather than an adopted one (see DESIGN.md).
package filltess

import (
	"github.com/vectorforge/tessel/errs"
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/vecmath"
)

// Triangulator is the entry point a fill emitter triangulates
// against: a polygon presented purely as an indexable sequence of
// points, with no assumption about backing storage.
type Triangulator interface {
	Len() int
	Point(i int) vecmath.Vec2
}

// Points adapts a plain slice to the Triangulator interface.
type Points []vecmath.Vec2

func (p Points) Len() int                 { return len(p) }
func (p Points) Point(i int) vecmath.Vec2 { return p[i] }

// Mesh is the vertex/index range a Tessellate call appended, and the
// union bounds of the vertices within it. As with stroketess.Mesh,
// ShapeIndex is patched in afterward once the caller has an info
// record index.
type Mesh struct {
	Bounds      vecmath.Rect
	VertexStart int
	VertexEnd   int
	IndexStart  int
	IndexEnd    int
}

func (m Mesh) PatchShapeIndex(a *arena.Arena, shapeIndex uint16) {
	for i := m.VertexStart; i < m.VertexEnd; i++ {
		a.ShapeVertices.At(i).ShapeIndex = shapeIndex
	}
}

// Tessellate triangulates loops (one or more closed polygons drawn by
// a single fill command) and appends the resulting vertices and
// indices to a. Degenerate (fewer than 3 point) loops are skipped.
//
// If simple is false, each loop is first handed to Simplify, per
// spec.md §4.5's "for complex paths, subpaths are handed to a
// self-intersection simplifier first, then each resulting simple loop
// is triangulated" — pathbuild.Request.FillSimple (true only when the
// caller declared the whole path via StartPath's simple flag) decides
// which loops skip that step. The resulting simple loops are then
// grouped by nesting and rule: a loop nested inside another becomes a
// hole cut from its immediate enclosing fill region (EvenOdd) or
// stays solid when its winding matches its parent's (NonZero), per
// classifyLoops.
//
// Triangulation failure on any resulting region aborts the whole
// fill, per spec.md's "Triangulation failure aborts emission of this
// fill."
func Tessellate(a *arena.Arena, loops [][]vecmath.Vec2, rule pathbuild.FillRule, simple bool) (Mesh, error) {
	vertexStart := a.ShapeVertices.Len()
	indexStart := a.Indices.Len()
	var bounds vecmath.Rect
	hasBounds := false

	var simpleLoops [][]vecmath.Vec2
	for _, loop := range loops {
		pts := dedupClosingPoint(loop)
		if len(pts) < 3 {
			continue // degenerate single-point (or near-empty) subpath: silently skipped
		}
		if simple {
			simpleLoops = append(simpleLoops, pts)
		} else {
			simpleLoops = append(simpleLoops, Simplify(&a.Simplify, pts)...)
		}
	}
	if len(simpleLoops) == 0 {
		return Mesh{VertexStart: vertexStart, VertexEnd: vertexStart, IndexStart: indexStart, IndexEnd: indexStart}, nil
	}

	regions := buildRegions(classifyLoops(simpleLoops, rule))
	for _, pts := range regions {
		if len(pts) < 3 {
			continue
		}
		base := a.ShapeVertices.Len()
		for _, p := range pts {
			a.ShapeVertices.Append(arena.ShapeVertex{Position: p})
			// Grown directly rather than with Rect.AddPoint, which treats
			// a rectangle holding only the origin as empty.
			if !hasBounds {
				bounds, hasBounds = vecmath.Rect{Min: p, Max: p}, true
			}
			bounds.Min = vecmath.Pt(min(bounds.Min.X, p.X), min(bounds.Min.Y, p.Y))
			bounds.Max = vecmath.Pt(max(bounds.Max.X, p.X), max(bounds.Max.Y, p.Y))
		}
		tris, err := TriangulateEarClipScratch(&a.Triangulate, Points(pts))
		if err != nil {
			return Mesh{}, errs.E("filltess.Tessellate", errs.InvalidArg, err)
		}
		for _, idx := range tris {
			a.Indices.Append(uint32(base + idx))
		}
	}

	return Mesh{
		Bounds:      bounds,
		VertexStart: vertexStart,
		VertexEnd:   a.ShapeVertices.Len(),
		IndexStart:  indexStart,
		IndexEnd:    a.Indices.Len(),
	}, nil
}

// dedupClosingPoint drops a trailing point that merely closes the
// loop back to its start (pathbuild's ClosePath always appends one).
func dedupClosingPoint(loop []vecmath.Vec2) []vecmath.Vec2 {
	if len(loop) >= 2 && vecmath.Eq(loop[0], loop[len(loop)-1]) {
		return loop[:len(loop)-1]
	}
	return loop
}
