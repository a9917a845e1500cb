// SPDX-License-Identifier: Unlicense OR MIT

package filltess

import (
	"errors"

	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/vecmath"
)

// TriangulateEarClip triangulates a simple polygon (no
// self-intersections) presented via t, in clockwise winding (matching
// this module's upper-left-origin image space), returning a flat
// array of vertex-index triples. It fails if the polygon has fewer
// than 3 vertices or if no ear can be found (a sign the input isn't
// actually simple/clockwise).
func TriangulateEarClip(t Triangulator) ([]int, error) {
	indices, _, err := triangulateEarClip(nil, nil, t)
	return indices, err
}

// TriangulateEarClipScratch is TriangulateEarClip, reusing scratch's
// backing arrays across calls instead of allocating a fresh
// "remaining vertices" and output-index slice each time — the
// triangulator scratch Arena owns per spec.md §4.1. The returned
// slice aliases scratch.Indices and is only valid until the next call
// through the same scratch.
func TriangulateEarClipScratch(scratch *arena.TriangulatorScratch, t Triangulator) ([]int, error) {
	scratch.Remaining = scratch.Remaining[:0]
	scratch.Indices = scratch.Indices[:0]
	indices, remaining, err := triangulateEarClip(scratch.Remaining, scratch.Indices, t)
	scratch.Remaining = remaining
	scratch.Indices = indices
	return indices, err
}

// triangulateEarClip implements the ear-clipping loop, appending into
// (and returning) the caller-supplied remaining/indices slices so
// TriangulateEarClipScratch can reuse Arena-owned backing arrays
// while TriangulateEarClip just passes nil for a one-off allocation.
func triangulateEarClip(remaining, indices []int, t Triangulator) ([]int, []int, error) {
	n := t.Len()
	if n < 3 {
		return nil, nil, errors.New("filltess: polygon has fewer than 3 points")
	}

	remaining = remaining[:0]
	for i := 0; i < n; i++ {
		remaining = append(remaining, i)
	}

	guard := 0
	for len(remaining) > 3 {
		guard++
		if guard > n*n+16 {
			return nil, nil, errors.New("filltess: no ear found; polygon may not be simple or clockwise")
		}
		m := len(remaining)
		found := false
		for i := 0; i < m; i++ {
			ia := remaining[(i-1+m)%m]
			ib := remaining[i]
			ic := remaining[(i+1)%m]
			a, b, c := t.Point(ia), t.Point(ib), t.Point(ic)
			if !isConvex(a, b, c) {
				continue
			}
			ear := true
			for j := 0; j < m; j++ {
				ip := remaining[j]
				if ip == ia || ip == ib || ip == ic {
					continue
				}
				p := t.Point(ip)
				if p == a || p == b || p == c {
					continue // a repeated copy of an ear vertex, as hole bridges produce
				}
				if pointInTriangle(p, a, b, c) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}
			indices = append(indices, ia, ib, ic)
			remaining = append(remaining[:i:i], remaining[i+1:]...)
			found = true
			break
		}
		if !found {
			return nil, nil, errors.New("filltess: no ear found; polygon may not be simple or clockwise")
		}
	}
	indices = append(indices, remaining[0], remaining[1], remaining[2])
	return indices, remaining, nil
}

// isConvex reports whether b is a convex vertex of a clockwise
// polygon in image space (upper-left origin, +y down), i.e. the turn
// from a→b to b→c is clockwise (cross product ≥ 0 in that space).
func isConvex(a, b, c vecmath.Vec2) bool {
	ab := b.Sub(a)
	bc := c.Sub(b)
	return ab.Cross(bc) >= 0
}

func pointInTriangle(p, a, b, c vecmath.Vec2) bool {
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func sign(p, a, b vecmath.Vec2) float32 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}
