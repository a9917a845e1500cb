// SPDX-License-Identifier: Unlicense OR MIT

package filltess

import (
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/vecmath"
)

// Simplify decomposes loop, a closed polyline that may self-intersect,
// into simple (non-self-intersecting) sub-loops so each can be handed
// to TriangulateEarClip independently — spec.md §4.5's "for complex
// paths, subpaths are handed to a self-intersection simplifier first,
// then each resulting simple loop is triangulated."
//
// original_source doesn't carry the original engine's simplifier
// (dsSimplePolygon_triangulate lives in DeepSea/Geometry/SimplePolygon,
// not retrieved into this pack — see DESIGN.md), so this is a
// from-scratch decomposition: repeatedly find the first crossing
// between two non-adjacent edges and split the loop there, the same
// way a figure-eight is resolved into its two lobes by cutting at the
// crossing and reconnecting each half into its own closed loop. A
// loop with no remaining crossings is simple and returned as-is.
func Simplify(scratch *arena.SimplifierScratch, loop []vecmath.Vec2) [][]vecmath.Vec2 {
	work := append(scratch.Work[:0], loop...)
	loops := scratch.Loops[:0]

	for {
		i, j, pt, ok := firstSelfIntersection(work)
		if !ok {
			loops = append(loops, append([]vecmath.Vec2(nil), work...))
			scratch.Work = work
			scratch.Loops = loops
			return loops
		}

		inner := make([]vecmath.Vec2, 0, j-i+1)
		inner = append(inner, pt)
		inner = append(inner, work[i+1:j+1]...)
		loops = append(loops, inner)

		outer := make([]vecmath.Vec2, 0, len(work)-(j-i)+1)
		outer = append(outer, work[:i+1]...)
		outer = append(outer, pt)
		outer = append(outer, work[j+1:]...)
		work = outer
	}
}

// firstSelfIntersection returns the first pair of non-adjacent edges
// (i, i+1) and (j, j+1) — in (i, then j) scan order — that cross, and
// the crossing point, or ok=false if loop is already simple.
func firstSelfIntersection(loop []vecmath.Vec2) (i, j int, pt vecmath.Vec2, ok bool) {
	n := len(loop)
	if n < 4 {
		return 0, 0, vecmath.Vec2{}, false
	}
	for i := 0; i < n; i++ {
		a0, a1 := loop[i], loop[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // shares loop[0] through the wraparound edge
			}
			b0, b1 := loop[j], loop[(j+1)%n]
			if p, crosses := segmentIntersection(a0, a1, b0, b1); crosses {
				return i, j, p, true
			}
		}
	}
	return 0, 0, vecmath.Vec2{}, false
}

// segmentIntersection returns the interior crossing point of segments
// p0-p1 and p2-p3, excluding parallel segments and intersections at
// or beyond either segment's endpoints (shared endpoints between
// adjacent edges are not self-intersections).
func segmentIntersection(p0, p1, p2, p3 vecmath.Vec2) (vecmath.Vec2, bool) {
	const eps = 1e-5
	d1 := p1.Sub(p0)
	d2 := p3.Sub(p2)
	denom := d1.Cross(d2)
	if denom > -eps && denom < eps {
		return vecmath.Vec2{}, false
	}
	diff := p2.Sub(p0)
	t := diff.Cross(d2) / denom
	u := diff.Cross(d1) / denom
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return vecmath.Vec2{}, false
	}
	return p0.Add(d1.Mul(t)), true
}
