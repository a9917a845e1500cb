// SPDX-License-Identifier: Unlicense OR MIT

package filltess

import (
	"sort"

	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/vecmath"
)

// loopNode is one simple loop's place in the nesting tree built by
// classifyLoops: which loop immediately contains it, how deep it is
// nested, and whether that nesting makes it a hole rather than a
// fill region under the active FillRule.
type loopNode struct {
	points []vecmath.Vec2
	parent int // index into the node slice, or -1 for a root loop
	depth  int
	hole   bool
}

// classifyLoops builds the nesting tree for a fill command's simple
// loops and marks each as a hole or a fill region, per rule:
//
//   - EvenOdd: a loop is a hole iff it is nested inside an odd number
//     of other loops, independent of winding direction — the
//     alternating inside/outside test the rule is named for.
//   - NonZero: each loop contributes +1 or -1 to the winding number
//     depending on its direction; a loop is a hole iff the cumulative
//     winding number through its ancestor chain is zero. Two loops
//     wound the same direction as their parent thicken the fill
//     instead of cutting a hole, the behavior that distinguishes this
//     rule from EvenOdd for identically-nested contours.
func classifyLoops(loops [][]vecmath.Vec2, rule pathbuild.FillRule) []loopNode {
	n := len(loops)
	nodes := make([]loopNode, n)
	reps := make([]vecmath.Vec2, n)
	areas := make([]float32, n)
	for i, l := range loops {
		nodes[i] = loopNode{points: l, parent: -1}
		reps[i] = centroid(l)
		areas[i] = absArea(l)
	}
	for i := range nodes {
		best := -1
		for j := range nodes {
			if i == j {
				continue
			}
			if areas[j] <= areas[i] {
				continue // a parent must strictly enclose, hence have more area
			}
			if pointInPolygon(reps[i], loops[j]) && (best == -1 || areas[j] < areas[best]) {
				best = j
			}
		}
		nodes[i].parent = best
	}
	for i := range nodes {
		depth := 0
		for p := nodes[i].parent; p != -1; p = nodes[p].parent {
			depth++
		}
		nodes[i].depth = depth
	}

	if rule == pathbuild.EvenOdd {
		for i := range nodes {
			nodes[i].hole = nodes[i].depth%2 == 1
		}
		return nodes
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return nodes[order[a]].depth < nodes[order[b]].depth })
	winding := make([]int, n)
	for _, i := range order {
		s := windingSign(loops[i])
		if p := nodes[i].parent; p != -1 {
			winding[i] = winding[p] + s
		} else {
			winding[i] = s
		}
	}
	for i := range nodes {
		nodes[i].hole = winding[i] == 0
	}
	return nodes
}

// buildRegions turns a classified nesting tree into the flat list of
// simple polygons TriangulateEarClip should run on: one per fill
// region, with its immediate hole children bridged into its boundary.
// A fill loop whose parent is itself a fill region is already covered
// by that parent and emits nothing of its own.
func buildRegions(nodes []loopNode) [][]vecmath.Vec2 {
	var regions [][]vecmath.Vec2
	for i, nd := range nodes {
		if nd.hole || (nd.parent != -1 && !nodes[nd.parent].hole) {
			continue
		}
		var holes [][]vecmath.Vec2
		for _, other := range nodes {
			if other.hole && other.parent == i {
				holes = append(holes, other.points)
			}
		}
		if len(holes) == 0 {
			regions = append(regions, nd.points)
			continue
		}
		regions = append(regions, bridgeHoles(nd.points, holes, windingSign(nd.points)))
	}
	return regions
}

// bridgeHoles splices each hole loop into outer via the
// shortest outer-to-hole vertex bridge, the standard way to reduce a
// polygon-with-holes to a single simple polygon an ear-clipping
// triangulator can consume directly. Each hole is force-wound
// opposite to outer, since the bridge technique only cancels the
// hole's interior out of the result when the two loops turn in
// opposite directions around their shared bridge edge.
func bridgeHoles(outer []vecmath.Vec2, holes [][]vecmath.Vec2, outerWinding int) []vecmath.Vec2 {
	pts := append([]vecmath.Vec2(nil), outer...)
	for _, hole := range holes {
		if len(hole) < 3 {
			continue
		}
		h := append([]vecmath.Vec2(nil), hole...)
		if windingSign(h) == outerWinding {
			reverseLoop(h)
		}
		oi, hi := nearestBridge(pts, h)
		bridge := make([]vecmath.Vec2, 0, len(h)+1)
		for k := 0; k <= len(h); k++ {
			bridge = append(bridge, h[(hi+k)%len(h)])
		}
		next := make([]vecmath.Vec2, 0, len(pts)+len(bridge)+1)
		next = append(next, pts[:oi+1]...)
		next = append(next, bridge...)
		next = append(next, pts[oi])
		next = append(next, pts[oi+1:]...)
		pts = next
	}
	return pts
}

// nearestBridge returns the outer/hole vertex pair with the shortest
// connecting distance.
func nearestBridge(outer, hole []vecmath.Vec2) (oi, hi int) {
	best := float32(-1)
	for i, op := range outer {
		for j, hp := range hole {
			d := op.Sub(hp).Len()
			if best < 0 || d < best {
				best, oi, hi = d, i, j
			}
		}
	}
	return oi, hi
}

func reverseLoop(pts []vecmath.Vec2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func windingSign(loop []vecmath.Vec2) int {
	if signedArea(loop) > 0 {
		return 1
	}
	return -1
}

func signedArea(loop []vecmath.Vec2) float32 {
	var sum float32
	n := len(loop)
	for i := 0; i < n; i++ {
		a, b := loop[i], loop[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum * 0.5
}

func absArea(loop []vecmath.Vec2) float32 {
	a := signedArea(loop)
	if a < 0 {
		return -a
	}
	return a
}

func centroid(loop []vecmath.Vec2) vecmath.Vec2 {
	var sum vecmath.Vec2
	for _, p := range loop {
		sum = sum.Add(p)
	}
	n := float32(len(loop))
	return vecmath.Pt(sum.X/n, sum.Y/n)
}

// pointInPolygon reports whether p lies inside loop via even-odd ray
// casting, used only to determine nesting (which loop contains
// which), not as a fill rule itself.
func pointInPolygon(p vecmath.Vec2, loop []vecmath.Vec2) bool {
	inside := false
	n := len(loop)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := loop[i], loop[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}
