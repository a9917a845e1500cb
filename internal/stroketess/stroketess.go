// SPDX-License-Identifier: Unlicense OR MIT

// Package stroketess turns a polyline (as produced by
// internal/pathbuild) and a stroke style into a triangle mesh: joins,
// caps, and per-vertex dash-distance metadata, following the
// expansion and join/cap rules of the component design.
//
// The approach is adapted from gio's gpu/stroke.go, which builds the
// same join/cap taxonomy (bevel/round/miter, flat/square/round) but
// emits GPU-shader stroke quads for a stencil-and-cover renderer; here
// every join and cap directly appends triangles to the shared vertex
// and index arenas instead, since GPU-side tessellation is out of
// scope.
package stroketess

import (
	"math"

	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/curve"
	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/vecmath"
)

// Mesh describes the vertex/index range a Tessellate call appended,
// and the union bounds of every vertex position within it. shapeIndex
// is not known until the caller allocates the info record, so
// vertices are appended with ShapeIndex left at zero; PatchShapeIndex
// fills it in afterward.
type Mesh struct {
	Bounds      vecmath.Rect
	VertexStart int
	VertexEnd   int
	IndexStart  int
	IndexEnd    int
	EffectiveOp float32 // opacity after sub-pixel width compensation
}

// PatchShapeIndex sets ShapeIndex on every vertex in [VertexStart,
// VertexEnd) to shapeIndex, once the caller has allocated the shape's
// info record.
func (m Mesh) PatchShapeIndex(a *arena.Arena, shapeIndex uint16) {
	for i := m.VertexStart; i < m.VertexEnd; i++ {
		a.ShapeVertices.At(i).ShapeIndex = shapeIndex
	}
}

// Tessellate appends the stroke mesh for one subpath's points (as
// produced by pathbuild, with Corner/JoinStart/End flags already set)
// to a, using style and pixelSize.
func Tessellate(a *arena.Arena, points []arena.Point, style pathbuild.StrokeStyle, pixelSize float32) Mesh {
	expandSize := style.Width
	if half := pixelSize * 0.5; expandSize < half {
		expandSize = half
	}
	effectiveOpacity := style.Opacity
	if expandSize > 0 {
		effectiveOpacity *= style.Width / expandSize
	}
	halfWidth := expandSize / 2

	closed := len(points) > 0 && points[0].Flags&arena.JoinStart != 0

	vertexStart := a.ShapeVertices.Len()
	indexStart := a.Indices.Len()
	var bounds vecmath.Rect
	var dist float32 // running arc length along the subpath

	n := len(points)
	if n < 2 {
		return Mesh{VertexStart: vertexStart, VertexEnd: vertexStart, IndexStart: indexStart, IndexEnd: indexStart, EffectiveOp: effectiveOpacity}
	}

	segCount := n - 1
	if closed {
		segCount = n
	}

	// First pass: total subpath length, for distance.y.
	total := float32(0)
	for i := 0; i < segCount; i++ {
		p0 := points[i].Position
		p1 := points[(i+1)%n].Position
		total += p1.Sub(p0).Len()
	}

	emitQuad := func(p0, p1 vecmath.Vec2, d0, d1 float32) {
		dir := p1.Sub(p0)
		length := dir.Len()
		if length == 0 {
			return
		}
		n := vecmath.Rot90CW(dir).Normalize(halfWidth)
		a0 := p0.Add(n)
		b0 := p0.Sub(n)
		a1 := p1.Add(n)
		b1 := p1.Sub(n)
		base := a.ShapeVertices.Len()
		a.ShapeVertices.Append(arena.ShapeVertex{Position: a0, Distance: vecmath.Pt(d0, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: b0, Distance: vecmath.Pt(d0, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: a1, Distance: vecmath.Pt(d1, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: b1, Distance: vecmath.Pt(d1, total)})
		a.Indices.Append(uint32(base))
		a.Indices.Append(uint32(base + 1))
		a.Indices.Append(uint32(base + 2))
		a.Indices.Append(uint32(base + 2))
		a.Indices.Append(uint32(base + 1))
		a.Indices.Append(uint32(base + 3))
		bounds = bounds.AddPoint(a0).AddPoint(b0).AddPoint(a1).AddPoint(b1)
	}

	emitJoin := func(prevDir, nextDir vecmath.Vec2, corner vecmath.Vec2, d, incomingLen float32) {
		emitJoinGeometry(a, style.Join, style.MiterLimit, halfWidth, prevDir, nextDir, corner, d, total, incomingLen, &bounds)
	}

	emitCap := func(at vecmath.Vec2, dir vecmath.Vec2, d float32, start bool) {
		emitCapGeometry(a, style.Cap, halfWidth, pixelSize, at, dir, d, total, start, &bounds)
	}

	for i := 0; i < segCount; i++ {
		p0 := points[i].Position
		p1 := points[(i+1)%n].Position
		segLen := p1.Sub(p0).Len()
		emitQuad(p0, p1, dist, dist+segLen)

		isLastSeg := i == segCount-1
		hasNext := closed || !isLastSeg
		if hasNext {
			nextIdx := (i + 1) % n
			nextNextIdx := (i + 2) % n
			if nextIdx != nextNextIdx {
				fromDir := p1.Sub(p0).Normalize(1)
				toDir := points[nextNextIdx].Position.Sub(points[nextIdx].Position).Normalize(1)
				emitJoin(fromDir, toDir, p1, dist+segLen, segLen)
			}
		} else if !closed {
			// end cap
			dir := p1.Sub(p0).Normalize(1)
			emitCap(p1, dir, dist+segLen, false)
		}
		dist += segLen
	}

	if !closed {
		dir := points[1].Position.Sub(points[0].Position).Normalize(1)
		emitCap(points[0].Position, dir.Mul(-1), 0, true)
	}

	return Mesh{
		Bounds:      bounds,
		VertexStart: vertexStart,
		VertexEnd:   a.ShapeVertices.Len(),
		IndexStart:  indexStart,
		IndexEnd:    a.Indices.Len(),
		EffectiveOp: effectiveOpacity,
	}
}

func emitJoinGeometry(a *arena.Arena, joinType pathbuild.JoinType, miterLimit, halfWidth float32, fromDir, toDir, corner vecmath.Vec2, d, total, incomingLen float32, bounds *vecmath.Rect) {
	cos := fromDir.Dot(toDir)
	if cos >= 1-1e-3 {
		return // effectively straight; the two segment quads already meet
	}
	turnsRight := vecmath.Rot90CW(fromDir).Dot(toDir) > 0

	outerNormalFrom := vecmath.Rot90CCW(fromDir)
	outerNormalTo := vecmath.Rot90CCW(toDir)
	if !turnsRight {
		outerNormalFrom = outerNormalFrom.Mul(-1)
		outerNormalTo = outerNormalTo.Mul(-1)
	}

	innerFrom := corner.Add(outerNormalFrom.Mul(-halfWidth))
	innerTo := corner.Add(outerNormalTo.Mul(-halfWidth))
	appendTri := func(p0, p1, p2 vecmath.Vec2) {
		base := a.ShapeVertices.Len()
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p0, Distance: vecmath.Pt(d, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p1, Distance: vecmath.Pt(d, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p2, Distance: vecmath.Pt(d, total)})
		a.Indices.Append(uint32(base))
		a.Indices.Append(uint32(base + 1))
		a.Indices.Append(uint32(base + 2))
		*bounds = bounds.AddPoint(p0).AddPoint(p1).AddPoint(p2)
	}
	appendTriDist := func(p0, p1, p2 vecmath.Vec2, d0, d1, d2 float32) {
		base := a.ShapeVertices.Len()
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p0, Distance: vecmath.Pt(d0, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p1, Distance: vecmath.Pt(d1, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p2, Distance: vecmath.Pt(d2, total)})
		a.Indices.Append(uint32(base))
		a.Indices.Append(uint32(base + 1))
		a.Indices.Append(uint32(base + 2))
		*bounds = bounds.AddPoint(p0).AddPoint(p1).AddPoint(p2)
	}

	// Inner-side fill: always a single clamped miter point (never a
	// bevel), split into two coincident vertices with distance.x of
	// d-Δ and d+Δ so dashing remains continuous across the corner
	// (spec.md §4.4, testable property 8). Δ is the distance back
	// along the incoming segment at which the two segments' inward
	// offset lines meet, clamped to that segment's length to prevent
	// the point shooting past a short segment and self-intersecting.
	halfAngle := float32(math.Acos(float64(clamp(cos, -1, 1)))) / 2
	unclamped := halfWidth * float32(math.Tan(float64(halfAngle)))
	delta := unclamped
	if delta > incomingLen {
		delta = incomingLen
	}
	innerPt := corner
	if sum := outerNormalFrom.Add(outerNormalTo); sum.Len() > 1e-6 && unclamped > 1e-6 {
		fullMiterLen := halfWidth / float32(math.Cos(float64(halfAngle)))
		innerPt = corner.Sub(sum.Normalize(fullMiterLen * (delta / unclamped)))
	}
	appendTriDist(corner, innerFrom, innerPt, d, d, d-delta)
	appendTriDist(corner, innerPt, innerTo, d, d+delta, d)

	outerFrom := corner.Add(outerNormalFrom.Mul(halfWidth))
	outerTo := corner.Add(outerNormalTo.Mul(halfWidth))

	switch joinType {
	case pathbuild.RoundJoinType:
		theta := float32(math.Acos(float64(clamp(cos, -1, 1))))
		steps := int(math.Ceil(float64(theta / curve.PixelTheta(1, halfWidth))))
		if steps < 2 {
			steps = 2
		}
		prev := outerFrom
		for s := 1; s <= steps; s++ {
			t := float32(s) / float32(steps)
			dir := slerp(outerNormalFrom, outerNormalTo, t).Normalize(halfWidth)
			cur := corner.Add(dir)
			appendTri(corner, prev, cur)
			prev = cur
		}
	case pathbuild.MiterJoin:
		limitCos := float32(math.Cos(math.Pi - 2*math.Asin(1/float64(miterLimit))))
		if cos >= limitCos {
			halfAngle := float32(math.Acos(float64(clamp(cos, -1, 1)))) / 2
			miterLen := halfWidth / float32(math.Cos(float64(halfAngle)))
			miterDir := outerNormalFrom.Add(outerNormalTo).Normalize(miterLen)
			miterPt := corner.Add(miterDir)
			appendTri(corner, outerFrom, miterPt)
			appendTri(corner, miterPt, outerTo)
		} else {
			appendTri(corner, outerFrom, outerTo)
		}
	default: // BevelJoin
		appendTri(corner, outerFrom, outerTo)
	}
}

func emitCapGeometry(a *arena.Arena, capType pathbuild.CapType, halfWidth, pixelSize float32, at, dir vecmath.Vec2, d, total float32, start bool, bounds *vecmath.Rect) {
	normal := vecmath.Rot90CW(dir).Normalize(halfWidth)
	left := at.Add(normal)
	right := at.Sub(normal)
	appendTri := func(p0, p1, p2 vecmath.Vec2) {
		base := a.ShapeVertices.Len()
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p0, Distance: vecmath.Pt(d, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p1, Distance: vecmath.Pt(d, total)})
		a.ShapeVertices.Append(arena.ShapeVertex{Position: p2, Distance: vecmath.Pt(d, total)})
		a.Indices.Append(uint32(base))
		a.Indices.Append(uint32(base + 1))
		a.Indices.Append(uint32(base + 2))
		*bounds = bounds.AddPoint(p0).AddPoint(p1).AddPoint(p2)
	}
	switch capType {
	case pathbuild.ButtCap:
		// no extra geometry
	case pathbuild.SquareCap:
		ext := dir.Mul(halfWidth)
		if start {
			ext = ext.Mul(-1)
		}
		outLeft := left.Add(ext)
		outRight := right.Add(ext)
		appendTri(left, right, outLeft)
		appendTri(right, outRight, outLeft)
	case pathbuild.RoundCap:
		steps := int(math.Ceil(math.Pi / float64(curve.PixelTheta(pixelSize, halfWidth))))
		if steps < 2 {
			steps = 2
		}
		sign := float32(1)
		if start {
			sign = -1
		}
		prev := left
		for s := 1; s <= steps; s++ {
			theta := math.Pi * float64(s) / float64(steps)
			c, sN := math.Cos(theta), math.Sin(theta)
			off := normal.Mul(float32(c)).Add(dir.Mul(float32(sN) * halfWidth * sign))
			cur := at.Add(off)
			appendTri(at, prev, cur)
			prev = cur
		}
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func slerp(a, b vecmath.Vec2, t float32) vecmath.Vec2 {
	return vecmath.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
}
