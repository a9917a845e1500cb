// SPDX-License-Identifier: Unlicense OR MIT

// Package rasterpreview renders a fill's point loops straight to an
// image.RGBA using golang.org/x/image/vector, independently of
// filltess's own ear-clipping triangulator. It exists so tests (and
// ad-hoc debugging) can cross-check a tessellated mesh's silhouette
// against a second, trusted rasterizer rather than trusting the
// triangulator to grade its own homework.
//
// Adapted from gio's raster.Rasterizer, which decoded a recorded op
// stream and fed gio's own path segments into an x/image/vector
// Rasterizer; this package skips the op-stream decoding (there is no
// recorded scene here) and rasterizes already-resolved point loops
// directly.
package rasterpreview

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/vectorforge/tessel/vecmath"
)

// Render rasterizes loops (each a closed polygon in the same space as
// bounds) filled with fillColor using the nonzero winding rule, into a
// freshly allocated image.RGBA sized to bounds.
func Render(bounds image.Rectangle, loops [][]vecmath.Vec2, fillColor color.NRGBA) *image.RGBA {
	img := image.NewRGBA(bounds)
	if bounds.Empty() || len(loops) == 0 {
		return img
	}
	vr := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	vr.DrawOp = draw.Over
	for _, loop := range loops {
		drawLoop(vr, loop, bounds.Min)
	}
	vr.Draw(img, bounds, image.NewUniform(fillColor), image.Point{})
	return img
}

func drawLoop(vr *vector.Rasterizer, loop []vecmath.Vec2, origin image.Point) {
	if len(loop) < 2 {
		return
	}
	off := vecmath.Pt(float32(-origin.X), float32(-origin.Y))
	start := loop[0].Add(off)
	vr.MoveTo(start.X, start.Y)
	for _, p := range loop[1:] {
		q := p.Add(off)
		vr.LineTo(q.X, q.Y)
	}
	vr.ClosePath()
}
