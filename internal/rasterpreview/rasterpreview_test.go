// SPDX-License-Identifier: Unlicense OR MIT

package rasterpreview

import (
	"image"
	"image/color"
	"testing"

	"github.com/vectorforge/tessel/vecmath"
)

func TestRenderFillsTriangleInterior(t *testing.T) {
	bounds := image.Rect(0, 0, 20, 20)
	loop := []vecmath.Vec2{vecmath.Pt(1, 1), vecmath.Pt(18, 1), vecmath.Pt(9, 18)}
	img := Render(bounds, [][]vecmath.Vec2{loop}, color.NRGBA{R: 255, A: 255})

	if c := img.RGBAAt(9, 5); c.A == 0 {
		t.Errorf("expected interior point (9,5) to be covered, got %v", c)
	}
	if c := img.RGBAAt(1, 19); c.A != 0 {
		t.Errorf("expected exterior point (1,19) to be uncovered, got %v", c)
	}
}

func TestRenderEmptyLoopsProducesBlankImage(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 4)
	img := Render(bounds, nil, color.NRGBA{R: 255, A: 255})
	for _, px := range img.Pix {
		if px != 0 {
			t.Fatalf("expected blank image, found nonzero pixel")
		}
	}
}
