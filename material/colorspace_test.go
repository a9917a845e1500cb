// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"image/color"
	"testing"
)

func TestNRGBAToLinearRGBABoundary(t *testing.T) {
	for col := 0; col <= 0xFF; col += 17 {
		for alpha := 0; alpha <= 0xFF; alpha += 17 {
			in := color.NRGBA{R: uint8(col), A: uint8(alpha)}
			premul := NRGBAToLinearRGBA(in)
			if premul.A != uint8(alpha) {
				t.Errorf("%v: got A=%v want %v", in, premul.A, alpha)
			}
			if premul.R > premul.A {
				t.Errorf("%v: R=%v > A=%v", in, premul.R, premul.A)
			}
		}
	}
}

func TestLinearFromSRGBRoundtripOpaque(t *testing.T) {
	for col := 0; col <= 0xFF; col += 17 {
		want := color.NRGBA{R: uint8(col), G: uint8(col), B: uint8(col), A: 0xFF}
		got := LinearFromSRGB(want).SRGB()
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestSRGBTransparentIsZero(t *testing.T) {
	got := LinearFromSRGB(color.NRGBA{R: 200, G: 100, B: 50, A: 0}).SRGB()
	if got != (color.NRGBA{}) {
		t.Errorf("got %v, want zero value", got)
	}
}
