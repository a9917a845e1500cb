// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"image/color"
	"math"
)

// RGBA is a premultiplied-alpha color in linear (non-gamma-corrected)
// color space, the representation gradient and blend math in this
// package operates on. Stops carry gamma-corrected color.RGBA values;
// LinearFromSRGB converts one into this space for interpolation, and
// SRGB converts back for storage in a vertex buffer.
type RGBA struct {
	R, G, B, A float32
}

// LinearFromSRGB converts a non-premultiplied sRGB color into
// premultiplied linear RGBA.
func LinearFromSRGB(c color.NRGBA) RGBA {
	a := float32(c.A) / 0xff
	return RGBA{
		R: srgbToLinear(c.R) * a,
		G: srgbToLinear(c.G) * a,
		B: srgbToLinear(c.B) * a,
		A: a,
	}
}

// SRGB converts a premultiplied linear color back to non-premultiplied
// sRGB, the inverse of LinearFromSRGB.
func (c RGBA) SRGB() color.NRGBA {
	if c.A == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: linearToSRGB(c.R / c.A),
		G: linearToSRGB(c.G / c.A),
		B: linearToSRGB(c.B / c.A),
		A: uint8(math.Round(float64(c.A) * 0xff)),
	}
}

// NRGBAToLinearRGBA converts a non-premultiplied sRGB color directly to
// a premultiplied color.RGBA still expressed in 8-bit channels, for
// callers that want premultiplication without carrying float32
// intermediates (piece vertex colors, mainly).
func NRGBAToLinearRGBA(c color.NRGBA) color.RGBA {
	lin := LinearFromSRGB(c)
	return color.RGBA{
		R: uint8(math.Round(float64(lin.R) * 0xff)),
		G: uint8(math.Round(float64(lin.G) * 0xff)),
		B: uint8(math.Round(float64(lin.B) * 0xff)),
		A: c.A,
	}
}

func srgbToLinear(c uint8) float32 {
	cf := float64(c) / 0xff
	var lin float64
	if cf <= 0.04045 {
		lin = cf / 12.92
	} else {
		lin = math.Pow((cf+0.055)/1.055, 2.4)
	}
	return float32(lin)
}

func linearToSRGB(lin float32) uint8 {
	l := float64(lin)
	if l <= 0 {
		return 0
	}
	if l >= 1 {
		return 0xff
	}
	var s float64
	if l <= 0.0031308 {
		s = l * 12.92
	} else {
		s = 1.055*math.Pow(l, 1/2.4) - 0.055
	}
	return uint8(math.Round(s * 0xff))
}
