// SPDX-License-Identifier: Unlicense OR MIT

// Package material holds the color and gradient material tables
// referenced by fill, stroke and text commands, following the layout
// gio's op/paint package uses for paint sources, extended with the
// named shared/local palette split the component design requires.
package material

import (
	"image/color"

	"github.com/vectorforge/tessel/vecmath"
)

// Source distinguishes a material resolved from the image's local
// palette from one resolved from a palette shared across images.
type Source uint8

const (
	Shared Source = iota
	Local
)

// Kind identifies which of the three material shapes a Ref resolves
// to, driving the shader-variant selection in package piece.
type Kind uint8

const (
	KindColor Kind = iota
	KindLinearGradient
	KindRadialGradient
)

// Ref names a material to be resolved against a Palette at tessellation
// time; the zero Ref names no material (fully transparent).
type Ref struct {
	Name string
}

// Valid reports whether the reference names a material.
func (r Ref) Valid() bool { return r.Name != "" }

// EdgeBehavior controls how a gradient samples beyond its stop range.
type EdgeBehavior uint8

const (
	EdgeClamp EdgeBehavior = iota
	EdgeRepeat
	EdgeMirror
	EdgeTransparent
)

// ColorSpace selects the interpolation space used between gradient
// stops.
type ColorSpace uint8

const (
	SpaceRGB ColorSpace = iota
	SpaceHSL
)

// Stop is one color at a position along a gradient's [0,1] axis.
type Stop struct {
	Position float32
	Color    color.RGBA
}

// ColorMaterial is a flat color fill.
type ColorMaterial struct {
	Name  string
	Color color.RGBA
}

// LinearGradient interpolates Stops along the segment from Start to
// End, both in the material's own Transform space.
type LinearGradient struct {
	Name      string
	Stops     []Stop
	Start     vecmath.Vec2
	End       vecmath.Vec2
	Edge      EdgeBehavior
	Space     ColorSpace
	Transform vecmath.Affine2D
}

// RadialGradient interpolates Stops outward from Focus (with radius
// FocusRadius) to Center (with radius Radius).
type RadialGradient struct {
	Name        string
	Stops       []Stop
	Center      vecmath.Vec2
	Radius      float32
	Focus       vecmath.Vec2
	FocusRadius float32
	Edge        EdgeBehavior
	Space       ColorSpace
	Transform   vecmath.Affine2D
}

// Palette is a named collection of materials of all three kinds. The
// shared palette and each vector image's local palette are both
// Palettes; only the Source tag attached at resolution time
// distinguishes them.
type Palette struct {
	colors map[string]ColorMaterial
	linear map[string]LinearGradient
	radial map[string]RadialGradient
	order  []string // insertion order, for stable index assignment
}

// NewPalette returns an empty palette ready for use.
func NewPalette() *Palette {
	return &Palette{
		colors: make(map[string]ColorMaterial),
		linear: make(map[string]LinearGradient),
		radial: make(map[string]RadialGradient),
	}
}

func (p *Palette) noteName(name string) {
	if _, ok := p.index(name); !ok {
		p.order = append(p.order, name)
	}
}

// AddColor inserts or replaces a flat color material.
func (p *Palette) AddColor(m ColorMaterial) {
	p.noteName(m.Name)
	p.colors[m.Name] = m
}

// AddLinearGradient inserts or replaces a linear gradient material.
func (p *Palette) AddLinearGradient(m LinearGradient) {
	p.noteName(m.Name)
	p.linear[m.Name] = m
}

// AddRadialGradient inserts or replaces a radial gradient material.
func (p *Palette) AddRadialGradient(m RadialGradient) {
	p.noteName(m.Name)
	p.radial[m.Name] = m
}

// Lookup resolves name to its kind and stable index within this
// palette, in the order materials were first added. ok is false if
// name is not present.
func (p *Palette) Lookup(name string) (kind Kind, index int, ok bool) {
	idx, found := p.index(name)
	if !found {
		return 0, 0, false
	}
	if _, isColor := p.colors[name]; isColor {
		return KindColor, idx, true
	}
	if _, isLinear := p.linear[name]; isLinear {
		return KindLinearGradient, idx, true
	}
	if _, isRadial := p.radial[name]; isRadial {
		return KindRadialGradient, idx, true
	}
	return 0, 0, false
}

func (p *Palette) index(name string) (int, bool) {
	for i, n := range p.order {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Len returns the number of distinct material names in the palette.
func (p *Palette) Len() int { return len(p.order) }

// Names returns the palette's material names in stable insertion
// order.
func (p *Palette) Names() []string { return p.order }

// ColorMaterial returns the named color material, for callers (such as
// the binary format writer) that already know the name is KindColor.
func (p *Palette) ColorMaterial(name string) (ColorMaterial, bool) {
	m, ok := p.colors[name]
	return m, ok
}

// LinearGradient returns the named linear gradient material.
func (p *Palette) LinearGradient(name string) (LinearGradient, bool) {
	m, ok := p.linear[name]
	return m, ok
}

// RadialGradient returns the named radial gradient material.
func (p *Palette) RadialGradient(name string) (RadialGradient, bool) {
	m, ok := p.radial[name]
	return m, ok
}

// Resolve looks ref up in shared first, then local, matching
// VectorFill.c's shared-then-local material lookup order. ok is false
// if ref is invalid or found in neither palette.
func Resolve(shared, local *Palette, ref Ref) (kind Kind, index int, source Source, ok bool) {
	if !ref.Valid() {
		return 0, 0, Shared, false
	}
	if shared != nil {
		if k, i, found := shared.Lookup(ref.Name); found {
			return k, i, Shared, true
		}
	}
	if local != nil {
		if k, i, found := local.Lookup(ref.Name); found {
			return k, i, Local, true
		}
	}
	return 0, 0, Shared, false
}
