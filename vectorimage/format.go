// SPDX-License-Identifier: Unlicense OR MIT

package vectorimage

import (
	"bufio"
	"encoding/binary"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/vectorforge/tessel/errs"
	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

// magic identifies the binary vector-image format; version lets Load
// reject a file encoded by an incompatible future writer outright
// rather than misparsing it.
const (
	magic   uint32 = 0x76654b67 // "vKg" + 0x67, arbitrary
	version uint32 = 1
)

// tag identifies a Command's Op within the saved stream. Kept distinct
// from pathbuild.Op so the wire format doesn't break if Op's iota
// ordering ever changes.
type tag uint8

const (
	tagStartPath tag = iota
	tagMove
	tagLine
	tagBezier
	tagQuadratic
	tagArc
	tagClosePath
	tagEllipse
	tagRectangle
	tagRoundedRectangle
	tagStrokePath
	tagFillPath
	tagImage
	tagText
	tagTextRange
)

// Resources resolves the named external texture and font references a
// saved command stream carries in place of live handles, per spec's
// NotFound error kind ("font/texture not found in vector resources").
type Resources interface {
	Texture(name string) (any, bool)
	Font(name string) (any, bool)
}

// Named is implemented by a texture or font handle that Save can
// persist by name; a handle that doesn't implement it can be used at
// runtime but cannot be saved (Save reports FormatError).
type Named interface {
	ResourceName() string
}

// Save writes width, height, the srgb flag, local's material tables and
// b's recorded command stream (plus its text buffer) to w, in the
// layout spec.md §6 describes for dsVectorImage_loadStream.
func (b *Builder) Save(w io.Writer, local *material.Palette, width, height float32, srgb bool) error {
	const op = "vectorimage.Builder.Save"
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}
	e.u32(magic)
	e.u32(version)
	e.f32(width)
	e.f32(height)
	e.bool(srgb)
	if err := e.palette(local); err != nil {
		return errs.E(op, errs.FormatError, err)
	}
	e.runes(b.text)
	if err := e.commands(b.Path.Commands()); err != nil {
		return errs.E(op, errs.FormatError, err)
	}
	if e.err != nil {
		return errs.E(op, errs.FormatError, e.err)
	}
	if err := bw.Flush(); err != nil {
		return errs.E(op, errs.FormatError, err)
	}
	return nil
}

// Load reads a stream written by Save, resolving named texture/font
// references against resources, and returns a ready-to-Build Builder
// along with the local palette and image header fields it carried.
func Load(r io.Reader, resources Resources, pixelSize float32) (*Builder, *material.Palette, float32, float32, bool, error) {
	const op = "vectorimage.Load"
	d := &decoder{r: r}
	if got := d.u32(); got != magic {
		return nil, nil, 0, 0, false, errs.E(op, errs.FormatError)
	}
	if got := d.u32(); got != version {
		return nil, nil, 0, 0, false, errs.E(op, errs.FormatError)
	}
	width := d.f32()
	height := d.f32()
	srgb := d.bool()
	local, err := d.palette()
	if err != nil {
		return nil, nil, 0, 0, false, errs.E(op, errs.FormatError, err)
	}
	text := d.runes()
	cmds, err := d.commands(resources)
	if err != nil {
		return nil, nil, 0, 0, false, err
	}
	if d.err != nil {
		return nil, nil, 0, 0, false, errs.E(op, errs.FormatError, d.err)
	}

	b := NewBuilder(pixelSize)
	b.text = text
	for _, c := range cmds {
		b.Path.Raw(c)
	}
	return b, local, width, height, srgb, nil
}

// --- encoder -----------------------------------------------------------

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}

func (e *encoder) u8(v uint8)   { e.write([]byte{v}) }
func (e *encoder) bool(v bool)  { if v { e.u8(1) } else { e.u8(0) } }
func (e *encoder) u32(v uint32) { var buf [4]byte; binary.LittleEndian.PutUint32(buf[:], v); e.write(buf[:]) }
func (e *encoder) i32(v int32)  { e.u32(uint32(v)) }
func (e *encoder) f32(v float32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	e.write(buf[:])
}

func (e *encoder) vec2(v vecmath.Vec2) { e.f32(v.X); e.f32(v.Y) }
func (e *encoder) rect(r vecmath.Rect) { e.vec2(r.Min); e.vec2(r.Max) }
func (e *encoder) affine(a vecmath.Affine2D) {
	sx, hx, ox, hy, sy, oy := a.Elems()
	e.f32(sx)
	e.f32(hx)
	e.f32(ox)
	e.f32(hy)
	e.f32(sy)
	e.f32(oy)
}
func (e *encoder) rgba(c color.RGBA) { e.write([]byte{c.R, c.G, c.B, c.A}) }

func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	e.write([]byte(s))
}

func (e *encoder) materialRef(ref material.Ref) { e.str(ref.Name) }

func (e *encoder) runes(rs []rune) {
	e.u32(uint32(len(rs)))
	for _, r := range rs {
		e.i32(int32(r))
	}
}

func (e *encoder) stops(stops []material.Stop) {
	e.u32(uint32(len(stops)))
	for _, s := range stops {
		e.f32(s.Position)
		e.rgba(s.Color)
	}
}

func (e *encoder) palette(p *material.Palette) error {
	if p == nil {
		e.u32(0)
		e.u32(0)
		e.u32(0)
		return nil
	}
	var colors []material.ColorMaterial
	var linears []material.LinearGradient
	var radials []material.RadialGradient
	for _, name := range p.Names() {
		kind, _, ok := p.Lookup(name)
		if !ok {
			continue
		}
		switch kind {
		case material.KindColor:
			colors = append(colors, colorByName(p, name))
		case material.KindLinearGradient:
			linears = append(linears, linearByName(p, name))
		case material.KindRadialGradient:
			radials = append(radials, radialByName(p, name))
		}
	}
	e.u32(uint32(len(colors)))
	for _, c := range colors {
		e.str(c.Name)
		e.rgba(c.Color)
	}
	e.u32(uint32(len(linears)))
	for _, g := range linears {
		e.str(g.Name)
		e.stops(g.Stops)
		e.vec2(g.Start)
		e.vec2(g.End)
		e.u8(uint8(g.Edge))
		e.u8(uint8(g.Space))
		e.affine(g.Transform)
	}
	e.u32(uint32(len(radials)))
	for _, g := range radials {
		e.str(g.Name)
		e.stops(g.Stops)
		e.vec2(g.Center)
		e.f32(g.Radius)
		e.vec2(g.Focus)
		e.f32(g.FocusRadius)
		e.u8(uint8(g.Edge))
		e.u8(uint8(g.Space))
		e.affine(g.Transform)
	}
	return nil
}

func (e *encoder) commands(cmds []pathbuild.Command) error {
	e.u32(uint32(len(cmds)))
	for _, c := range cmds {
		if err := e.command(c); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) command(c pathbuild.Command) error {
	switch c.Op {
	case pathbuild.OpStartPath:
		e.u8(uint8(tagStartPath))
		e.affine(c.Transform)
		e.bool(c.Simple)
	case pathbuild.OpMove:
		e.u8(uint8(tagMove))
		e.vec2(c.To)
	case pathbuild.OpLine:
		e.u8(uint8(tagLine))
		e.vec2(c.To)
	case pathbuild.OpBezier:
		e.u8(uint8(tagBezier))
		e.vec2(c.Ctrl0)
		e.vec2(c.Ctrl1)
		e.vec2(c.To)
	case pathbuild.OpQuadratic:
		e.u8(uint8(tagQuadratic))
		e.vec2(c.Ctrl)
		e.vec2(c.To)
	case pathbuild.OpArc:
		e.u8(uint8(tagArc))
		e.vec2(c.To)
		e.vec2(c.Radius)
		e.f32(c.Rotation)
		e.bool(c.LargeArc)
		e.bool(c.Clockwise)
	case pathbuild.OpClosePath:
		e.u8(uint8(tagClosePath))
	case pathbuild.OpEllipse:
		e.u8(uint8(tagEllipse))
		e.vec2(c.Center)
		e.vec2(c.Radius)
	case pathbuild.OpRectangle:
		e.u8(uint8(tagRectangle))
		e.rect(c.Rect)
	case pathbuild.OpRoundedRectangle:
		e.u8(uint8(tagRoundedRectangle))
		e.rect(c.Rect)
		for _, r := range c.Corners {
			e.f32(r)
		}
	case pathbuild.OpStrokePath:
		e.u8(uint8(tagStrokePath))
		e.strokeStyle(c.Stroke)
	case pathbuild.OpFillPath:
		e.u8(uint8(tagFillPath))
		e.materialRef(c.FillMaterial)
		e.f32(c.FillOpacity)
		e.u8(uint8(c.Rule))
	case pathbuild.OpImage:
		e.u8(uint8(tagImage))
		name, err := textureName(c.TextureRef)
		if err != nil {
			return err
		}
		e.str(name)
		e.rect(c.Rect)
	case pathbuild.OpText:
		e.u8(uint8(tagText))
		e.i32(int32(c.RangeCount))
	case pathbuild.OpTextRange:
		e.u8(uint8(tagTextRange))
		if err := e.textRange(c.Range); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) strokeStyle(s pathbuild.StrokeStyle) {
	e.materialRef(s.Material)
	e.f32(s.Opacity)
	e.u8(uint8(s.Cap))
	e.u8(uint8(s.Join))
	e.f32(s.Width)
	e.f32(s.MiterLimit)
	for _, d := range s.DashArray {
		e.f32(d)
	}
}

func (e *encoder) textRange(rg pathbuild.TextRangeSpec) error {
	e.i32(int32(rg.Start))
	e.i32(int32(rg.Count))
	name, err := fontName(rg.Font)
	if err != nil {
		return err
	}
	e.str(name)
	e.i32(int32(rg.PxPerEm))
	e.materialRef(rg.FillMaterial)
	e.materialRef(rg.OutlineMaterial)
	e.f32(rg.OutlineWidth)
	e.f32(rg.Embolden)
	e.f32(rg.Slant)
	return nil
}

func textureName(tex any) (string, error) {
	if tex == nil {
		return "", nil
	}
	n, ok := tex.(Named)
	if !ok {
		return "", errs.E("vectorimage.Save", errs.FormatError)
	}
	return n.ResourceName(), nil
}

func fontName(font any) (string, error) {
	if font == nil {
		return "", nil
	}
	n, ok := font.(Named)
	if !ok {
		return "", errs.E("vectorimage.Save", errs.FormatError)
	}
	return n.ResourceName(), nil
}

// --- decoder -----------------------------------------------------------

type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) read(p []byte) {
	if d.err != nil {
		return
	}
	_, d.err = io.ReadFull(d.r, p)
}

func (d *decoder) u8() uint8 {
	var buf [1]byte
	d.read(buf[:])
	return buf[0]
}
func (d *decoder) bool() bool { return d.u8() != 0 }
func (d *decoder) u32() uint32 {
	var buf [4]byte
	d.read(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}
func (d *decoder) i32() int32 { return int32(d.u32()) }
func (d *decoder) f32() float32 {
	var buf [4]byte
	d.read(buf[:])
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:]))
}

func (d *decoder) vec2() vecmath.Vec2          { return vecmath.Pt(d.f32(), d.f32()) }
func (d *decoder) rect() vecmath.Rect          { return vecmath.Rect{Min: d.vec2(), Max: d.vec2()} }
func (d *decoder) affine() vecmath.Affine2D {
	sx, hx, ox, hy, sy, oy := d.f32(), d.f32(), d.f32(), d.f32(), d.f32(), d.f32()
	return vecmath.NewAffine2D(sx, hx, ox, hy, sy, oy)
}
func (d *decoder) rgba() color.RGBA {
	var buf [4]byte
	d.read(buf[:])
	return color.RGBA{R: buf[0], G: buf[1], B: buf[2], A: buf[3]}
}

func (d *decoder) str() string {
	n := d.u32()
	if d.err != nil || n == 0 {
		return ""
	}
	buf := make([]byte, n)
	d.read(buf)
	return string(buf)
}

func (d *decoder) materialRef() material.Ref { return material.Ref{Name: d.str()} }

func (d *decoder) runes() []rune {
	n := d.u32()
	if d.err != nil {
		return nil
	}
	rs := make([]rune, n)
	for i := range rs {
		rs[i] = rune(d.i32())
	}
	return rs
}

func (d *decoder) stopSlice() []material.Stop {
	n := d.u32()
	if d.err != nil {
		return nil
	}
	stops := make([]material.Stop, n)
	for i := range stops {
		stops[i] = material.Stop{Position: d.f32(), Color: d.rgba()}
	}
	return stops
}

func (d *decoder) palette() (*material.Palette, error) {
	p := material.NewPalette()
	colorCount := d.u32()
	for i := uint32(0); i < colorCount; i++ {
		name := d.str()
		p.AddColor(material.ColorMaterial{Name: name, Color: d.rgba()})
	}
	linearCount := d.u32()
	for i := uint32(0); i < linearCount; i++ {
		name := d.str()
		stops := d.stopSlice()
		start := d.vec2()
		end := d.vec2()
		edge := material.EdgeBehavior(d.u8())
		space := material.ColorSpace(d.u8())
		transform := d.affine()
		p.AddLinearGradient(material.LinearGradient{Name: name, Stops: stops, Start: start, End: end, Edge: edge, Space: space, Transform: transform})
	}
	radialCount := d.u32()
	for i := uint32(0); i < radialCount; i++ {
		name := d.str()
		stops := d.stopSlice()
		center := d.vec2()
		radius := d.f32()
		focus := d.vec2()
		focusRadius := d.f32()
		edge := material.EdgeBehavior(d.u8())
		space := material.ColorSpace(d.u8())
		transform := d.affine()
		p.AddRadialGradient(material.RadialGradient{Name: name, Stops: stops, Center: center, Radius: radius, Focus: focus, FocusRadius: focusRadius, Edge: edge, Space: space, Transform: transform})
	}
	if d.err != nil {
		return nil, d.err
	}
	return p, nil
}

func (d *decoder) commands(resources Resources) ([]pathbuild.Command, error) {
	const op = "vectorimage.Load"
	n := d.u32()
	cmds := make([]pathbuild.Command, 0, n)
	for i := uint32(0); i < n && d.err == nil; i++ {
		c, err := d.command(resources)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	if d.err != nil {
		return nil, errs.E(op, errs.FormatError, d.err)
	}
	return cmds, nil
}

func (d *decoder) command(resources Resources) (pathbuild.Command, error) {
	const op = "vectorimage.Load"
	t := tag(d.u8())
	var c pathbuild.Command
	switch t {
	case tagStartPath:
		c = pathbuild.Command{Op: pathbuild.OpStartPath, Transform: d.affine(), Simple: d.bool()}
	case tagMove:
		c = pathbuild.Command{Op: pathbuild.OpMove, To: d.vec2()}
	case tagLine:
		c = pathbuild.Command{Op: pathbuild.OpLine, To: d.vec2()}
	case tagBezier:
		c = pathbuild.Command{Op: pathbuild.OpBezier, Ctrl0: d.vec2(), Ctrl1: d.vec2(), To: d.vec2()}
	case tagQuadratic:
		c = pathbuild.Command{Op: pathbuild.OpQuadratic, Ctrl: d.vec2(), To: d.vec2()}
	case tagArc:
		c = pathbuild.Command{Op: pathbuild.OpArc, To: d.vec2(), Radius: d.vec2(), Rotation: d.f32(), LargeArc: d.bool(), Clockwise: d.bool()}
	case tagClosePath:
		c = pathbuild.Command{Op: pathbuild.OpClosePath}
	case tagEllipse:
		c = pathbuild.Command{Op: pathbuild.OpEllipse, Center: d.vec2(), Radius: d.vec2()}
	case tagRectangle:
		c = pathbuild.Command{Op: pathbuild.OpRectangle, Rect: d.rect()}
	case tagRoundedRectangle:
		r := d.rect()
		var corners [4]float32
		for i := range corners {
			corners[i] = d.f32()
		}
		c = pathbuild.Command{Op: pathbuild.OpRoundedRectangle, Rect: r, Corners: corners}
	case tagStrokePath:
		c = pathbuild.Command{Op: pathbuild.OpStrokePath, Stroke: d.strokeStyle()}
	case tagFillPath:
		mat := d.materialRef()
		opacity := d.f32()
		rule := pathbuild.FillRule(d.u8())
		c = pathbuild.Command{Op: pathbuild.OpFillPath, FillMaterial: mat, FillOpacity: opacity, Rule: rule}
	case tagImage:
		name := d.str()
		rect := d.rect()
		var texRef any
		if name != "" {
			tex, ok := resources.Texture(name)
			if !ok {
				return pathbuild.Command{}, errs.E(op, errs.NotFound)
			}
			texRef = tex
		}
		c = pathbuild.Command{Op: pathbuild.OpImage, TextureRef: texRef, Rect: rect}
	case tagText:
		c = pathbuild.Command{Op: pathbuild.OpText, RangeCount: int(d.i32())}
	case tagTextRange:
		rg, err := d.textRange(resources)
		if err != nil {
			return pathbuild.Command{}, err
		}
		c = pathbuild.Command{Op: pathbuild.OpTextRange, Range: rg}
	default:
		return pathbuild.Command{}, errs.E(op, errs.FormatError)
	}
	return c, nil
}

func (d *decoder) strokeStyle() pathbuild.StrokeStyle {
	mat := d.materialRef()
	opacity := d.f32()
	capType := pathbuild.CapType(d.u8())
	join := pathbuild.JoinType(d.u8())
	width := d.f32()
	miterLimit := d.f32()
	var dash [4]float32
	for i := range dash {
		dash[i] = d.f32()
	}
	return pathbuild.StrokeStyle{Material: mat, Opacity: opacity, Cap: capType, Join: join, Width: width, MiterLimit: miterLimit, DashArray: dash}
}

func (d *decoder) textRange(resources Resources) (pathbuild.TextRangeSpec, error) {
	const op = "vectorimage.Load"
	start := int(d.i32())
	count := int(d.i32())
	name := d.str()
	pxPerEm := fixed.Int26_6(d.i32())
	fill := d.materialRef()
	outline := d.materialRef()
	outlineWidth := d.f32()
	embolden := d.f32()
	slant := d.f32()
	var font any
	if name != "" {
		f, ok := resources.Font(name)
		if !ok {
			return pathbuild.TextRangeSpec{}, errs.E(op, errs.NotFound)
		}
		font = f
	}
	return pathbuild.TextRangeSpec{
		Start: start, Count: count, Font: font, PxPerEm: pxPerEm,
		FillMaterial: fill, OutlineMaterial: outline, OutlineWidth: outlineWidth,
		Embolden: embolden, Slant: slant,
	}, nil
}

func colorByName(p *material.Palette, name string) material.ColorMaterial {
	m, _ := p.ColorMaterial(name)
	return m
}

func linearByName(p *material.Palette, name string) material.LinearGradient {
	m, _ := p.LinearGradient(name)
	return m
}

func radialByName(p *material.Palette, name string) material.RadialGradient {
	m, _ := p.RadialGradient(name)
	return m
}
