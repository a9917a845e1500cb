// SPDX-License-Identifier: Unlicense OR MIT

package vectorimage

import (
	"github.com/vectorforge/tessel/errs"
	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/internal/filltess"
	"github.com/vectorforge/tessel/internal/infotex"
	"github.com/vectorforge/tessel/internal/pathbuild"
	"github.com/vectorforge/tessel/internal/piece"
	"github.com/vectorforge/tessel/internal/stroketess"
	"github.com/vectorforge/tessel/internal/textimage"
	"github.com/vectorforge/tessel/material"
	"github.com/vectorforge/tessel/vecmath"
)

// Builder records a vector command stream against a scratch arena, the
// way gio callers append to an op.Ops: Path is the append-only command
// recorder, and Text threads a caller's runes and ranges through it
// (TextRangeSpec.Start/Count are relative to the runes given to a
// single Text call; Builder offsets them into its own running buffer).
type Builder struct {
	Path *pathbuild.Builder

	arena      *arena.Arena
	pixelSize  float32
	text       []rune
	textureIDs map[any]uint32
}

// NewBuilder returns an empty Builder. pixelSize is the curve
// tessellator's unscaled chordal-error budget (see
// pathbuild.NewAssembler).
func NewBuilder(pixelSize float32) *Builder {
	return &Builder{
		Path:       &pathbuild.Builder{},
		arena:      arena.New(),
		pixelSize:  pixelSize,
		textureIDs: make(map[any]uint32),
	}
}

// Arena exposes the builder's scratch arena, mainly for tests that want
// to inspect intermediate pools.
func (b *Builder) Arena() *arena.Arena { return b.arena }

// Text appends runes to the builder's running text buffer and records a
// Text command followed by one TextRange command per entry in ranges,
// rebasing each range's Start by the buffer's length before this call.
func (b *Builder) Text(runes []rune, ranges []pathbuild.TextRangeSpec) {
	base := len(b.text)
	b.text = append(b.text, runes...)
	b.Path.Text(len(ranges))
	for _, rg := range ranges {
		rg.Start += base
		b.Path.TextRange(rg)
	}
}

// Reset discards every recorded command and resets the scratch arena,
// readying the Builder for a new image while reusing its pool capacity.
func (b *Builder) Reset() {
	b.Path.Reset()
	b.arena.Reset()
	b.text = b.text[:0]
	for k := range b.textureIDs {
		delete(b.textureIDs, k)
	}
}

// Build replays the recorded command stream, tessellating strokes and
// fills, emitting image quads and text draw-info, coalescing all shape
// and image geometry into pieces, and packing info records into
// textures. shared is consulted before local when resolving a material
// reference (material.Resolve's shared-then-local order).
func (b *Builder) Build(shared, local *material.Palette, width, height float32, srgb bool) (*VectorImage, error) {
	const op = "vectorimage.Builder.Build"
	a := b.arena
	asm := pathbuild.NewAssembler(a, b.pixelSize)
	reqs, err := asm.Run(b.Path.Commands())
	if err != nil {
		return nil, errs.E(op, errs.InvalidArg, err)
	}

	co := piece.NewCoalescer(a)
	for _, req := range reqs {
		switch req.Kind {
		case pathbuild.RequestStroke:
			if err := b.buildStroke(a, co, shared, local, req); err != nil {
				return nil, err
			}
		case pathbuild.RequestFill:
			if err := b.buildFill(a, co, shared, local, req); err != nil {
				return nil, err
			}
		case pathbuild.RequestImage:
			if err := b.buildImage(a, co, req); err != nil {
				return nil, err
			}
		case pathbuild.RequestText:
			if err := b.buildText(a, shared, local, req); err != nil {
				return nil, err
			}
		}
	}

	textures := infotex.Pack(a.Infos.Slice())

	img := &VectorImage{
		Width:         width,
		Height:        height,
		SRGB:          srgb,
		ShapeVertices: append([]arena.ShapeVertex(nil), a.ShapeVertices.Slice()...),
		ImageVertices: append([]arena.ImageVertex(nil), a.ImageVertices.Slice()...),
		Indices:       append([]uint32(nil), a.Indices.Slice()...),
		Infos:         append([]arena.InfoRecord(nil), a.Infos.Slice()...),
		Pieces:        append([]arena.Piece(nil), a.Pieces.Slice()...),
		TextLayouts:   append([]arena.TextLayoutHandle(nil), a.TextLayouts.Slice()...),
		TextDrawInfos: append([]arena.TextDrawInfo(nil), a.TextDrawInfos.Slice()...),
		InfoTextures:  textures,
		Local:         local,
	}
	return img, nil
}

func (b *Builder) buildStroke(a *arena.Arena, co *piece.Coalescer, shared, local *material.Palette, req pathbuild.Request) error {
	const op = "vectorimage.Builder.buildStroke"
	_, matIndex, source, ok := material.Resolve(shared, local, req.Stroke.Material)
	if !ok {
		return errs.E(op, errs.NotFound)
	}
	for _, loopIdx := range req.LoopIndices {
		loop := a.Loops.At(loopIdx)
		points := a.Points.Slice()[loop.PointStart : loop.PointStart+loop.PointCount]
		mesh := stroketess.Tessellate(a, points, req.Stroke, req.PixelSize)
		if mesh.VertexStart == mesh.VertexEnd {
			continue
		}
		infoIndex := a.Infos.Append(arena.InfoRecord{
			Bounds:    mesh.Bounds,
			Transform: req.Transform,
			Kind:      arena.InfoShape,
			Opacity:   mesh.EffectiveOp,
			DashArray: req.Stroke.DashArray,
		})
		mesh.PatchShapeIndex(a, uint16(infoIndex))
		patchMaterialIndex(a, mesh.VertexStart, mesh.VertexEnd, uint16(matIndex))

		key := arena.PieceKey{
			Variant:         arena.Line,
			MaterialSource:  arena.MaterialSource(source),
			InfoTextureSlot: uint32(infoIndex / 1024),
		}
		indices := append([]uint32(nil), a.Indices.Slice()[mesh.IndexStart:mesh.IndexEnd]...)
		co.Add(key, infoIndex, indices)
	}
	return nil
}

func (b *Builder) buildFill(a *arena.Arena, co *piece.Coalescer, shared, local *material.Palette, req pathbuild.Request) error {
	const op = "vectorimage.Builder.buildFill"
	kind, matIndex, source, ok := material.Resolve(shared, local, req.FillMaterial)
	if !ok {
		return errs.E(op, errs.NotFound)
	}
	if len(req.LoopIndices) == 0 {
		return nil
	}
	loops := make([][]vecmath.Vec2, len(req.LoopIndices))
	for i, loopIdx := range req.LoopIndices {
		loop := a.Loops.At(loopIdx)
		pts := a.Points.Slice()[loop.PointStart : loop.PointStart+loop.PointCount]
		vs := make([]vecmath.Vec2, len(pts))
		for j, p := range pts {
			vs[j] = p.Position
		}
		loops[i] = vs
	}
	mesh, err := filltess.Tessellate(a, loops, req.FillRule, req.FillSimple)
	if err != nil {
		return errs.E(op, errs.InvalidArg, err)
	}
	if mesh.VertexStart == mesh.VertexEnd {
		return nil
	}
	infoIndex := a.Infos.Append(arena.InfoRecord{
		Bounds:    mesh.Bounds,
		Transform: req.Transform,
		Kind:      arena.InfoShape,
		Opacity:   req.FillOpacity,
	})
	mesh.PatchShapeIndex(a, uint16(infoIndex))
	patchMaterialIndex(a, mesh.VertexStart, mesh.VertexEnd, uint16(matIndex))

	key := arena.PieceKey{
		Variant:         fillVariantFor(kind),
		MaterialSource:  arena.MaterialSource(source),
		InfoTextureSlot: uint32(infoIndex / 1024),
	}
	indices := append([]uint32(nil), a.Indices.Slice()[mesh.IndexStart:mesh.IndexEnd]...)
	co.Add(key, infoIndex, indices)
	return nil
}

func (b *Builder) buildImage(a *arena.Arena, co *piece.Coalescer, req pathbuild.Request) error {
	const op = "vectorimage.Builder.buildImage"
	mesh, err := textimage.EmitImage(a, req.Image, req.Transform, 1)
	if err != nil {
		return errs.E(op, errs.InvalidArg, err)
	}
	key := arena.PieceKey{
		Variant:         arena.Image,
		Texture:         b.textureID(req.Image.Texture),
		InfoTextureSlot: uint32(mesh.InfoIndex / 1024),
	}
	indices := append([]uint32(nil), a.Indices.Slice()[mesh.IndexStart:mesh.IndexEnd]...)
	co.Add(key, mesh.InfoIndex, indices)
	return nil
}

func (b *Builder) buildText(a *arena.Arena, shared, local *material.Palette, req pathbuild.Request) error {
	const op = "vectorimage.Builder.buildText"
	_, err := textimage.EmitText(a, shared, local, req.Text, b.text, req.Transform)
	if err != nil {
		return errs.E(op, errs.InvalidArg, err)
	}
	return nil
}

// textureID assigns a stable, first-seen-order id to an opaque texture
// reference, for use as a PieceKey.Texture coalescing key; 0 is
// reserved for "no texture".
func (b *Builder) textureID(tex any) uint32 {
	if tex == nil {
		return 0
	}
	if id, ok := b.textureIDs[tex]; ok {
		return id
	}
	id := uint32(len(b.textureIDs)) + 1
	b.textureIDs[tex] = id
	return id
}

func fillVariantFor(kind material.Kind) arena.ShaderVariant {
	switch kind {
	case material.KindLinearGradient:
		return arena.FillLinearGradient
	case material.KindRadialGradient:
		return arena.FillRadialGradient
	default:
		return arena.FillColor
	}
}

func patchMaterialIndex(a *arena.Arena, start, end int, matIndex uint16) {
	for i := start; i < end; i++ {
		a.ShapeVertices.At(i).MaterialIndex = matIndex
	}
}
