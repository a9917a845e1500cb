// SPDX-License-Identifier: Unlicense OR MIT

// Package piece implements the draw-piece coalescer (C7): it groups
// triangle-mesh emissions from stroketess/filltess/textimage into
// contiguous draw units keyed by shader variant, texture, material
// source and info-texture slot, splitting a piece when its vertex
// indices would overflow the 16-bit range a GPU index buffer can
// address relative to a single base-vertex.
//
// Grounded on gio's gpu/caches.go resource-cache idiom (track
// "current" state, decide reuse-vs-new by key comparison), adapted
// from a per-frame resource cache into a per-emission draw-unit
// coalescer.
package piece

import "github.com/vectorforge/tessel/internal/arena"

// MaxVertexIndex is the largest vertex index offset a single piece
// may reference relative to its VertexOffset.
const MaxVertexIndex = 65535

// Coalescer accumulates index emissions into a.Pieces, opening a new
// piece whenever the key changes, an info-texture-slot boundary is
// crossed, or the running vertex-index range would overflow
// MaxVertexIndex.
type Coalescer struct {
	arena  *arena.Arena
	curr   int
	has    bool
	slot   int      // infoIndex/1024 of the current piece
	triBuf []uint32 // absolute indices of the current not-yet-complete triangle
}

// NewCoalescer returns a Coalescer appending into a.
func NewCoalescer(a *arena.Arena) *Coalescer {
	return &Coalescer{arena: a}
}

// Add appends indices (absolute indices into a.ShapeVertices or
// a.ImageVertices, in triangle order) under key, whose InfoTextureSlot
// field must already equal infoIndex/1024. infoIndex is the emitting
// shape/text info record's index, used to detect 1024-boundary
// crossings that force a new piece even when key otherwise matches.
func (c *Coalescer) Add(key arena.PieceKey, infoIndex int, indices []uint32) {
	if len(indices) == 0 {
		return
	}
	slot := infoIndex / 1024
	if !c.has || c.arena.Pieces.At(c.curr).Key != key || slot != c.slot {
		base := indices[0]
		for _, idx := range indices[1:] {
			if idx < base {
				base = idx
			}
		}
		c.open(key, base)
		c.slot = slot
	}
	for _, idx := range indices {
		c.addIndex(key, idx)
	}
}

func (c *Coalescer) open(key arena.PieceKey, vertexBase uint32) {
	idx := c.arena.Pieces.Append(arena.Piece{
		Key:          key,
		VertexOffset: vertexBase,
		IndexStart:   c.arena.Indices.Len(),
	})
	c.curr = idx
	c.has = true
	c.triBuf = c.triBuf[:0]
}

func (c *Coalescer) addIndex(key arena.PieceKey, idx uint32) {
	p := c.arena.Pieces.At(c.curr)
	if overflows(idx, p.VertexOffset) {
		pending := append([]uint32(nil), c.triBuf...)
		vertexBase := idx
		for _, pi := range pending {
			if pi < vertexBase {
				vertexBase = pi
			}
		}
		// The pending indices are already the last len(pending) entries
		// of a.Indices; hand them from the old piece to the new one.
		c.arena.Pieces.At(c.curr).IndexCount -= len(pending)
		c.open(key, vertexBase)
		p = c.arena.Pieces.At(c.curr)
		p.IndexStart -= len(pending)
		p.IndexCount = len(pending)
		c.triBuf = append(c.triBuf, pending...)
	}
	c.arena.Indices.Append(idx)
	p.IndexCount++
	c.triBuf = append(c.triBuf, idx)
	if len(c.triBuf) == 3 {
		c.triBuf = c.triBuf[:0]
	}
}

func overflows(idx, base uint32) bool {
	if idx < base {
		return true
	}
	return int64(idx)-int64(base) > MaxVertexIndex
}
