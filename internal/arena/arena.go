// SPDX-License-Identifier: Unlicense OR MIT

// Package arena implements the growable, reset-not-freed scratch
// pools shared by the tessellator packages (pathbuild, stroketess,
// filltess, textimage, piece, infotex) across a single image build.
//
// The design mirrors gioui.org/internal/ops.Ops: append grows the
// backing slice geometrically and reset truncates the logical length
// while keeping the backing array, so repeated builds amortize to
// zero allocations once the pools reach their steady-state size.
package arena

import "github.com/vectorforge/tessel/vecmath"

// Allocator tracks allocation bookkeeping for a scratch arena,
// decoupling the growth telemetry from the data plane pools
// themselves.
type Allocator struct {
	current int
	total   int
}

// Note records an allocation (or, with a negative delta, a
// deallocation) of n bytes.
func (a *Allocator) Note(n int) {
	a.current += n
	if n > 0 {
		a.total += n
	}
}

// Current returns the bytes currently considered live.
func (a *Allocator) Current() int { return a.current }

// Total returns the cumulative bytes ever allocated through this
// allocator, including bytes later released.
func (a *Allocator) Total() int { return a.total }

// Pool is an append-only, reset-not-freed growable slice of T with
// amortized O(1) growth. The zero Pool is ready to use.
type Pool[T any] struct {
	alloc *Allocator
	data  []T
}

// NewPool returns a Pool that reports its growth to alloc. alloc may
// be nil, in which case no telemetry is recorded.
func NewPool[T any](alloc *Allocator) *Pool[T] {
	return &Pool[T]{alloc: alloc}
}

// Len returns the number of live elements.
func (p *Pool[T]) Len() int { return len(p.data) }

// Cap returns the backing array's capacity.
func (p *Pool[T]) Cap() int { return cap(p.data) }

// Slice returns the live elements. The returned slice is invalidated
// by the next call to Append or Grow.
func (p *Pool[T]) Slice() []T { return p.data }

// At returns a pointer to the i'th live element.
func (p *Pool[T]) At(i int) *T { return &p.data[i] }

// Append appends v and returns its index. Growth doubles the backing
// array's capacity (or grows to exactly fit, if doubling isn't
// enough), matching the doubling-realloc policy used throughout the
// source's scratch data and command buffer arenas.
func (p *Pool[T]) Append(v T) int {
	idx := len(p.data)
	p.data = p.growBy(1)
	p.data[idx] = v
	return idx
}

// Grow extends the pool by n zero-valued elements and returns them as
// a slice for the caller to fill in, along with the base index they
// were placed at.
func (p *Pool[T]) Grow(n int) (base int, out []T) {
	base = len(p.data)
	p.data = p.growBy(n)
	return base, p.data[base : base+n]
}

func (p *Pool[T]) growBy(n int) []T {
	need := len(p.data) + n
	if need <= cap(p.data) {
		return p.data[:need]
	}
	var zero T
	newCap := 2 * cap(p.data)
	if newCap < need {
		newCap = need
	}
	next := make([]T, need, newCap)
	copy(next, p.data)
	for i := len(p.data); i < need; i++ {
		next[i] = zero
	}
	if p.alloc != nil {
		p.alloc.Note((newCap - cap(p.data)) * sizeOf[T]())
	}
	return next
}

// Reset truncates the pool to zero length, retaining the backing
// array's capacity so the next build reuses it.
func (p *Pool[T]) Reset() {
	p.data = p.data[:0]
}

func sizeOf[T any]() int {
	var v T
	return int(unsafeSizeof(v))
}

// TriangulatorScratch holds the ear-clipping triangulator's reusable
// working buffers, owned by Arena (spec.md §4.1: "the arena also owns
// a polygon triangulator ... reused across calls") so repeated fills
// across a build don't reallocate them.
type TriangulatorScratch struct {
	Remaining []int
	Indices   []int
}

// Reset truncates the scratch buffers to zero length, keeping their
// backing arrays.
func (s *TriangulatorScratch) Reset() {
	s.Remaining = s.Remaining[:0]
	s.Indices = s.Indices[:0]
}

// SimplifierScratch holds the self-intersection simplifier's reusable
// working buffers, owned by Arena alongside TriangulatorScratch (spec.md
// §4.1: "... and a self-intersection simplifier reused across calls").
// Work holds the loop currently being decomposed; Loops accumulates
// the simple sub-loops split off from it.
type SimplifierScratch struct {
	Work  []vecmath.Vec2
	Loops [][]vecmath.Vec2
}

// Reset truncates the scratch buffers to zero length, keeping their
// backing arrays.
func (s *SimplifierScratch) Reset() {
	s.Work = s.Work[:0]
	s.Loops = s.Loops[:0]
}

// Arena bundles the pools used by a single vector-image build: points,
// shape vertices, image vertices, indices, info records, pieces, plus
// the temporary pools used by triangulation and text layout. It is
// reset, not freed, between images so repeat builds reuse capacity.
type Arena struct {
	Alloc Allocator

	Points        Pool[Point]
	ShapeVertices Pool[ShapeVertex]
	ImageVertices Pool[ImageVertex]
	Indices       Pool[uint32]
	Infos         Pool[InfoRecord]
	Pieces        Pool[Piece]
	Loops         Pool[Loop]
	TextLayouts   Pool[TextLayoutHandle]
	TextDrawInfos Pool[TextDrawInfo]
	TextStyles    Pool[TextStyle]
	TempCommands  Pool[byte]
	FileBuffer    Pool[byte]

	Triangulate TriangulatorScratch
	Simplify    SimplifierScratch
}

// New returns a ready-to-use Arena with all pools wired to the
// arena's shared allocator.
func New() *Arena {
	a := &Arena{}
	a.Points = *NewPool[Point](&a.Alloc)
	a.ShapeVertices = *NewPool[ShapeVertex](&a.Alloc)
	a.ImageVertices = *NewPool[ImageVertex](&a.Alloc)
	a.Indices = *NewPool[uint32](&a.Alloc)
	a.Infos = *NewPool[InfoRecord](&a.Alloc)
	a.Pieces = *NewPool[Piece](&a.Alloc)
	a.Loops = *NewPool[Loop](&a.Alloc)
	a.TextLayouts = *NewPool[TextLayoutHandle](&a.Alloc)
	a.TextDrawInfos = *NewPool[TextDrawInfo](&a.Alloc)
	a.TextStyles = *NewPool[TextStyle](&a.Alloc)
	a.TempCommands = *NewPool[byte](&a.Alloc)
	a.FileBuffer = *NewPool[byte](&a.Alloc)
	return a
}

// Reset zeroes every pool's logical length while keeping their
// physical capacity, ready for the next image build.
func (a *Arena) Reset() {
	a.Points.Reset()
	a.ShapeVertices.Reset()
	a.ImageVertices.Reset()
	a.Indices.Reset()
	a.Infos.Reset()
	a.Pieces.Reset()
	a.Loops.Reset()
	a.TextLayouts.Reset()
	a.TextDrawInfos.Reset()
	a.TextStyles.Reset()
	a.TempCommands.Reset()
	a.FileBuffer.Reset()
	a.Triangulate.Reset()
	a.Simplify.Reset()
}
