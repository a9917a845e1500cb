// SPDX-License-Identifier: Unlicense OR MIT

package arena

import "testing"

func TestPoolAppendGrows(t *testing.T) {
	var alloc Allocator
	p := NewPool[int](&alloc)
	for i := 0; i < 1000; i++ {
		if idx := p.Append(i); idx != i {
			t.Fatalf("Append returned index %d, want %d", idx, i)
		}
	}
	if p.Len() != 1000 {
		t.Fatalf("Len() = %d, want 1000", p.Len())
	}
	for i, v := range p.Slice() {
		if v != i {
			t.Fatalf("Slice()[%d] = %d, want %d", i, v, i)
		}
	}
	if alloc.Total() == 0 {
		t.Errorf("expected allocator to record growth")
	}
}

func TestPoolResetKeepsCapacity(t *testing.T) {
	p := NewPool[int](nil)
	for i := 0; i < 64; i++ {
		p.Append(i)
	}
	capBefore := p.Cap()
	p.Reset()
	if p.Len() != 0 {
		t.Fatalf("Len() = %d after Reset, want 0", p.Len())
	}
	if p.Cap() != capBefore {
		t.Fatalf("Cap() = %d after Reset, want %d (capacity retained)", p.Cap(), capBefore)
	}
}

func TestPoolGrow(t *testing.T) {
	p := NewPool[int](nil)
	p.Append(1)
	base, out := p.Grow(3)
	if base != 1 {
		t.Fatalf("base = %d, want 1", base)
	}
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	out[0], out[1], out[2] = 2, 3, 4
	if got := p.Slice(); len(got) != 4 || got[3] != 4 {
		t.Fatalf("Slice() = %v", got)
	}
}

func TestArenaResetAllPools(t *testing.T) {
	a := New()
	a.Points.Append(Point{})
	a.ShapeVertices.Append(ShapeVertex{})
	a.Indices.Append(0)
	a.Infos.Append(InfoRecord{})
	a.Pieces.Append(Piece{})
	a.Reset()
	if a.Points.Len() != 0 || a.ShapeVertices.Len() != 0 || a.Indices.Len() != 0 ||
		a.Infos.Len() != 0 || a.Pieces.Len() != 0 {
		t.Errorf("Reset did not clear all pools")
	}
}
