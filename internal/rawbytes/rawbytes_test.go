// SPDX-License-Identifier: Unlicense OR MIT

package rawbytes

import (
	"encoding/binary"
	"testing"
)

func TestViewUint32(t *testing.T) {
	s := []uint32{1, 2, 3}
	b := View(s)
	if len(b) != 12 {
		t.Fatalf("len(b) = %d, want 12", len(b))
	}
	for i, want := range s {
		got := binary.LittleEndian.Uint32(b[i*4:])
		if got != want {
			t.Errorf("b[%d] decodes to %d, want %d", i, got, want)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	if View([]uint32(nil)) != nil {
		t.Error("View(nil) should return nil")
	}
}

func TestViewStruct(t *testing.T) {
	type pair struct{ X, Y float32 }
	s := []pair{{1, 2}, {3, 4}}
	b := View(s)
	if len(b) != 16 {
		t.Fatalf("len(b) = %d, want 16", len(b))
	}
}
