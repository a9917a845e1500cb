// SPDX-License-Identifier: Unlicense OR MIT

package infotex

import (
	"testing"

	"github.com/vectorforge/tessel/internal/arena"
	"github.com/vectorforge/tessel/vecmath"
)

func TestPackSingleRecordHeightOne(t *testing.T) {
	records := []arena.InfoRecord{
		{Bounds: vecmath.Rect{Min: vecmath.Pt(0, 0), Max: vecmath.Pt(10, 10)}, Opacity: 1},
	}
	textures := Pack(records)
	if len(textures) != 1 {
		t.Fatalf("got %d textures, want 1", len(textures))
	}
	if textures[0].Width != Width || textures[0].Height != 1 {
		t.Errorf("texture dims = %dx%d, want %dx1", textures[0].Width, textures[0].Height, Width)
	}
	if textures[0].Data[2] != 10 || textures[0].Data[3] != 10 {
		t.Errorf("bounds.Max not packed correctly: %v", textures[0].Data[:4])
	}
}

func TestPackHeightIsNextPowerOfTwo(t *testing.T) {
	records := make([]arena.InfoRecord, 5)
	textures := Pack(records)
	if textures[0].Height != 8 {
		t.Errorf("Height = %d, want 8 (next pow2 >= 5)", textures[0].Height)
	}
}

func TestPackSplitsAt1024Records(t *testing.T) {
	records := make([]arena.InfoRecord, 1025)
	textures := Pack(records)
	if len(textures) != 2 {
		t.Fatalf("got %d textures, want 2", len(textures))
	}
	if textures[0].Height != 1024 {
		t.Errorf("first texture Height = %d, want 1024", textures[0].Height)
	}
	if textures[1].Height != 1 {
		t.Errorf("second texture Height = %d, want 1", textures[1].Height)
	}
}

func TestTextureIndexAndRow(t *testing.T) {
	if TextureIndex(1023) != 0 || RowInTexture(1023) != 1023 {
		t.Errorf("index 1023: texture=%d row=%d", TextureIndex(1023), RowInTexture(1023))
	}
	if TextureIndex(1024) != 1 || RowInTexture(1024) != 0 {
		t.Errorf("index 1024: texture=%d row=%d", TextureIndex(1024), RowInTexture(1024))
	}
}

func TestPackTextRecordUsesStyleFields(t *testing.T) {
	records := []arena.InfoRecord{
		{Kind: arena.InfoText, Style: arena.TextStyle{Embolden: 0.5, FillOpacity: 1, OutlineOpacity: 0.2}},
	}
	textures := Pack(records)
	row := textures[0].Data
	if row[10] != 0.5 {
		t.Errorf("Embolden = %v, want 0.5", row[10])
	}
	if row[14] != 1 || row[15] != 0.2 {
		t.Errorf("fill/outline opacity = %v/%v, want 1/0.2", row[14], row[15])
	}
}
