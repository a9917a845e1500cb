// SPDX-License-Identifier: Unlicense OR MIT

package material

import (
	"image/color"
	"testing"
)

func TestPaletteLookupStableOrder(t *testing.T) {
	p := NewPalette()
	p.AddColor(ColorMaterial{Name: "fg", Color: color.RGBA{R: 255, A: 255}})
	p.AddLinearGradient(LinearGradient{Name: "sky"})
	p.AddRadialGradient(RadialGradient{Name: "glow"})

	cases := []struct {
		name string
		kind Kind
		idx  int
	}{
		{"fg", KindColor, 0},
		{"sky", KindLinearGradient, 1},
		{"glow", KindRadialGradient, 2},
	}
	for _, c := range cases {
		kind, idx, ok := p.Lookup(c.name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", c.name)
		}
		if kind != c.kind || idx != c.idx {
			t.Errorf("Lookup(%q) = (%v, %d), want (%v, %d)", c.name, kind, idx, c.kind, c.idx)
		}
	}
	if _, _, ok := p.Lookup("missing"); ok {
		t.Error("Lookup(\"missing\") found a material, want not found")
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestAddColorReplaceKeepsIndex(t *testing.T) {
	p := NewPalette()
	p.AddColor(ColorMaterial{Name: "fg", Color: color.RGBA{R: 1}})
	p.AddColor(ColorMaterial{Name: "fg", Color: color.RGBA{R: 2}})
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after replace", p.Len())
	}
	_, idx, ok := p.Lookup("fg")
	if !ok || idx != 0 {
		t.Errorf("Lookup(\"fg\") = idx %d ok %v, want 0 true", idx, ok)
	}
}

func TestRefValid(t *testing.T) {
	if (Ref{}).Valid() {
		t.Error("zero Ref reported valid")
	}
	if !(Ref{Name: "x"}).Valid() {
		t.Error("named Ref reported invalid")
	}
}
