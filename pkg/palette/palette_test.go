package palette

import (
	"image/color"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		digit int
		want  color.RGBA
	}{
		{1, color.RGBA{255, 0, 0, 255}},
		{2, color.RGBA{255, 127, 0, 255}},
		{3, color.RGBA{255, 255, 0, 255}},
		{4, color.RGBA{0, 255, 0, 255}},
		{5, color.RGBA{0, 255, 255, 255}},
		{6, color.RGBA{0, 25, 255, 255}},
		{7, color.RGBA{255, 0, 255, 255}},
		{8, color.RGBA{0, 0, 0, 255}},
		{9, color.RGBA{255, 255, 255, 255}},
	}

	for _, tc := range tests {
		got, ok := Lookup(tc.digit)
		if !ok {
			t.Errorf("Lookup(%d): not found", tc.digit)
			continue
		}
		if got != tc.want {
			t.Errorf("Lookup(%d): got %v, want %v", tc.digit, got, tc.want)
		}
	}
}

func TestLookup_OutOfRange(t *testing.T) {
	for _, d := range []int{-1, 0, 10} {
		if _, ok := Lookup(d); ok {
			t.Errorf("Lookup(%d): expected not found", d)
		}
	}
}

func TestPresets_IsACopy(t *testing.T) {
	ps := Presets()
	if len(ps) != 9 {
		t.Fatalf("Presets: got %d, want 9", len(ps))
	}
	ps[0].Color = color.RGBA{}

	if got, _ := Lookup(1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("preset table mutated through copy: %v", got)
	}
}

func TestPalette_SetColor(t *testing.T) {
	p := New(DefaultColor)
	if got := p.CurrentColor(); got != DefaultColor {
		t.Fatalf("initial: got %v, want %v", got, DefaultColor)
	}

	p.SetColor(color.RGBA{R: 10, G: 20, B: 30})
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if got := p.CurrentColor(); got != want {
		t.Errorf("CurrentColor: got %v, want %v", got, want)
	}
}

func TestPalette_Swatch(t *testing.T) {
	p := New(color.RGBA{R: 200, G: 100, B: 50})
	sw := p.Swatch()
	defer sw.Close()

	if sw.Rows() != SwatchSize || sw.Cols() != SwatchSize {
		t.Fatalf("size: got %dx%d, want %dx%d", sw.Cols(), sw.Rows(), SwatchSize, SwatchSize)
	}
	v := sw.GetVecbAt(SwatchSize/2, SwatchSize/2)
	if v[0] != 50 || v[1] != 100 || v[2] != 200 {
		t.Errorf("swatch BGR: got %v, want [50 100 200]", v)
	}
}
