// Package palette owns the current pen color and the nine preset colors
// selectable from the keyboard.
package palette

import (
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// SwatchSize is the edge length of the color swatch surface in pixels.
const SwatchSize = 200

// Preset is a named color bound to a digit key.
type Preset struct {
	Digit int        `json:"digit"`
	Name  string     `json:"name"`
	Color color.RGBA `json:"color"`
}

var presets = [9]Preset{
	{1, "red", rgb(255, 0, 0)},
	{2, "orange", rgb(255, 127, 0)},
	{3, "yellow", rgb(255, 255, 0)},
	{4, "green", rgb(0, 255, 0)},
	{5, "cyan", rgb(0, 255, 255)},
	{6, "blue", rgb(0, 25, 255)},
	{7, "magenta", rgb(255, 0, 255)},
	{8, "black", rgb(0, 0, 0)},
	{9, "white", rgb(255, 255, 255)},
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// DefaultColor is the pen color at startup (green).
var DefaultColor = rgb(0, 255, 0)

// Presets returns the digit 1-9 preset table.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets[:])
	return out
}

// Lookup returns the preset color for a digit key 1-9.
func Lookup(digit int) (color.RGBA, bool) {
	if digit < 1 || digit > len(presets) {
		return color.RGBA{}, false
	}
	return presets[digit-1].Color, true
}

// Palette holds the current pen color.
type Palette struct {
	mu      sync.RWMutex
	current color.RGBA
}

// New creates a palette starting at initial.
func New(initial color.RGBA) *Palette {
	initial.A = 255
	return &Palette{current: initial}
}

// CurrentColor returns the pen color by value.
func (p *Palette) CurrentColor() color.RGBA {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// SetColor replaces the pen color. Alpha is always opaque.
func (p *Palette) SetColor(c color.RGBA) {
	c.A = 255
	p.mu.Lock()
	p.current = c
	p.mu.Unlock()
}

// Swatch returns a SwatchSize square BGR Mat filled with the pen color.
// The caller must Close it.
func (p *Palette) Swatch() gocv.Mat {
	c := p.CurrentColor()
	return gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		SwatchSize, SwatchSize, gocv.MatTypeCV8UC3,
	)
}
