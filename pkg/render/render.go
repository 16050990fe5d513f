// Package render composites stroke paths onto camera frames.
package render

import (
	"github.com/teslashibe/go-airpaint/pkg/stroke"
	"gocv.io/x/gocv"
)

// DefaultThickness is the stroke width in pixels.
const DefaultThickness = 5

// Renderer draws a path as straight line segments.
type Renderer struct {
	Thickness int
}

// New creates a renderer with the given line width; values < 1 use
// DefaultThickness.
func New(thickness int) *Renderer {
	if thickness < 1 {
		thickness = DefaultThickness
	}
	return &Renderer{Thickness: thickness}
}

// Render returns a copy of base with every segment of path drawn on it.
// Each segment takes the color of its newer endpoint. base and path are not
// modified. The caller must Close the returned Mat.
func (r *Renderer) Render(base gocv.Mat, path *stroke.Path) gocv.Mat {
	out := base.Clone()
	r.Draw(&out, path)
	return out
}

// Draw replays path directly onto dst.
func (r *Renderer) Draw(dst *gocv.Mat, path *stroke.Path) {
	path.Walk(func(prev, cur stroke.Entry) {
		gocv.Line(dst, prev.Point, cur.Point, cur.Color, r.Thickness)
	})
}

// Mirror returns a horizontally flipped copy of src. Only the displayed
// image is flipped; stroke coordinates stay in camera orientation.
func Mirror(src gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.Flip(src, &out, 1)
	return out
}
