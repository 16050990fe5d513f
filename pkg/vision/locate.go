package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// LocatorConfig holds the fixed blob-location policy.
type LocatorConfig struct {
	Threshold        float32 `json:"threshold"`         // Binarize: value > Threshold becomes 255
	MinArea          float64 `json:"min_area"`          // Contours below this area are noise
	DilateIterations int     `json:"dilate_iterations"` // 3x3 dilation passes before contouring
}

// DefaultLocatorConfig returns the calibrated defaults: threshold 30,
// noise floor 300 px², no dilation.
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		Threshold:        30,
		MinArea:          300,
		DilateIterations: 0,
	}
}

// Blob is one external contour reduced to its bounding box and area.
type Blob struct {
	Rect image.Rectangle `json:"rect"`
	Area float64         `json:"area"`
}

// Center returns the bounding-box center, rounded toward zero.
func (b Blob) Center() image.Point {
	return image.Pt(b.Rect.Min.X+b.Rect.Dx()/2, b.Rect.Min.Y+b.Rect.Dy()/2)
}

// Detection is the result of Locate. When Found is false, Point is the
// origin and must not be used.
type Detection struct {
	Point image.Point `json:"point"`
	Found bool        `json:"found"`
}

// Locator finds the tracked object in a difference mask.
type Locator struct {
	config LocatorConfig
	kernel gocv.Mat
}

// NewLocator creates a locator with the given policy.
func NewLocator(cfg LocatorConfig) *Locator {
	return &Locator{
		config: cfg,
		kernel: gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3)),
	}
}

// Config returns the locator policy.
func (l *Locator) Config() LocatorConfig {
	return l.config
}

// Blobs binarizes diff and returns every external contour in traversal
// order. Holes are ignored.
func (l *Locator) Blobs(diff gocv.Mat) []Blob {
	bin := gocv.NewMat()
	defer bin.Close()

	gocv.Threshold(diff, &bin, l.config.Threshold, 255, gocv.ThresholdBinary)
	for i := 0; i < l.config.DilateIterations; i++ {
		gocv.Dilate(bin, &bin, l.kernel)
	}

	contours := gocv.FindContours(bin, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	blobs := make([]Blob, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		blobs = append(blobs, Blob{
			Rect: gocv.BoundingRect(c),
			Area: gocv.ContourArea(c),
		})
	}
	return blobs
}

// Locate returns the center of the last blob, in traversal order, whose
// area reaches MinArea. Larger blobs earlier in the list do not win.
func (l *Locator) Locate(diff gocv.Mat) Detection {
	return SelectLast(l.Blobs(diff), l.config.MinArea)
}

// SelectLast applies the area floor to blobs and picks the last survivor.
func SelectLast(blobs []Blob, minArea float64) Detection {
	var det Detection
	for _, b := range blobs {
		if b.Area < minArea {
			continue
		}
		det = Detection{Point: b.Center(), Found: true}
	}
	return det
}

// Close releases the dilation kernel.
func (l *Locator) Close() error {
	return l.kernel.Close()
}
