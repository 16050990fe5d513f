// Package display wraps OpenCV highgui windows as display surfaces and the
// keyboard poll that comes with them.
package display

import (
	"image"

	"gocv.io/x/gocv"
)

// Window names and default placements.
const (
	CaptureWindow = "Capture"
	ColorWindow   = "Color"
)

// Default window positions: video at the top left, swatch to its right.
var (
	CapturePosition = image.Pt(1, 1)
	ColorPosition   = image.Pt(1282, 0)
)

// Window is one highgui surface.
type Window struct {
	w *gocv.Window
}

// Open creates a window named name and moves it to pos.
func Open(name string, pos image.Point) *Window {
	w := gocv.NewWindow(name)
	w.MoveWindow(pos.X, pos.Y)
	return &Window{w: w}
}

// Show presents frame.
func (w *Window) Show(frame gocv.Mat) {
	w.w.IMShow(frame)
}

// PollKey pumps the GUI event loop for up to delayMS milliseconds and
// returns the pressed key code, or -1 if none.
func (w *Window) PollKey(delayMS int) int {
	return w.w.WaitKey(delayMS)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.w.Close()
}
