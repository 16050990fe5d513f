package paint

import (
	"image/color"
	"time"

	"github.com/teslashibe/go-airpaint/pkg/palette"
	"github.com/teslashibe/go-airpaint/pkg/render"
	"github.com/teslashibe/go-airpaint/pkg/vision"
)

// Config holds the tunable parameters of the paint loop.
type Config struct {
	Band      vision.HueBand       // Tracked color band
	Locator   vision.LocatorConfig // Blob thresholds
	Thickness int                  // Stroke width in pixels

	KeyDelay time.Duration // Keyboard poll per frame (highgui needs >= 1ms)
	Mirror   bool          // Flip the displayed frame

	InitialColor color.RGBA // Pen color at startup
	QueueSize    int        // Pending remote keys
}

// DefaultConfig returns the calibrated red-marker configuration.
func DefaultConfig() Config {
	return Config{
		Band:         vision.DefaultRedBand(),
		Locator:      vision.DefaultLocatorConfig(),
		Thickness:    render.DefaultThickness,
		KeyDelay:     time.Millisecond,
		Mirror:       true,
		InitialColor: palette.DefaultColor,
		QueueSize:    16,
	}
}

// keyDelayMS converts KeyDelay to the whole milliseconds WaitKey expects.
// Zero would block forever, so the minimum is 1.
func (c Config) keyDelayMS() int {
	ms := int(c.KeyDelay / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}
