// Package camera opens the capture device and holds its runtime-tunable
// settings. The same Config feeds capture and the dashboard JPEG stream.
package camera

// Config holds all camera configuration parameters.
type Config struct {
	// Device is a camera index ("0"), a video file path or a stream URL.
	Device string `json:"device"`

	// === Resolution (fixed for a session) ===
	Width  int `json:"width"`  // Requested frame width in pixels
	Height int `json:"height"` // Requested frame height in pixels

	// === Runtime tunable ===
	Framerate int  `json:"framerate"` // Target FPS, also caps dashboard frame encoding
	Quality   int  `json:"quality"`   // Dashboard JPEG quality 1-100
	Mirror    bool `json:"mirror"`    // Flip the displayed frame horizontally
}

// Limits accepted by Validate.
const (
	MinWidth     = 160
	MaxWidth     = 3840
	MinHeight    = 120
	MaxHeight    = 2160
	MaxFramerate = 120
)

// DefaultConfig returns a 640x480 webcam configuration, the resolution most
// USB cameras deliver at full frame rate.
func DefaultConfig() Config {
	return Config{
		Device:    "0",
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   75,
		Mirror:    true,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Device == "" {
		errors = append(errors, "device must not be empty")
	}
	if c.Width < MinWidth || c.Width > MaxWidth {
		errors = append(errors, "width must be between 160 and 3840")
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		errors = append(errors, "height must be between 120 and 2160")
	}
	if c.Framerate < 1 || c.Framerate > MaxFramerate {
		errors = append(errors, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}

	return errors
}
