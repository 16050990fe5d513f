package camera

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/teslashibe/go-airpaint/internal/log"
	"gocv.io/x/gocv"
)

var (
	// ErrUnavailable is returned when the capture device cannot be opened
	// or delivers no first frame.
	ErrUnavailable = errors.New("camera: device unavailable")

	// ErrReadFailed is returned when a single frame read fails.
	ErrReadFailed = errors.New("camera: frame read failed")
)

// Source reads BGR frames from a gocv capture device.
type Source struct {
	vc     *gocv.VideoCapture
	device string
	mu     sync.Mutex
}

// Open acquires the capture device and requests the configured size and
// frame rate. Drivers may deliver a different size; frames are used as is.
func Open(cfg Config) (*Source, error) {
	vc, err := gocv.OpenVideoCapture(deviceID(cfg.Device))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, cfg.Device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, cfg.Device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	log.Info("camera opened",
		"device", cfg.Device,
		"width", int(vc.Get(gocv.VideoCaptureFrameWidth)),
		"height", int(vc.Get(gocv.VideoCaptureFrameHeight)))

	return &Source{vc: vc, device: cfg.Device}, nil
}

// Read blocks until the next frame is available and decodes it into dst.
func (s *Source) Read(dst *gocv.Mat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok := s.vc.Read(dst); !ok || dst.Empty() {
		return fmt.Errorf("%w: %s", ErrReadFailed, s.device)
	}
	return nil
}

// Apply pushes runtime-tunable settings to the device. It is suitable as a
// Manager.OnConfigChange callback.
func (s *Source) Apply(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	return nil
}

// Close releases the device.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vc.Close()
}

// deviceID converts a device string to what gocv expects: an int for
// camera indexes, the string itself for files and URLs.
func deviceID(device string) interface{} {
	if id, err := strconv.Atoi(device); err == nil {
		return id
	}
	return device
}
