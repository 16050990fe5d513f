package paint

import (
	"errors"
	"fmt"
)

var (
	// ErrFirstFrame is returned by Run when the camera yields no first frame.
	ErrFirstFrame = errors.New("paint: no first frame from camera")

	// ErrPipeline wraps a panic recovered inside a frame's tracking step.
	ErrPipeline = errors.New("paint: pipeline failure")
)

// FrameError reports a failure confined to one frame. The loop keeps
// running and the stroke path is left untouched.
type FrameError struct {
	Frame uint64
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *FrameError) Error() string {
	return fmt.Sprintf("paint: frame %d %s: %v", e.Frame, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *FrameError) Unwrap() error {
	return e.Err
}
