// Package paint runs the air-paint loop: capture a frame, track the marker,
// extend the stroke path, composite and display, then handle one key.
package paint

import (
	"context"
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/teslashibe/go-airpaint/internal/log"
	"github.com/teslashibe/go-airpaint/pkg/debug"
	"github.com/teslashibe/go-airpaint/pkg/palette"
	"github.com/teslashibe/go-airpaint/pkg/render"
	"github.com/teslashibe/go-airpaint/pkg/stroke"
	"github.com/teslashibe/go-airpaint/pkg/vision"
	"gocv.io/x/gocv"
)

// FrameSource captures BGR frames.
type FrameSource interface {
	Read(dst *gocv.Mat) error
}

// Surface presents a frame.
type Surface interface {
	Show(frame gocv.Mat)
}

// KeyPoller returns a raw key code (or -1) after waiting up to delayMS.
type KeyPoller interface {
	PollKey(delayMS int) int
}

// Observer receives a copy of the loop state after every displayed frame.
// frame is only valid for the duration of the call.
type Observer interface {
	Publish(status Status, frame gocv.Mat)
	PublishPath(entries []stroke.Entry)
}

// Status is a snapshot of the loop state.
type Status struct {
	SessionID string           `json:"session_id"`
	Drawing   bool             `json:"drawing"`
	Color     color.RGBA       `json:"color"`
	Samples   int              `json:"samples"`
	Lifts     int              `json:"lifts"`
	Segments  int              `json:"segments"`
	Frames    uint64           `json:"frames"`
	Dropped   uint64           `json:"dropped"`
	Failed    uint64           `json:"failed"`
	Detection vision.Detection `json:"detection"`
}

// Controller owns the stroke path and the drawing state. Everything except
// SetMirror must be called from the loop goroutine.
type Controller struct {
	config    Config
	sessionID string

	palette  *palette.Palette
	path     *stroke.Path
	diff     *vision.Differencer
	locator  *vision.Locator
	renderer *render.Renderer

	remote   *KeyQueue
	observer Observer
	mirror   atomic.Bool

	drawing     bool
	last        vision.Detection
	frames      uint64
	dropped     uint64
	failed      uint64
	pathVersion uint64
	published   uint64

	mask  gocv.Mat
	delta gocv.Mat
}

// New creates a controller drawing with pal. Drawing starts enabled.
func New(cfg Config, pal *palette.Palette) *Controller {
	c := &Controller{
		config:    cfg,
		sessionID: uuid.NewString(),
		palette:   pal,
		path:      stroke.New(),
		diff:      vision.NewDifferencer(),
		locator:   vision.NewLocator(cfg.Locator),
		renderer:  render.New(cfg.Thickness),
		drawing:   true,
		mask:      gocv.NewMat(),
		delta:     gocv.NewMat(),
	}
	c.mirror.Store(cfg.Mirror)
	return c
}

// SessionID identifies this run in published status.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// SetRemoteKeys attaches a queue polled when the keyboard is idle.
func (c *Controller) SetRemoteKeys(q *KeyQueue) {
	c.remote = q
}

// SetObserver attaches a status observer.
func (c *Controller) SetObserver(o Observer) {
	c.observer = o
}

// SetMirror changes whether displayed frames are flipped. Safe to call from
// any goroutine.
func (c *Controller) SetMirror(on bool) {
	c.mirror.Store(on)
}

// Drawing reports whether detections are being recorded.
func (c *Controller) Drawing() bool {
	return c.drawing
}

// Path returns the stroke path. Callers must not mutate it outside the loop.
func (c *Controller) Path() *stroke.Path {
	return c.path
}

// HandleKey applies one key and reports whether the loop should stop.
func (c *Controller) HandleKey(k Key) (quit bool) {
	switch k {
	case KeyNone:
		return false
	case KeyQuit:
		return true
	case KeyClear:
		c.path.Clear()
		c.pathVersion++
		log.Info("canvas cleared")
	case KeyToggle:
		c.drawing = !c.drawing
		c.path.LiftPen()
		c.pathVersion++
		log.Info("drawing toggled", "drawing", c.drawing)
	default:
		if col, ok := palette.Lookup(k.Digit()); ok {
			c.palette.SetColor(col)
			debug.Log("🎨 pen color %d → %v\n", k.Digit(), col)
		}
	}
	return false
}

// Step runs the pipeline on frame and returns the composited frame in
// camera orientation. When tracking fails the returned error is a
// *FrameError and the frame is still composited with the existing strokes.
// The caller must Close the returned Mat.
func (c *Controller) Step(frame gocv.Mat) (gocv.Mat, error) {
	c.frames++

	var stepErr error
	if err := c.track(frame); err != nil {
		c.failed++
		stepErr = &FrameError{Frame: c.frames, Stage: "track", Err: err}
	}

	return c.renderer.Render(frame, c.path), stepErr
}

// track segments, differences and locates, then appends a sample when
// drawing. Panics are confined to this frame.
func (c *Controller) track(frame gocv.Mat) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPipeline, r)
		}
	}()

	pen := c.palette.CurrentColor()

	vision.Segment(frame, c.config.Band, &c.mask)
	if err := c.diff.Diff(c.mask, &c.delta); err != nil {
		c.last = vision.Detection{}
		return err
	}

	c.last = c.locator.Locate(c.delta)
	if c.drawing && c.last.Found {
		c.path.Append(c.last.Point, pen)
		c.pathVersion++
		debug.FrameLog("✏️  frame %d: sample at %v\n", c.frames, c.last.Point)
	}
	return nil
}

// Status returns a snapshot of the loop state.
func (c *Controller) Status() Status {
	stats := c.path.Stats()
	return Status{
		SessionID: c.sessionID,
		Drawing:   c.drawing,
		Color:     c.palette.CurrentColor(),
		Samples:   stats.Samples,
		Lifts:     stats.Lifts,
		Segments:  stats.Segments,
		Frames:    c.frames,
		Dropped:   c.dropped,
		Failed:    c.failed,
		Detection: c.last,
	}
}

// Run drives the loop until the quit key, a cancelled ctx, or a missing
// first frame. video shows the mirrored composite, swatch the pen color.
// A failed read after the first frame re-shows the previous composite.
func (c *Controller) Run(ctx context.Context, src FrameSource, video, swatch Surface, keys KeyPoller) error {
	frame := gocv.NewMat()
	defer frame.Close()
	shown := gocv.NewMat()
	defer shown.Close()

	if err := src.Read(&frame); err != nil {
		return fmt.Errorf("%w: %w", ErrFirstFrame, err)
	}
	log.Info("paint loop started", "session", c.sessionID,
		"width", frame.Cols(), "height", frame.Rows())

	fresh := true
	for {
		if ctx.Err() != nil {
			log.Info("paint loop cancelled", "frames", c.frames)
			return nil
		}

		if fresh {
			c.composite(frame, &shown)
		}

		video.Show(shown)
		sw := c.palette.Swatch()
		swatch.Show(sw)
		sw.Close()
		c.publish(shown)

		if c.HandleKey(c.pollKey(keys)) {
			log.Info("paint loop stopped", "frames", c.frames, "samples", c.path.Stats().Samples)
			return nil
		}

		if err := src.Read(&frame); err != nil {
			c.dropped++
			fresh = false
			if c.dropped == 1 || c.dropped%30 == 0 {
				log.Warn("frame skipped", "error", err, "dropped", c.dropped)
			}
			continue
		}
		fresh = true
	}
}

// composite runs Step and writes the (optionally mirrored) result to dst.
func (c *Controller) composite(frame gocv.Mat, dst *gocv.Mat) {
	out, err := c.Step(frame)
	if err != nil {
		log.Warn("frame tracking failed", "error", err)
	}

	if c.mirror.Load() {
		flipped := render.Mirror(out)
		out.Close()
		out = flipped
	}
	out.CopyTo(dst)
	out.Close()
}

// pollKey reads the keyboard, falling back to one remote key.
func (c *Controller) pollKey(keys KeyPoller) Key {
	k := ParseKey(keys.PollKey(c.config.keyDelayMS()))
	if k == KeyNone && c.remote != nil {
		k = c.remote.Poll()
	}
	return k
}

// publish forwards state to the observer, sending the path only when it
// changed since the last call.
func (c *Controller) publish(frame gocv.Mat) {
	if c.observer == nil {
		return
	}
	c.observer.Publish(c.Status(), frame)
	if c.pathVersion != c.published {
		c.observer.PublishPath(c.path.Entries())
		c.published = c.pathVersion
	}
}

// Close releases the pipeline buffers and the baseline.
func (c *Controller) Close() error {
	c.mask.Close()
	c.delta.Close()
	c.locator.Close()
	return c.diff.Close()
}
