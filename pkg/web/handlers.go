package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/teslashibe/go-airpaint/pkg/camera"
	"github.com/teslashibe/go-airpaint/pkg/paint"
	"github.com/teslashibe/go-airpaint/pkg/palette"
)

// handleStatus returns the last published loop status
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	status, ok := s.status, s.hasStatus
	s.stateMu.RUnlock()

	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no frame processed yet",
		})
	}
	return c.JSON(status)
}

// handlePath returns the stroke path snapshot
func (s *Server) handlePath(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.path)
}

// handlePalette lists the preset pen colors
func (s *Server) handlePalette(c *fiber.Ctx) error {
	return c.JSON(palette.Presets())
}

// handleKey queues a remote key press
func (s *Server) handleKey(c *fiber.Ctx) error {
	name := c.Params("key")
	status, err := s.pushKey(name)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(status).JSON(fiber.Map{"queued": name})
}

// handleGetCamera returns the camera configuration
func (s *Server) handleGetCamera(c *fiber.Ctx) error {
	return c.JSON(s.cameras.GetConfigJSON())
}

// handlePutCamera applies a partial camera update
func (s *Server) handlePutCamera(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	if err := s.cameras.UpdateConfig(updates); err != nil {
		code := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, camera.ErrResolutionLocked):
			code = fiber.StatusConflict
		case errors.Is(err, camera.ErrInvalidConfig):
			code = fiber.StatusBadRequest
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}

	s.log.Info("camera config updated", "updates", updates)
	return c.JSON(s.cameras.GetConfigJSON())
}

var (
	errUnknownKey = errors.New("unknown key")
	errQueueFull  = errors.New("key queue full")
)

// pushKey parses a key name and enqueues it, returning the HTTP status to
// report.
func (s *Server) pushKey(name string) (int, error) {
	k, ok := paint.ParseKeyName(name)
	if !ok {
		return fiber.StatusBadRequest, errUnknownKey
	}
	if !s.keys.Push(k) {
		return fiber.StatusServiceUnavailable, errQueueFull
	}
	return fiber.StatusAccepted, nil
}
