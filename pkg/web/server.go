// Package web provides the air-paint dashboard: a JSON API over the loop's
// published state, live status and frame streams, and a remote keyboard.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/go-airpaint/internal/log"
	"github.com/teslashibe/go-airpaint/pkg/camera"
	"github.com/teslashibe/go-airpaint/pkg/hub"
	"github.com/teslashibe/go-airpaint/pkg/paint"
	"github.com/teslashibe/go-airpaint/pkg/stroke"
	"gocv.io/x/gocv"
)

// Server is the web dashboard server. It never touches loop state: the loop
// hands it copies through Publish and PublishPath, and keys go back through
// a paint.KeyQueue.
type Server struct {
	app  *fiber.App
	port string
	log  *slog.Logger

	keys    *paint.KeyQueue
	cameras *camera.Manager

	// Latest published state
	status    paint.Status
	hasStatus bool
	path      []stroke.Entry
	stateMu   sync.RWMutex

	// Hubs for websocket broadcast
	statusHub *hub.Hub
	frameHub  *hub.Hub

	// lastFrame is only touched from Publish, i.e. the loop goroutine
	lastFrame time.Time
	now       func() time.Time
}

// NewServer creates a dashboard server pushing remote keys into keys and
// serving camera settings from cameras.
func NewServer(port string, keys *paint.KeyQueue, cameras *camera.Manager) *Server {
	s := &Server{
		port:      port,
		log:       log.Component("web"),
		keys:      keys,
		cameras:   cameras,
		path:      []stroke.Entry{},
		statusHub: hub.New("status", true),
		frameHub:  hub.New("frames", false),
		now:       time.Now,
	}

	app := fiber.New(fiber.Config{
		AppName:               "Air Paint Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/path", s.handlePath)
	api.Get("/palette", s.handlePalette)
	api.Post("/keys/:key", s.handleKey)
	api.Get("/camera", s.handleGetCamera)
	api.Put("/camera", s.handlePutCamera)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/status", websocket.New(s.statusHub.Serve))
	app.Get("/ws/frames", websocket.New(s.frameHub.Serve))
	s.registerControl(app)

	s.app = app
	return s
}

// Start runs the hubs and serves until the listener fails. Hubs stop when
// ctx is done.
func (s *Server) Start(ctx context.Context) error {
	fmt.Printf("🌐 Dashboard: http://localhost:%s\n", s.port)

	go s.statusHub.Run(ctx)
	go s.frameHub.Run(ctx)

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(ctx); err != nil {
			fmt.Printf("⚠️  Dashboard error: %v\n", err)
		}
	}()
}

// Publish records status, broadcasts it, and streams frame as JPEG to
// frame viewers no faster than the configured framerate. frame is only
// read during the call.
func (s *Server) Publish(status paint.Status, frame gocv.Mat) {
	s.stateMu.Lock()
	s.status, s.hasStatus = status, true
	s.stateMu.Unlock()

	if err := s.statusHub.BroadcastJSON(status); err != nil {
		s.log.Warn("status encode failed", "error", err)
	}

	if s.frameHub.ClientCount() == 0 || frame.Empty() {
		return
	}

	cfg := s.cameras.GetConfig()
	now := s.now()
	if now.Sub(s.lastFrame) < frameInterval(cfg.Framerate) {
		return
	}
	s.lastFrame = now

	data, err := EncodeJPEG(frame, cfg.Quality)
	if err != nil {
		s.log.Warn("frame encode failed", "error", err)
		return
	}
	s.frameHub.BroadcastBinary(data)
}

// PublishPath stores a snapshot of the stroke path for /api/path.
func (s *Server) PublishPath(entries []stroke.Entry) {
	snapshot := make([]stroke.Entry, len(entries))
	copy(snapshot, entries)

	s.stateMu.Lock()
	s.path = snapshot
	s.stateMu.Unlock()
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// frameInterval is the minimum spacing between streamed frames.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// EncodeJPEG encodes a BGR frame at the given quality (1-100).
func EncodeJPEG(frame gocv.Mat, quality int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, frame, []int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	// The native buffer is freed on Close
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}
