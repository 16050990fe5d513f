// Air Paint - draw in the air with a red marker in front of a webcam.
// Keys: 1-9 pen color, space pause/resume, c clear, q or Esc quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/teslashibe/go-airpaint/internal/config"
	"github.com/teslashibe/go-airpaint/internal/log"
	"github.com/teslashibe/go-airpaint/pkg/camera"
	"github.com/teslashibe/go-airpaint/pkg/debug"
	"github.com/teslashibe/go-airpaint/pkg/display"
	"github.com/teslashibe/go-airpaint/pkg/paint"
	"github.com/teslashibe/go-airpaint/pkg/palette"
	"github.com/teslashibe/go-airpaint/pkg/web"
)

type options struct {
	camera    camera.Config
	paint     paint.Config
	dashboard bool
	port      string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Error("air paint failed", "error", err)
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	fmt.Println("🎨 Air Paint")
	fmt.Printf("📷 Camera %s at %dx%d\n", opts.camera.Device, opts.camera.Width, opts.camera.Height)

	src, err := camera.Open(opts.camera)
	if err != nil {
		return err
	}
	defer src.Close()

	video := display.Open(display.CaptureWindow, display.CapturePosition)
	defer video.Close()
	swatch := display.Open(display.ColorWindow, display.ColorPosition)
	defer swatch.Close()

	pal := palette.New(opts.paint.InitialColor)
	ctrl := paint.New(opts.paint, pal)
	defer ctrl.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.dashboard {
		cameras := camera.NewManager(opts.camera)
		cameras.OnConfigChange = func(cfg camera.Config) error {
			// Mirror is read by the loop; the capture rate goes to the device
			ctrl.SetMirror(cfg.Mirror)
			return src.Apply(cfg)
		}

		keys := paint.NewKeyQueue(opts.paint.QueueSize)
		server := web.NewServer(opts.port, keys, cameras)
		ctrl.SetRemoteKeys(keys)
		ctrl.SetObserver(server)
		server.StartAsync(ctx)
		defer server.Shutdown()
	}

	fmt.Println("✏️  1-9 color · space pause · c clear · q quit")
	if err := ctrl.Run(ctx, src, video, swatch, video); err != nil {
		if errors.Is(err, paint.ErrFirstFrame) {
			return fmt.Errorf("%w: no frame from %s: %w", camera.ErrUnavailable, opts.camera.Device, err)
		}
		return err
	}

	fmt.Println("👋 Goodbye")
	return nil
}

// parseFlags parses command line flags and environment overrides.
func parseFlags() (options, error) {
	opts := options{paint: paint.DefaultConfig()}

	device := flag.String("camera", config.CameraDevice(config.DefaultCameraDevice), "Camera index, video file or stream URL (AIRPAINT_CAMERA)")
	preset := flag.String("preset", camera.PresetDefault, "Capture preset: "+strings.Join(camera.PresetNames(), ", "))
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	debugFrames := flag.Bool("debug-frames", false, "Log every detection and sample (very verbose)")
	logLevel := flag.String("log-level", config.LogLevel(config.DefaultLogLevel), "Log level: debug, info, warn, error (AIRPAINT_LOG_LEVEL)")
	dashboard := flag.Bool("dashboard", false, "Serve the web dashboard")
	port := flag.String("port", config.DashboardPort(config.DefaultDashboardPort), "Dashboard port (AIRPAINT_PORT)")
	thickness := flag.Int("thickness", opts.paint.Thickness, "Stroke width in pixels")
	minArea := flag.Float64("min-area", opts.paint.Locator.MinArea, "Smallest enclosed contour area, in pixels², that counts as the marker")
	noMirror := flag.Bool("no-mirror", false, "Show the camera image unflipped")
	flag.Parse()

	debug.Enabled, debug.Frames = *debugFlag, *debugFrames
	level := *logLevel
	if *debugFlag {
		level = "debug"
	}
	log.Init(level)

	cam := camera.GetPreset(*preset)
	if cam == nil {
		return opts, fmt.Errorf("unknown preset %q (want one of %s)", *preset, strings.Join(camera.PresetNames(), ", "))
	}
	cam.Device = *device
	cam.Mirror = !*noMirror
	if errs := cam.Validate(); len(errs) > 0 {
		return opts, fmt.Errorf("invalid camera config: %s", strings.Join(errs, "; "))
	}

	if err := opts.paint.Band.Validate(); err != nil {
		return opts, err
	}

	opts.camera = *cam
	opts.paint.Mirror = cam.Mirror
	opts.paint.Thickness = *thickness
	opts.paint.Locator.MinArea = *minArea
	opts.dashboard = *dashboard
	opts.port = *port
	return opts, nil
}
