// Package config provides environment helpers for go-airpaint commands.
package config

import "os"

// Defaults used when neither a flag nor an environment variable is set.
const (
	DefaultCameraDevice  = "0"
	DefaultDashboardPort = "8090"
	DefaultLogLevel      = "info"
)

// CameraDevice returns the capture device from AIRPAINT_CAMERA.
// Falls back to the provided default if not set.
func CameraDevice(defaultDevice string) string {
	if dev := os.Getenv("AIRPAINT_CAMERA"); dev != "" {
		return dev
	}
	return defaultDevice
}

// DashboardPort returns the dashboard port from AIRPAINT_PORT or the default.
func DashboardPort(defaultPort string) string {
	if port := os.Getenv("AIRPAINT_PORT"); port != "" {
		return port
	}
	return defaultPort
}

// LogLevel returns the log level from AIRPAINT_LOG_LEVEL or the default.
func LogLevel(defaultLevel string) string {
	if lvl := os.Getenv("AIRPAINT_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return defaultLevel
}
