package config

import "testing"

func TestEnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		get   func(string) string
		def   string
		want  string
	}{
		{"camera default", "AIRPAINT_CAMERA", "", CameraDevice, DefaultCameraDevice, "0"},
		{"camera env", "AIRPAINT_CAMERA", "/dev/video2", CameraDevice, DefaultCameraDevice, "/dev/video2"},
		{"port default", "AIRPAINT_PORT", "", DashboardPort, DefaultDashboardPort, "8090"},
		{"port env", "AIRPAINT_PORT", "9000", DashboardPort, DefaultDashboardPort, "9000"},
		{"level default", "AIRPAINT_LOG_LEVEL", "", LogLevel, DefaultLogLevel, "info"},
		{"level env", "AIRPAINT_LOG_LEVEL", "debug", LogLevel, DefaultLogLevel, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			if got := tt.get(tt.def); got != tt.want {
				t.Errorf("%s: got %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}
