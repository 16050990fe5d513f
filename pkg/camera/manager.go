package camera

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrResolutionLocked is returned when a runtime update tries to change
// the capture size or device. The baseline mask is tied to the first frame's
// size, so those settings only apply at startup.
var ErrResolutionLocked = errors.New("camera: resolution and device are fixed for the session")

// ErrInvalidConfig wraps validation failures from SetConfig.
var ErrInvalidConfig = errors.New("camera: invalid config")

// Manager holds the current camera configuration and handles updates.
type Manager struct {
	config Config
	mu     sync.RWMutex

	// Callback when config changes (for applying to the capture device)
	OnConfigChange func(cfg Config) error
}

// NewManager creates a new camera manager with the given startup config.
func NewManager(cfg Config) *Manager {
	return &Manager{
		config: cfg,
	}
}

// GetConfig returns the current camera configuration.
func (m *Manager) GetConfig() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig updates the camera configuration.
func (m *Manager) SetConfig(cfg Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, errs)
	}

	m.mu.Lock()
	cur := m.config
	if cfg.Width != cur.Width || cfg.Height != cur.Height || cfg.Device != cur.Device {
		m.mu.Unlock()
		return ErrResolutionLocked
	}
	m.config = cfg
	callback := m.OnConfigChange
	m.mu.Unlock()

	if callback != nil {
		if err := callback(cfg); err != nil {
			return fmt.Errorf("failed to apply config: %w", err)
		}
	}

	return nil
}

// UpdateConfig updates specific fields of the configuration.
// Accepts a map of field names to values; unknown keys are ignored, but a
// known key with a value of the wrong type fails with ErrInvalidConfig and
// leaves the config untouched.
func (m *Manager) UpdateConfig(params map[string]interface{}) error {
	cfg := m.GetConfig()

	for key, value := range params {
		switch key {
		case "framerate":
			v, ok := toInt(value)
			if !ok {
				return fmt.Errorf("%w: framerate must be a number, got %T", ErrInvalidConfig, value)
			}
			cfg.Framerate = v
		case "quality":
			v, ok := toInt(value)
			if !ok {
				return fmt.Errorf("%w: quality must be a number, got %T", ErrInvalidConfig, value)
			}
			cfg.Quality = v
		case "mirror":
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("%w: mirror must be a boolean, got %T", ErrInvalidConfig, value)
			}
			cfg.Mirror = v
		case "width", "height", "device", "preset":
			return ErrResolutionLocked
		}
	}

	return m.SetConfig(cfg)
}

// GetConfigJSON returns the current config as a map for JSON serialization.
func (m *Manager) GetConfigJSON() map[string]interface{} {
	cfg := m.GetConfig()

	data, _ := json.Marshal(cfg)
	var result map[string]interface{}
	json.Unmarshal(data, &result)

	return result
}

func toInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case json.Number:
		i, err := val.Int64()
		if err == nil {
			return int(i), true
		}
	}
	return 0, false
}
