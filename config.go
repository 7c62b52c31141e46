package morphic

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("morphic: invalid config")

// Config holds per-World engine settings.
type Config struct {
	// GrabThreshold is the pointer displacement in pixels a draggable morph
	// must exceed before it is picked up.
	GrabThreshold float64 `yaml:"grab_threshold"`
	// DamageProximity is the distance in pixels within which damage
	// rectangles are merged.
	DamageProximity float64 `yaml:"damage_proximity"`
	// DamageCollapseLimit is the damage list length above which all damage
	// collapses into one rectangle.
	DamageCollapseLimit int `yaml:"damage_collapse_limit"`
	// StepBudget bounds the step phase of one cycle. Zero means unbounded.
	StepBudget time.Duration `yaml:"step_budget"`
	// DoubleClickInterval is the maximum delay between two clicks the host
	// reports as a double click.
	DoubleClickInterval time.Duration `yaml:"double_click_interval"`
	// ShowHoles overlays a translucent marker on hit-test holes.
	ShowHoles bool `yaml:"show_holes"`
	// Debug enables tree link checks and per-cycle stats logging.
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`
	// Background fills the world root.
	Background Color `yaml:"background"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		GrabThreshold:       5,
		DamageProximity:     20,
		DamageCollapseLimit: 1000,
		DoubleClickInterval: 400 * time.Millisecond,
		LogLevel:            "info",
		Background:          Color{R: 0.16, G: 0.16, B: 0.16, A: 1},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.GrabThreshold < 0 {
		return fmt.Errorf("%w: grab_threshold %v is negative", ErrInvalidConfig, c.GrabThreshold)
	}
	if c.DamageProximity < 0 {
		return fmt.Errorf("%w: damage_proximity %v is negative", ErrInvalidConfig, c.DamageProximity)
	}
	if c.DamageCollapseLimit < 1 {
		return fmt.Errorf("%w: damage_collapse_limit must be at least 1, got %d", ErrInvalidConfig, c.DamageCollapseLimit)
	}
	if c.StepBudget < 0 {
		return fmt.Errorf("%w: step_budget %v is negative", ErrInvalidConfig, c.StepBudget)
	}
	if c.DoubleClickInterval < 0 {
		return fmt.Errorf("%w: double_click_interval %v is negative", ErrInvalidConfig, c.DoubleClickInterval)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig loads the engine configuration.
// Search order: customPath -> ~/.morphic/config.yaml -> ./configs/morphic.yaml -> embedded default
func LoadConfig(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("read config %s: %w", customPath, err)
		}
		cfg, err := ParseConfig(data)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if p := userConfigPath(); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := ParseConfig(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "morphic.yaml")); err == nil {
		if cfg, err := ParseConfig(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseConfig(defaultConfigYAML)
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// userConfigPath returns ~/.morphic/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".morphic", "config.yaml")
}

// ParseLogLevel maps "debug", "info", "warn" or "error" to a slog level.
// The empty string means info.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
