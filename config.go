package grove

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("grove: invalid config")

const (
	defaultDragDeadZone  = 0.02 // meters of source travel before a press becomes a drag
	defaultPointerExtent = 10.0 // meters, max raycast distance for SampleRay
	defaultMaxSamples    = 64
)

// Config holds the settings a System is constructed with. Zero values are
// not valid; start from DefaultConfig.
type Config struct {
	// DragDeadZone is the distance a source must travel with select held
	// before the press turns into a drag.
	DragDeadZone float64 `toml:"drag_dead_zone" yaml:"drag_dead_zone" json:"drag_dead_zone" env:"GROVE_DRAG_DEAD_ZONE"`

	// PointerExtent bounds SampleRay raycasts. Hits farther away are ignored.
	PointerExtent float64 `toml:"pointer_extent" yaml:"pointer_extent" json:"pointer_extent" env:"GROVE_POINTER_EXTENT"`

	// LockFocusOnSelect keeps focus on the pressed target while select is held.
	LockFocusOnSelect bool `toml:"lock_focus_on_select" yaml:"lock_focus_on_select" json:"lock_focus_on_select" env:"GROVE_LOCK_FOCUS_ON_SELECT"`

	// MaxSamples caps the number of FrameSamples accepted per tick.
	MaxSamples int `toml:"max_samples" yaml:"max_samples" json:"max_samples" env:"GROVE_MAX_SAMPLES"`

	// IDSeed seeds id generation. Zero uses a random source.
	IDSeed uint64 `toml:"id_seed" yaml:"id_seed" json:"id_seed" env:"GROVE_ID_SEED"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level" json:"log_level" env:"GROVE_LOG_LEVEL"`

	// Debug enables per-event and per-tick diagnostics.
	Debug bool `toml:"debug" yaml:"debug" json:"debug" env:"GROVE_DEBUG"`
}

// DefaultConfig returns the configuration used when no profile is loaded.
func DefaultConfig() Config {
	return Config{
		DragDeadZone:      defaultDragDeadZone,
		PointerExtent:     defaultPointerExtent,
		LockFocusOnSelect: true,
		MaxSamples:        defaultMaxSamples,
		LogLevel:          "info",
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.DragDeadZone < 0 {
		return fmt.Errorf("%w: drag_dead_zone must be >= 0, got %v", ErrInvalidConfig, c.DragDeadZone)
	}
	if c.PointerExtent <= 0 {
		return fmt.Errorf("%w: pointer_extent must be > 0, got %v", ErrInvalidConfig, c.PointerExtent)
	}
	if c.MaxSamples <= 0 {
		return fmt.Errorf("%w: max_samples must be > 0, got %d", ErrInvalidConfig, c.MaxSamples)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a config log level name to a slog level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, name)
}
