package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textsync/internal/diff"
)

// Config holds the synchronization engine settings.
type Config struct {
	// DebounceMS is the quiescence window after the last keystroke before a
	// local patch is computed and sent, in milliseconds.
	DebounceMS int `toml:"debounce_ms"`

	// MaxExactInput is the per-sequence length bound for the exact diff
	// engine.
	MaxExactInput int `toml:"max_exact_input"`

	// MaxExactTotal is the combined length bound for the exact diff engine.
	MaxExactTotal int `toml:"max_exact_total"`

	// FillerLines is the number of line breaks seeding a new document before
	// the first inbound patch or snapshot arrives.
	FillerLines int `toml:"filler_lines"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Default returns the standard settings.
func Default() Config {
	lim := diff.DefaultLimits()
	return Config{
		DebounceMS:    1000,
		MaxExactInput: lim.MaxInput,
		MaxExactTotal: lim.MaxTotal,
		FillerLines:   3,
		LogLevel:      "info",
	}
}

// Load reads settings from a TOML file, filling unset fields with defaults.
// A missing file yields the defaults; path may be empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if c.DebounceMS <= 0 {
		return ErrInvalidDebounce
	}
	if c.MaxExactInput <= 0 || c.MaxExactTotal < c.MaxExactInput {
		return ErrInvalidLimits
	}
	if c.FillerLines < 0 {
		return ErrInvalidFiller
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// Debounce returns the debounce window as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Limits returns the diff engine selection bounds.
func (c Config) Limits() diff.Limits {
	return diff.Limits{MaxInput: c.MaxExactInput, MaxTotal: c.MaxExactTotal}
}
