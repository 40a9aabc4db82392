// Package config defines process configuration and its loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: json or console.
	LogFormat string `koanf:"log_format"`

	// Extension is the file extension of archived replays, without the dot.
	Extension string `koanf:"extension"`

	// PlaceholderPlayer1 and PlaceholderPlayer2 replace player names that
	// normalize to nothing.
	PlaceholderPlayer1 string `koanf:"placeholder_player1"`
	PlaceholderPlayer2 string `koanf:"placeholder_player2"`

	// Transliterate folds diacritics to ASCII before names are filtered.
	Transliterate bool `koanf:"transliterate"`

	// DedupeSize bounds the set of upload digests remembered per session.
	// Zero keeps every digest.
	DedupeSize int `koanf:"dedupe_size"`

	// DecodeWorkers sets how many recordings of a batch decode in parallel.
	DecodeWorkers int `koanf:"decode_workers"`

	// NamesFile optionally points to a YAML file overriding map and civ names.
	NamesFile string `koanf:"names_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "console",
		Extension:          "aoe2record",
		PlaceholderPlayer1: "Player1",
		PlaceholderPlayer2: "Player2",
		DedupeSize:         10_000,
		DecodeWorkers:      runtime.NumCPU(),
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Extension) == "":
		return fmt.Errorf("%w: extension must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.PlaceholderPlayer1) == "", strings.TrimSpace(c.PlaceholderPlayer2) == "":
		return fmt.Errorf("%w: player placeholders must not be empty", ErrInvalidConfig)
	case c.DecodeWorkers < 1:
		return fmt.Errorf("%w: decode_workers must be at least 1, got %d", ErrInvalidConfig, c.DecodeWorkers)
	case c.DedupeSize < 0:
		return fmt.Errorf("%w: dedupe_size must not be negative, got %d", ErrInvalidConfig, c.DedupeSize)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log_format must be json or console, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
