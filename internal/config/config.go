// Package config defines folio's configuration and how it is loaded.
package config

import (
	"fmt"
	"time"

	"github.com/olivier-w/folio/internal/reveal"
	"github.com/olivier-w/folio/internal/section"
	"github.com/olivier-w/folio/internal/spring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile receives logs; the terminal belongs to the UI. Empty discards.
	LogFile string `koanf:"log_file"`

	// FPS is the animation frame rate while something is moving.
	FPS int `koanf:"fps"`

	// Spring tuning for the progress bar.
	SpringStiffness float64 `koanf:"spring_stiffness"`
	SpringDamping   float64 `koanf:"spring_damping"`
	SpringRestDelta float64 `koanf:"spring_rest_delta"`

	// NavFrequency and NavRestDelta tune smooth scrolling to a section.
	NavFrequency     float64 `koanf:"nav_frequency"`
	NavRestDelta     float64 `koanf:"nav_rest_delta"`
	NavMaxDurationMS int     `koanf:"nav_max_duration_ms"`

	// Reveal-on-scroll behaviour.
	RevealDurationMS int    `koanf:"reveal_duration_ms"`
	RevealEasing     string `koanf:"reveal_easing"`
	RevealOnce       bool   `koanf:"reveal_once"`
	RevealOffset     int    `koanf:"reveal_offset"`

	// Particle band behind the hero.
	ParticlesEnabled bool   `koanf:"particles_enabled"`
	ParticlesCount   int    `koanf:"particles_count"`
	ParticlesSeed    uint64 `koanf:"particles_seed"`

	// MetricsAddr serves Prometheus metrics when set, e.g. "127.0.0.1:9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// ContentPath points at a YAML profile; empty uses the built-in one.
	ContentPath string `koanf:"content_path"`
}

// New creates a Config with defaults.
func New() *Config {
	s := spring.DefaultConfig()
	m := section.DefaultMotion()
	r := reveal.DefaultConfig()
	return &Config{
		LogLevel:         "info",
		FPS:              m.FPS,
		SpringStiffness:  s.Stiffness,
		SpringDamping:    s.Damping,
		SpringRestDelta:  s.RestDelta,
		NavFrequency:     m.Frequency,
		NavRestDelta:     m.RestDelta,
		NavMaxDurationMS: int(m.MaxDuration / time.Millisecond),
		RevealDurationMS: int(r.Duration / time.Millisecond),
		RevealEasing:     r.Easing,
		RevealOnce:       r.Once,
		RevealOffset:     r.Offset,
		ParticlesEnabled: true,
		ParticlesCount:   48,
	}
}

// Spring returns the progress bar spring tuning.
func (c *Config) Spring() spring.Config {
	return spring.Config{
		Stiffness: c.SpringStiffness,
		Damping:   c.SpringDamping,
		RestDelta: c.SpringRestDelta,
	}
}

// Motion returns the navigation trajectory tuning.
func (c *Config) Motion() section.Motion {
	return section.Motion{
		FPS:         c.FPS,
		Frequency:   c.NavFrequency,
		RestDelta:   c.NavRestDelta,
		MaxDuration: time.Duration(c.NavMaxDurationMS) * time.Millisecond,
	}
}

// Reveal returns the reveal-on-scroll configuration.
func (c *Config) Reveal() reveal.Config {
	return reveal.Config{
		Duration: time.Duration(c.RevealDurationMS) * time.Millisecond,
		Easing:   c.RevealEasing,
		Once:     c.RevealOnce,
		Offset:   c.RevealOffset,
	}
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps %d outside [1,240]", ErrInvalidConfig, c.FPS)
	case !(c.SpringStiffness > 0):
		return fmt.Errorf("%w: spring_stiffness must be positive", ErrInvalidConfig)
	case c.SpringDamping < 0:
		return fmt.Errorf("%w: spring_damping must not be negative", ErrInvalidConfig)
	case !(c.SpringRestDelta > 0):
		return fmt.Errorf("%w: spring_rest_delta must be positive", ErrInvalidConfig)
	case !(c.NavFrequency > 0):
		return fmt.Errorf("%w: nav_frequency must be positive", ErrInvalidConfig)
	case !(c.NavRestDelta > 0):
		return fmt.Errorf("%w: nav_rest_delta must be positive", ErrInvalidConfig)
	case c.NavMaxDurationMS <= 0:
		return fmt.Errorf("%w: nav_max_duration_ms must be positive", ErrInvalidConfig)
	case c.RevealDurationMS < 0:
		return fmt.Errorf("%w: reveal_duration_ms must not be negative", ErrInvalidConfig)
	case c.ParticlesCount < 0 || c.ParticlesCount > 2000:
		return fmt.Errorf("%w: particles_count %d outside [0,2000]", ErrInvalidConfig, c.ParticlesCount)
	}
	if _, err := reveal.LookupEasing(c.RevealEasing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
