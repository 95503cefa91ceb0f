// Package spring smooths a driven value with a damped harmonic oscillator.
package spring

import (
	"math"

	"github.com/olivier-w/folio/internal/util"
)

const (
	// maxStep bounds the integration step; larger dt values are sub-stepped.
	maxStep = 1.0 / 120
	// maxSubSteps bounds the work done by a single Tick.
	maxSubSteps = 1 << 16
)

// Config tunes a Smoother.
type Config struct {
	// Stiffness controls how quickly position catches up with the target.
	Stiffness float64
	// Damping suppresses oscillation.
	Damping float64
	// RestDelta is the distance and speed below which motion is settled.
	RestDelta float64
}

// DefaultConfig matches the tuning of the page progress bar.
func DefaultConfig() Config {
	return Config{Stiffness: 100, Damping: 30, RestDelta: 0.001}
}

// Smoother owns one spring state. It is not safe for concurrent use.
type Smoother struct {
	cfg      Config
	maxH     float64
	position float64
	velocity float64
	target   float64
	settled  bool
}

// New returns a Smoother at rest at position 0. Non-positive parameters are
// replaced by the defaults.
func New(cfg Config) *Smoother {
	def := DefaultConfig()
	if !(cfg.Stiffness > 0) || !util.Finite(cfg.Stiffness) {
		cfg.Stiffness = def.Stiffness
	}
	if !(cfg.Damping >= 0) || !util.Finite(cfg.Damping) {
		cfg.Damping = def.Damping
	}
	if !(cfg.RestDelta > 0) || !util.Finite(cfg.RestDelta) {
		cfg.RestDelta = def.RestDelta
	}
	return &Smoother{cfg: cfg, maxH: stableStep(cfg), settled: true}
}

// stableStep is the largest integration step for cfg. Semi-implicit Euler
// stays stable and keeps an overdamped approach monotonic while
// h*(damping + 2*sqrt(stiffness)) <= 1.
func stableStep(cfg Config) float64 {
	return min(maxStep, 1/(cfg.Damping+2*math.Sqrt(cfg.Stiffness)))
}

// Config returns the effective configuration.
func (s *Smoother) Config() Config { return s.cfg }

// Position returns the current smoothed value.
func (s *Smoother) Position() float64 { return s.position }

// Velocity returns the current spring velocity.
func (s *Smoother) Velocity() float64 { return s.velocity }

// Settled reports whether the spring is at rest on its target. Hosts may stop
// scheduling ticks while it is true.
func (s *Smoother) Settled() bool { return s.settled }

// Jump places the spring at rest on v.
func (s *Smoother) Jump(v float64) {
	if !util.Finite(v) {
		return
	}
	s.position, s.velocity, s.target = v, 0, v
	s.settled = true
}

// Tick advances the spring by dt seconds toward target and returns the new
// position. Non-finite targets keep the previous target; dt <= 0 leaves the
// state untouched. The whole dt is integrated, split into at most
// maxSubSteps steps; time past that bound is dropped, which only happens
// after very long stalls or with very stiff or heavily damped springs.
func (s *Smoother) Tick(target, dt float64) float64 {
	if util.Finite(target) && target != s.target {
		s.target = target
		s.settled = false
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return s.position
	}
	if s.settled {
		return s.position
	}
	steps := math.Ceil(dt / s.maxH)
	if steps > maxSubSteps {
		steps = maxSubSteps
		dt = steps * s.maxH
	}
	h := dt / steps
	for range int(steps) {
		s.step(h)
		if s.atRest() {
			s.position, s.velocity = s.target, 0
			s.settled = true
			break
		}
	}
	return s.position
}

func (s *Smoother) step(h float64) {
	accel := s.cfg.Stiffness*(s.target-s.position) - s.cfg.Damping*s.velocity
	s.velocity += accel * h
	s.position += s.velocity * h
	if !util.Finite(s.position) || !util.Finite(s.velocity) {
		// overflow on extreme targets; give up on the motion and land
		s.position, s.velocity = s.target, 0
	}
}

func (s *Smoother) atRest() bool {
	return math.Abs(s.target-s.position) < s.cfg.RestDelta &&
		math.Abs(s.velocity) < s.cfg.RestDelta
}
