package section

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Motion tunes navigation trajectories. Trajectories follow a critically
// damped spring, which approaches the target without overshoot.
type Motion struct {
	// FPS is the rate at which the host consumes trajectory points.
	FPS int
	// Frequency is the spring's angular frequency; higher is faster.
	Frequency float64
	// RestDelta is the distance, in rows, at which the remaining motion is
	// skipped and the trajectory lands on the target.
	RestDelta float64
	// MaxDuration bounds the trajectory length.
	MaxDuration time.Duration
}

// DefaultMotion returns the tuning used by the page navigation.
func DefaultMotion() Motion {
	return Motion{FPS: 60, Frequency: 8, RestDelta: 0.5, MaxDuration: 2 * time.Second}
}

func (m Motion) withDefaults() Motion {
	def := DefaultMotion()
	if m.FPS <= 0 {
		m.FPS = def.FPS
	}
	if !(m.Frequency > 0) || math.IsInf(m.Frequency, 0) {
		m.Frequency = def.Frequency
	}
	if !(m.RestDelta > 0) || math.IsInf(m.RestDelta, 0) {
		m.RestDelta = def.RestDelta
	}
	if m.MaxDuration <= 0 {
		m.MaxDuration = def.MaxDuration
	}
	return m
}

func (m Motion) interval() time.Duration {
	return time.Second / time.Duration(m.FPS)
}

// plan returns the offsets visited between from and to, excluding from and
// ending exactly on to.
func (m Motion) plan(from, to float64) []float64 {
	if from == to {
		return []float64{to}
	}
	dir := 1.0
	if to < from {
		dir = -1
	}

	maxSteps := int(m.MaxDuration / m.interval())
	if maxSteps < 1 {
		maxSteps = 1
	}

	s := harmonica.NewSpring(harmonica.FPS(m.FPS), m.Frequency, 1.0)
	pos, vel := from, 0.0
	prev := from
	points := make([]float64, 0, maxSteps)
	for len(points) < maxSteps-1 {
		pos, vel = s.Update(pos, vel, to)
		p := pos
		if (p-prev)*dir < 0 {
			p = prev
		}
		if (p-to)*dir > 0 {
			p = to
		}
		if math.Abs(to-p) < m.RestDelta {
			break
		}
		points = append(points, p)
		prev = p
	}
	return append(points, to)
}
