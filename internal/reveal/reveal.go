// Package reveal animates sections into view as they scroll into the
// viewport.
package reveal

import (
	"errors"
	"time"

	"github.com/olivier-w/folio/internal/util"
)

// ErrUnknownEasing is returned for easing names that are not registered.
var ErrUnknownEasing = errors.New("unknown easing")

// Config is the reveal behaviour shared by every section on a page.
type Config struct {
	// Duration of one reveal animation.
	Duration time.Duration
	// Easing names the curve: linear, ease-out-cubic, ease-out-quart or
	// ease-in-out-quad.
	Easing string
	// Once keeps sections revealed after they first appear. When false a
	// section that leaves the viewport hides again.
	Once bool
	// Offset is how many rows a section must be inside the viewport before
	// it starts revealing.
	Offset int
}

// DefaultConfig is a one second ease-out-quart reveal that replays on re-entry.
func DefaultConfig() Config {
	return Config{Duration: time.Second, Easing: "ease-out-quart", Once: false, Offset: 1}
}

// Span is a section's vertical extent in rows.
type Span struct {
	ID     string
	Top    int
	Height int
}

type state struct {
	visible bool
	since   time.Time
}

// Revealer tracks which sections are revealed and since when.
type Revealer struct {
	cfg    Config
	ease   Easing
	states map[string]*state
}

// New builds a Revealer, failing for unknown easing names.
func New(cfg Config) (*Revealer, error) {
	if cfg.Easing == "" {
		cfg.Easing = DefaultConfig().Easing
	}
	ease, err := LookupEasing(cfg.Easing)
	if err != nil {
		return nil, err
	}
	if cfg.Duration < 0 {
		cfg.Duration = 0
	}
	if cfg.Offset < 0 {
		cfg.Offset = 0
	}
	return &Revealer{cfg: cfg, ease: ease, states: make(map[string]*state)}, nil
}

// Config returns the effective configuration.
func (r *Revealer) Config() Config { return r.cfg }

// Update marks spans that intersect the viewport [offset, offset+height) as
// revealed. Spans that left the viewport hide again unless Once is set.
func (r *Revealer) Update(now time.Time, offset, height int, spans []Span) {
	bottom := offset + height - r.cfg.Offset
	for _, sp := range spans {
		st, ok := r.states[sp.ID]
		if !ok {
			st = &state{}
			r.states[sp.ID] = st
		}
		inView := sp.Top < bottom && sp.Top+sp.Height > offset
		switch {
		case inView && !st.visible:
			st.visible = true
			st.since = now
		case !inView && st.visible && !r.cfg.Once:
			st.visible = false
		}
	}
}

// Progress returns how far the reveal of id has run at now, eased, in [0,1].
// Unknown and hidden sections report 0.
func (r *Revealer) Progress(id string, now time.Time) float64 {
	st, ok := r.states[id]
	if !ok || !st.visible {
		return 0
	}
	if r.cfg.Duration == 0 {
		return 1
	}
	t := util.Clamp01(float64(now.Sub(st.since)) / float64(r.cfg.Duration))
	return util.Clamp01(r.ease(t))
}

// Animating reports whether any visible section is still mid-reveal.
func (r *Revealer) Animating(now time.Time) bool {
	for _, st := range r.states {
		if st.visible && now.Sub(st.since) < r.cfg.Duration {
			return true
		}
	}
	return false
}
