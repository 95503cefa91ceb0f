// Package section maps scroll offsets to named page sections and plans smooth
// scroll trajectories between them.
package section

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ID identifies a section.
type ID string

// None is returned when no section is registered.
const None ID = ""

// Section is a named anchor in the document. Anchor is the row at which the
// section starts; Order is its position in document order.
type Section struct {
	ID     ID
	Anchor float64
	Order  int
}

// NavigationRequest asks the navigator to move to a section.
type NavigationRequest struct {
	Target ID
}

// Navigator resolves the active section for an offset and owns at most one
// pending scroll trajectory. It is not safe for concurrent use.
type Navigator struct {
	sections []Section
	index    map[ID]int
	motion   Motion
	extent   float64

	offset  float64
	pending *Trajectory
	cursor  int
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithMotion sets the trajectory tuning.
func WithMotion(m Motion) Option {
	return func(n *Navigator) {
		n.motion = m.withDefaults()
	}
}

// WithExtent caps navigation targets at the largest reachable offset.
func WithExtent(extent float64) Option {
	return func(n *Navigator) {
		n.SetExtent(extent)
	}
}

// New validates sections and returns a Navigator positioned at offset 0.
// Ids must be unique and anchors must not decrease in document order.
// Negative and non-finite anchors are clamped to 0.
func New(sections []Section, opts ...Option) (*Navigator, error) {
	n := &Navigator{motion: DefaultMotion()}
	for _, opt := range opts {
		opt(n)
	}
	if err := n.Reset(sections); err != nil {
		return nil, err
	}
	return n, nil
}

// Reset replaces the section set, for example after a relayout. Any pending
// trajectory is abandoned. On error the navigator is left unchanged.
func (n *Navigator) Reset(sections []Section) error {
	sorted := make([]Section, len(sections))
	copy(sorted, sections)
	index := make(map[ID]int, len(sorted))

	for i := range sorted {
		if a := sorted[i].Anchor; !(a >= 0) || math.IsInf(a, 1) {
			sorted[i].Anchor = 0
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	for i, s := range sorted {
		if _, dup := index[s.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSection, string(s.ID))
		}
		if i > 0 && s.Anchor < sorted[i-1].Anchor {
			return fmt.Errorf("%w: %q at %v precedes %q at %v",
				ErrSectionOrder, string(s.ID), s.Anchor, string(sorted[i-1].ID), sorted[i-1].Anchor)
		}
		index[s.ID] = i
	}

	n.sections = sorted
	n.index = index
	n.Cancel()
	return nil
}

// Sections returns the sections in document order.
func (n *Navigator) Sections() []Section {
	out := make([]Section, len(n.sections))
	copy(out, n.sections)
	return out
}

// Lookup returns the section registered under id.
func (n *Navigator) Lookup(id ID) (Section, bool) {
	i, ok := n.index[id]
	if !ok {
		return Section{}, false
	}
	return n.sections[i], true
}

// SetExtent caps navigation targets at extent. Values <= 0 remove the cap.
func (n *Navigator) SetExtent(extent float64) {
	if !(extent > 0) || math.IsInf(extent, 0) {
		extent = 0
	}
	n.extent = extent
}

// ActiveSection returns the last section whose anchor is at or before offset.
// Offsets before the first anchor resolve to the first section; sections
// sharing an anchor resolve to the one later in document order.
func (n *Navigator) ActiveSection(offset float64) ID {
	if len(n.sections) == 0 {
		return None
	}
	if math.IsNaN(offset) {
		offset = 0
	}
	i := sort.Search(len(n.sections), func(i int) bool {
		return n.sections[i].Anchor > offset
	}) - 1
	if i < 0 {
		i = 0
	}
	return n.sections[i].ID
}

// Next returns the section after the active one at offset, wrapping around.
func (n *Navigator) Next(offset float64) ID {
	return n.neighbor(offset, 1)
}

// Prev returns the section before the active one at offset, wrapping around.
func (n *Navigator) Prev(offset float64) ID {
	return n.neighbor(offset, -1)
}

func (n *Navigator) neighbor(offset float64, delta int) ID {
	if len(n.sections) == 0 {
		return None
	}
	i := n.index[n.ActiveSection(offset)]
	i = (i + delta + len(n.sections)) % len(n.sections)
	return n.sections[i].ID
}

// Offset returns the navigator's notion of the current scroll offset.
func (n *Navigator) Offset() float64 { return n.offset }

// ScrollTo records a manual scroll. A pending trajectory is abandoned.
func (n *Navigator) ScrollTo(offset float64) {
	if math.IsNaN(offset) || offset < 0 {
		offset = 0
	}
	n.offset = offset
	n.Cancel()
}

// NavigateTo plans a trajectory from the current offset to the requested
// section and makes it the pending one, replacing any earlier trajectory.
// Unknown targets fail with *UnknownSectionError and change nothing.
func (n *Navigator) NavigateTo(req NavigationRequest) (Trajectory, error) {
	s, ok := n.Lookup(req.Target)
	if !ok {
		return Trajectory{}, &UnknownSectionError{ID: req.Target}
	}
	to := s.Anchor
	if n.extent > 0 && to > n.extent {
		to = n.extent
	}
	t := Trajectory{
		Target:   s.ID,
		From:     n.offset,
		To:       to,
		Points:   n.motion.plan(n.offset, to),
		Interval: n.motion.interval(),
	}
	n.pending = &t
	n.cursor = 0
	return t, nil
}

// Pending reports whether a trajectory is in flight.
func (n *Navigator) Pending() bool { return n.pending != nil }

// PendingTarget returns the target of the in-flight trajectory, or None.
func (n *Navigator) PendingTarget() ID {
	if n.pending == nil {
		return None
	}
	return n.pending.Target
}

// Step consumes the next point of the pending trajectory. ok is false when
// nothing is pending.
func (n *Navigator) Step() (offset float64, ok bool) {
	if n.pending == nil {
		return n.offset, false
	}
	n.offset = n.pending.Points[n.cursor]
	n.cursor++
	if n.cursor >= len(n.pending.Points) {
		n.pending = nil
		n.cursor = 0
	}
	return n.offset, true
}

// Cancel abandons the pending trajectory, if any.
func (n *Navigator) Cancel() {
	n.pending = nil
	n.cursor = 0
}

// Trajectory is a time-ordered, monotonic list of offsets ending on the
// target anchor, one per Interval.
type Trajectory struct {
	Target   ID
	From     float64
	To       float64
	Points   []float64
	Interval time.Duration
}

// Duration returns how long the trajectory takes at its frame interval.
func (t Trajectory) Duration() time.Duration {
	return time.Duration(len(t.Points)) * t.Interval
}
