// Package scroll normalizes raw scroll offsets into a progress ratio.
package scroll

import (
	"errors"
	"math"

	"github.com/olivier-w/folio/internal/util"
)

// ErrDegenerateDocument reports a sample whose document height is not
// positive. Tracker recovers from it by reporting zero progress.
var ErrDegenerateDocument = errors.New("degenerate document height")

// Progress is the normalized scroll position through the document, in [0,1].
type Progress float64

// Sample is one scroll or resize notification from the host. Offset and
// DocumentHeight are in rows; DocumentHeight is the largest reachable offset.
type Sample struct {
	Offset         float64
	DocumentHeight float64
}

// Validate reports ErrDegenerateDocument for non-positive document heights.
func (s Sample) Validate() error {
	if !(s.DocumentHeight > 0) || math.IsInf(s.DocumentHeight, 0) {
		return ErrDegenerateDocument
	}
	return nil
}

// Tracker converts samples into Progress. The only state kept is the last
// document height, so resizes can be detected.
type Tracker struct {
	height  float64
	seen    bool
	resized bool
}

// NewTracker returns a Tracker with no samples observed.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update clamps the sample offset into [0, DocumentHeight] and returns the
// resulting progress. Degenerate heights yield 0.
func (t *Tracker) Update(s Sample) Progress {
	t.resized = t.seen && s.DocumentHeight != t.height
	t.height = s.DocumentHeight
	t.seen = true
	return ratio(s)
}

// Resized reports whether the last Update saw a different document height
// than the one before it.
func (t *Tracker) Resized() bool { return t.resized }

// DocumentHeight returns the last observed document height.
func (t *Tracker) DocumentHeight() float64 { return t.height }

func ratio(s Sample) Progress {
	if s.Validate() != nil {
		return 0
	}
	offset := util.Clamp(s.Offset, 0, s.DocumentHeight)
	if offset >= s.DocumentHeight {
		return 1
	}
	p := offset / s.DocumentHeight
	if p >= 1 {
		// rounding can push a ratio just below 1 up to exactly 1
		p = math.Nextafter(1, 0)
	}
	return Progress(p)
}
