package scroll

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestUpdateStaysInUnitRange(t *testing.T) {
	tr := NewTracker()
	rng := rand.New(rand.NewPCG(1, 2))
	for range 5000 {
		height := rng.Float64()*10000 + 0.001
		offset := rng.Float64() * height * 2
		p := tr.Update(Sample{Offset: offset, DocumentHeight: height})
		if p < 0 || p > 1 {
			t.Fatalf("progress %v out of range for offset=%v height=%v", p, offset, height)
		}
		if (offset >= height) != (p == 1) {
			t.Fatalf("expected progress 1 exactly when offset >= height: offset=%v height=%v p=%v", offset, height, p)
		}
	}
}

func TestUpdateClampsOverscroll(t *testing.T) {
	tr := NewTracker()
	if p := tr.Update(Sample{Offset: -40, DocumentHeight: 100}); p != 0 {
		t.Fatalf("expected negative offset to clamp to 0, got %v", p)
	}
	if p := tr.Update(Sample{Offset: 250, DocumentHeight: 100}); p != 1 {
		t.Fatalf("expected overscroll to clamp to 1, got %v", p)
	}
	if p := tr.Update(Sample{Offset: 25, DocumentHeight: 100}); p != 0.25 {
		t.Fatalf("expected 0.25, got %v", p)
	}
}

func TestUpdateDegenerateDocument(t *testing.T) {
	tr := NewTracker()
	for _, h := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		s := Sample{Offset: 10, DocumentHeight: h}
		if p := tr.Update(s); p != 0 {
			t.Fatalf("expected progress 0 for height %v, got %v", h, p)
		}
		if !errors.Is(s.Validate(), ErrDegenerateDocument) {
			t.Fatalf("expected ErrDegenerateDocument for height %v", h)
		}
	}
}

func TestUpdateNaNOffset(t *testing.T) {
	tr := NewTracker()
	if p := tr.Update(Sample{Offset: math.NaN(), DocumentHeight: 50}); p != 0 {
		t.Fatalf("expected NaN offset to map to 0, got %v", p)
	}
}

func TestResizedTracksHeightChanges(t *testing.T) {
	tr := NewTracker()
	tr.Update(Sample{Offset: 0, DocumentHeight: 100})
	if tr.Resized() {
		t.Fatal("first sample must not count as a resize")
	}
	tr.Update(Sample{Offset: 10, DocumentHeight: 100})
	if tr.Resized() {
		t.Fatal("same height must not count as a resize")
	}
	tr.Update(Sample{Offset: 10, DocumentHeight: 80})
	if !tr.Resized() {
		t.Fatal("expected resize to be detected")
	}
	if tr.DocumentHeight() != 80 {
		t.Fatalf("expected cached height 80, got %v", tr.DocumentHeight())
	}
}
