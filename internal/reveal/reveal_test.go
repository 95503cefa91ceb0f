package reveal

import (
	"errors"
	"math"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func spans() []Span {
	return []Span{
		{ID: "home", Top: 0, Height: 10},
		{ID: "about", Top: 10, Height: 10},
		{ID: "projects", Top: 30, Height: 20},
	}
}

func mustNew(t *testing.T, cfg Config) *Revealer {
	t.Helper()
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRevealProgressFollowsEasing(t *testing.T) {
	r := mustNew(t, DefaultConfig())
	r.Update(epoch, 0, 15, spans())

	if got := r.Progress("home", epoch); got != 0 {
		t.Fatalf("expected 0 at reveal start, got %v", got)
	}
	half := r.Progress("home", epoch.Add(500*time.Millisecond))
	if want := 1 - math.Pow(0.5, 4); math.Abs(half-want) > 1e-9 {
		t.Fatalf("expected ease-out-quart %v at halfway, got %v", want, half)
	}
	if got := r.Progress("home", epoch.Add(2*time.Second)); got != 1 {
		t.Fatalf("expected 1 after duration, got %v", got)
	}
	if got := r.Progress("projects", epoch.Add(2*time.Second)); got != 0 {
		t.Fatalf("expected off-screen section hidden, got %v", got)
	}
}

func TestRevealHidesAgainWithoutOnce(t *testing.T) {
	r := mustNew(t, DefaultConfig())
	r.Update(epoch, 0, 15, spans())
	r.Update(epoch.Add(time.Second), 30, 15, spans())
	if got := r.Progress("home", epoch.Add(2*time.Second)); got != 0 {
		t.Fatalf("expected home hidden after scrolling away, got %v", got)
	}
	if got := r.Progress("projects", epoch.Add(2*time.Second)); got != 1 {
		t.Fatalf("expected projects revealed, got %v", got)
	}
}

func TestRevealOnceKeepsSections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Once = true
	r := mustNew(t, cfg)
	r.Update(epoch, 0, 15, spans())
	r.Update(epoch.Add(time.Second), 30, 15, spans())
	if got := r.Progress("home", epoch.Add(2*time.Second)); got != 1 {
		t.Fatalf("expected home to stay revealed, got %v", got)
	}
}

func TestRevealOffsetDelaysTrigger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Offset = 3
	r := mustNew(t, cfg)
	r.Update(epoch, 0, 12, spans())
	if got := r.Progress("about", epoch.Add(time.Second)); got != 0 {
		t.Fatalf("expected about not yet revealed with 2 rows showing, got %v", got)
	}
	r.Update(epoch, 2, 12, spans())
	if got := r.Progress("about", epoch.Add(time.Second)); got != 1 {
		t.Fatalf("expected about revealed, got %v", got)
	}
}

func TestAnimating(t *testing.T) {
	r := mustNew(t, DefaultConfig())
	if r.Animating(epoch) {
		t.Fatal("expected no animation before any update")
	}
	r.Update(epoch, 0, 15, spans())
	if !r.Animating(epoch.Add(100 * time.Millisecond)) {
		t.Fatal("expected animation in progress")
	}
	if r.Animating(epoch.Add(time.Second)) {
		t.Fatal("expected animation finished after duration")
	}
}

func TestNewRejectsUnknownEasing(t *testing.T) {
	_, err := New(Config{Easing: "bounce"})
	if !errors.Is(err, ErrUnknownEasing) {
		t.Fatalf("expected ErrUnknownEasing, got %v", err)
	}
}

func TestEasingEndpoints(t *testing.T) {
	for name := range easings {
		e, err := LookupEasing(name)
		if err != nil {
			t.Fatalf("LookupEasing(%q): %v", name, err)
		}
		if e(0) != 0 || math.Abs(e(1)-1) > 1e-12 {
			t.Fatalf("easing %q endpoints: e(0)=%v e(1)=%v", name, e(0), e(1))
		}
	}
}
