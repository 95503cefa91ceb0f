package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/reveal"
	"github.com/olivier-w/folio/internal/section"
	"github.com/olivier-w/folio/internal/spring"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestModel(t *testing.T) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m, err := New(Options{
		Profile: content.Default(),
		Spring:  spring.DefaultConfig(),
		Motion:  section.DefaultMotion(),
		Reveal:  reveal.DefaultConfig(),
		Now:     clock.now,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, clock
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runFrames delivers frames 1/60s apart until the frame loop stops.
func runFrames(t *testing.T, m Model, clock *fakeClock, limit int) Model {
	t.Helper()
	for range limit {
		if !m.animating {
			return m
		}
		clock.t = clock.t.Add(time.Second / 60)
		m, _ = m.handleMsg(frameMsg{at: clock.t, seq: m.frameSeq})
	}
	if m.animating {
		t.Fatalf("frame loop still running after %d frames", limit)
	}
	return m
}

func anchorOf(t *testing.T, m Model, id string) int {
	t.Helper()
	s, ok := m.nav.Lookup(section.ID(id))
	if !ok {
		t.Fatalf("section %q not registered", id)
	}
	return int(s.Anchor)
}

func TestWindowSizeRegistersSections(t *testing.T) {
	m, _ := newTestModel(t)

	secs := m.nav.Sections()
	if len(secs) != len(content.Order) {
		t.Fatalf("expected %d sections, got %d", len(content.Order), len(secs))
	}
	for i, s := range secs {
		if string(s.ID) != content.Order[i] {
			t.Fatalf("section %d = %q, want %q", i, s.ID, content.Order[i])
		}
		if i > 0 && s.Anchor <= secs[i-1].Anchor {
			t.Fatalf("anchors not increasing at %q", s.ID)
		}
	}
	if m.Active() != content.Home {
		t.Fatalf("expected home active at top, got %q", m.Active())
	}
	if last := secs[len(secs)-1].Anchor; float64(m.maxOffset()) < last {
		t.Fatalf("last anchor %v unreachable with max offset %d", last, m.maxOffset())
	}
}

func TestEndKeyDrivesProgressAndSpring(t *testing.T) {
	m, clock := newTestModel(t)

	m, cmd := m.handleMsg(key("G"))
	if cmd == nil && !m.animating {
		t.Fatal("expected frame loop to start")
	}
	raw, smoothed := m.Progress()
	if raw != 1 {
		t.Fatalf("expected raw progress 1 at the bottom, got %v", raw)
	}
	if smoothed >= 1 {
		t.Fatalf("expected smoothed progress to lag, got %v", smoothed)
	}
	if m.Active() != content.Contact {
		t.Fatalf("expected contact active at the bottom, got %q", m.Active())
	}

	m = runFrames(t, m, clock, 1000)
	if _, smoothed = m.Progress(); smoothed != 1 {
		t.Fatalf("expected spring to settle on 1, got %v", smoothed)
	}
}

func TestNumberKeyNavigatesToSection(t *testing.T) {
	m, clock := newTestModel(t)

	m, _ = m.handleMsg(key("3"))
	if m.nav.PendingTarget() != content.Projects {
		t.Fatalf("expected projects pending, got %q", m.nav.PendingTarget())
	}

	m = runFrames(t, m, clock, 1000)
	if want := anchorOf(t, m, content.Projects); m.viewport.YOffset != want {
		t.Fatalf("expected to land on row %d, got %d", want, m.viewport.YOffset)
	}
	if m.Active() != content.Projects {
		t.Fatalf("expected projects active, got %q", m.Active())
	}
	raw, smoothed := m.Progress()
	if raw <= 0 || raw >= 1 || smoothed != raw {
		t.Fatalf("unexpected progress raw=%v smoothed=%v", raw, smoothed)
	}
}

func TestContactShortcut(t *testing.T) {
	m, clock := newTestModel(t)
	m, _ = m.handleMsg(key("c"))
	m = runFrames(t, m, clock, 1000)
	if m.Active() != content.Contact {
		t.Fatalf("expected contact active, got %q", m.Active())
	}
}

func TestTabCyclesSections(t *testing.T) {
	m, clock := newTestModel(t)
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyTab})
	m = runFrames(t, m, clock, 1000)
	if m.Active() != content.About {
		t.Fatalf("expected about after tab, got %q", m.Active())
	}
	m, _ = m.handleMsg(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = runFrames(t, m, clock, 1000)
	if m.Active() != content.Home {
		t.Fatalf("expected home after shift+tab, got %q", m.Active())
	}
}

func TestManualScrollCancelsNavigation(t *testing.T) {
	m, clock := newTestModel(t)

	m, _ = m.handleMsg(key("5"))
	clock.t = clock.t.Add(time.Second / 60)
	m, _ = m.handleMsg(frameMsg{at: clock.t, seq: m.frameSeq})
	if !m.nav.Pending() {
		t.Fatal("expected navigation in flight")
	}
	before := m.viewport.YOffset

	m, _ = m.handleMsg(key("k"))
	if m.nav.Pending() {
		t.Fatal("expected manual scroll to abandon navigation")
	}
	if want := max(0, before-1); m.viewport.YOffset != want {
		t.Fatalf("expected offset %d, got %d", want, m.viewport.YOffset)
	}
}

func TestUnknownSectionReportsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = m.handleMsg(key("j"))
	offset, active := m.viewport.YOffset, m.Active()

	m, _ = m.handleMsg(key("9"))
	if m.nav.Pending() {
		t.Fatal("expected no navigation for an unknown section")
	}
	if m.viewport.YOffset != offset || m.Active() != active {
		t.Fatal("expected unknown section to leave scroll state untouched")
	}
	if !strings.Contains(m.status, "unknown section") {
		t.Fatalf("expected status message, got %q", m.status)
	}
	if !strings.Contains(m.View(), "unknown section") {
		t.Fatal("expected status in view")
	}

	m, _ = m.handleMsg(key("j"))
	if m.status != "" {
		t.Fatalf("expected status cleared on next key, got %q", m.status)
	}
}

func TestResizeCancelsNavigationAndRelayouts(t *testing.T) {
	m, clock := newTestModel(t)
	before := anchorOf(t, m, content.Contact)

	m, _ = m.handleMsg(key("4"))
	clock.t = clock.t.Add(time.Second / 60)
	m, _ = m.handleMsg(frameMsg{at: clock.t, seq: m.frameSeq})

	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 40, Height: 30})
	if m.nav.Pending() {
		t.Fatal("expected resize to cancel navigation")
	}
	if after := anchorOf(t, m, content.Contact); after <= before {
		t.Fatalf("expected narrower layout to push contact down: %d -> %d", before, after)
	}
	if m.viewport.Height != 30-chromeRows {
		t.Fatalf("expected viewport height %d, got %d", 30-chromeRows, m.viewport.Height)
	}
}

func TestResizeSnapsProgressBar(t *testing.T) {
	m, clock := newTestModel(t)
	m, _ = m.handleMsg(key("G"))
	clock.t = clock.t.Add(time.Second / 60)
	m, _ = m.handleMsg(frameMsg{at: clock.t, seq: m.frameSeq})
	if _, smoothed := m.Progress(); smoothed >= 1 {
		t.Fatalf("expected smoothed progress to lag before resize, got %v", smoothed)
	}

	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 40, Height: 30})
	raw, smoothed := m.Progress()
	if smoothed != raw {
		t.Fatalf("expected bar to follow the relayout at once: raw=%v smoothed=%v", raw, smoothed)
	}
	if !m.smoother.Settled() {
		t.Fatal("expected spring at rest after relayout")
	}
}

func TestStaleFrameIsIgnored(t *testing.T) {
	m, clock := newTestModel(t)
	m, _ = m.handleMsg(key("3"))
	seq := m.frameSeq

	next, cmd := m.handleMsg(frameMsg{at: clock.t.Add(time.Second), seq: seq + 7})
	if cmd != nil {
		t.Fatal("expected no command for a stale frame")
	}
	if next.viewport.YOffset != m.viewport.YOffset || !next.nav.Pending() {
		t.Fatal("expected stale frame to leave state untouched")
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = m.handleMsg(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.viewport.YOffset != wheelRows {
		t.Fatalf("expected offset %d, got %d", wheelRows, m.viewport.YOffset)
	}
	m, _ = m.handleMsg(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.viewport.YOffset != 0 {
		t.Fatalf("expected offset 0, got %d", m.viewport.YOffset)
	}
}

func TestViewShowsChrome(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{content.Default().Name, "1 Home", "2 About", "q quit", "0%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestQuitClearsView(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := m.handleMsg(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestParticleTickRedrawsBand(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m, err := New(Options{
		Profile:       content.Default(),
		Reveal:        reveal.DefaultConfig(),
		Particles:     true,
		ParticleCount: 30,
		ParticleSeed:  7,
		Now:           clock.now,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, cmd := m.handleMsg(particleTickMsg(clock.t))
	if cmd == nil {
		t.Fatal("expected next particle tick")
	}
	band := strings.Split(m.viewport.View(), "\n")[:particleRows]
	for _, line := range band {
		for _, r := range line {
			if r > 0x2800 && r <= 0x28FF {
				return
			}
		}
	}
	t.Fatalf("expected braille particles in the hero band, got %q", band)
}
