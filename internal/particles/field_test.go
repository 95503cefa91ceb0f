package particles

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFieldIsDeterministicForSeed(t *testing.T) {
	a := NewField(24, 42)
	b := NewField(24, 42)
	for range 30 {
		a.Update(40, 4)
		b.Update(40, 4)
	}
	if a.View() != b.View() {
		t.Fatal("expected identical output for identical seeds")
	}
}

func TestFieldRenderDimensions(t *testing.T) {
	f := NewField(50, 1)
	f.Update(32, 5)
	lines := strings.Split(f.View(), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 32 {
			t.Fatalf("row %d has %d cells, want 32", i, n)
		}
	}
}

func TestFieldDrawsParticles(t *testing.T) {
	f := NewField(10, 3)
	f.Update(20, 3)
	if strings.TrimSpace(strings.ReplaceAll(f.View(), "\n", "")) == "" {
		t.Fatal("expected at least one braille dot")
	}
}

func TestFieldParticlesMove(t *testing.T) {
	f := NewField(5, 9)
	x0, y0 := f.Position(0)
	for range 10 {
		f.Update(10, 2)
	}
	x1, y1 := f.Position(0)
	if x0 == x1 && y0 == y1 {
		t.Fatal("expected particle to move toward its target")
	}
}

func TestFieldEmptySizes(t *testing.T) {
	f := NewField(5, 1)
	f.Update(0, 3)
	if f.View() != "" {
		t.Fatalf("expected empty view for zero width, got %q", f.View())
	}
	if NewField(-1, 1).Len() != 0 {
		t.Fatal("expected negative count to clamp to zero")
	}
}
