package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultProfileIsValid(t *testing.T) {
	p := Default()
	if p.Name == "" || len(p.Projects) == 0 || len(p.Contact) == 0 {
		t.Fatalf("unexpected default profile: %+v", p)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != Default().Name {
		t.Fatalf("expected default profile, got %q", p.Name)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.yaml")
	data := `
name: Test Person
about: hello
projects: [{name: one, description: first}]
skills: [{category: Go, items: [{name: Go, level: 0.5}]}]
contact: [{label: Email, value: t@example.com}]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "Test Person" || p.Projects[0].Name != "one" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestParseRejectsIncompleteProfile(t *testing.T) {
	_, err := Parse([]byte("name: Solo\n"))
	if !errors.Is(err, ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}
	if !strings.Contains(err.Error(), "projects") {
		t.Fatalf("expected missing sections listed, got %v", err)
	}
}

func TestParseRejectsSkillLevel(t *testing.T) {
	for _, level := range []string{"1.5", "-0.1", ".nan", ".inf"} {
		data := `
name: X
about: y
projects: [{name: p}]
skills: [{category: c, items: [{name: Go, level: ` + level + `}]}]
contact: [{label: a, value: b}]
`
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidContent) {
			t.Fatalf("level %s: expected ErrInvalidContent, got %v", level, err)
		}
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("name: [unterminated")); err == nil {
		t.Fatal("expected YAML error")
	}
}
