// Package content holds the portfolio profile shown on the page.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultProfile []byte

// ErrInvalidContent reports a profile that cannot be rendered.
var ErrInvalidContent = errors.New("invalid content")

// Section ids in document order.
const (
	Home     = "home"
	About    = "about"
	Projects = "projects"
	Skills   = "skills"
	Contact  = "contact"
)

// Order lists every section id in document order.
var Order = []string{Home, About, Projects, Skills, Contact}

// Titles maps section ids to their navigation labels.
var Titles = map[string]string{
	Home:     "Home",
	About:    "About",
	Projects: "Projects",
	Skills:   "Skills",
	Contact:  "Contact",
}

// Profile is everything shown on the page.
type Profile struct {
	Name     string        `yaml:"name"`
	Role     string        `yaml:"role"`
	Tagline  string        `yaml:"tagline"`
	CTA      string        `yaml:"cta"`
	About    string        `yaml:"about"`
	Projects []Project     `yaml:"projects"`
	Skills   []SkillGroup  `yaml:"skills"`
	Contact  []ContactLink `yaml:"contact"`
}

type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Link        string   `yaml:"link"`
}

type SkillGroup struct {
	Category string  `yaml:"category"`
	Items    []Skill `yaml:"items"`
}

// Skill is a named proficiency; Level is in [0,1].
type Skill struct {
	Name  string  `yaml:"name"`
	Level float64 `yaml:"level"`
}

type ContactLink struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Default returns the embedded profile.
func Default() Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("embedded profile: %v", err))
	}
	return p
}

// Load reads a profile from path. An empty path returns the embedded
// profile.
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshal content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks that every section has something to show.
func (p Profile) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.About) == "" {
		missing = append(missing, "about")
	}
	if len(p.Projects) == 0 {
		missing = append(missing, "projects")
	}
	if len(p.Skills) == 0 {
		missing = append(missing, "skills")
	}
	if len(p.Contact) == 0 {
		missing = append(missing, "contact")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidContent, strings.Join(missing, ", "))
	}
	for _, g := range p.Skills {
		for _, s := range g.Items {
			if !(s.Level >= 0 && s.Level <= 1) {
				return fmt.Errorf("%w: skill %q level %v outside [0,1]", ErrInvalidContent, s.Name, s.Level)
			}
		}
	}
	return nil
}
