package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/reveal"
	"github.com/olivier-w/folio/internal/section"
)

const (
	// revealShift is how many columns a hidden section is pushed right.
	revealShift = 4
	// margin is the left indent of every document line.
	margin = 2

	maxContentWidth = 96
	skillBarWidth   = 20
)

type block struct {
	id    string
	title string
	top   int
	lines []string
	// particleRows reserves the first rows of the block for the particle band.
	particleRows int
}

// document is the page laid out for one terminal size.
type document struct {
	blocks   []block
	padding  int
	total    int
	width    int
	bandCols int
}

// buildDocument wraps the profile to width and stacks the sections. Trailing
// padding makes every anchor reachable as the top row of a viewport of
// viewHeight rows.
func buildDocument(p content.Profile, width, viewHeight, particleRows int) document {
	cw := width - margin - revealShift
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	if cw < 20 {
		cw = 20
	}

	blocks := []block{
		heroBlock(p, cw, particleRows),
		{id: content.About, lines: aboutLines(p, cw)},
		{id: content.Projects, lines: projectLines(p, cw)},
		{id: content.Skills, lines: skillLines(p, cw)},
		{id: content.Contact, lines: contactLines(p, cw)},
	}

	top := 0
	for i := range blocks {
		blocks[i].title = content.Titles[blocks[i].id]
		blocks[i].top = top
		top += len(blocks[i].lines)
	}
	doc := document{blocks: blocks, width: cw, bandCols: cw}
	if last := len(blocks[len(blocks)-1].lines); last < viewHeight {
		doc.padding = viewHeight - last
	}
	doc.total = top + doc.padding
	return doc
}

// sections returns the navigation anchors in document order.
func (d document) sections() []section.Section {
	out := make([]section.Section, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = section.Section{ID: section.ID(b.id), Anchor: float64(b.top), Order: i}
	}
	return out
}

func (d document) spans() []reveal.Span {
	out := make([]reveal.Span, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = reveal.Span{ID: b.id, Top: b.top, Height: len(b.lines)}
	}
	return out
}

func (d document) navItems() []navItem {
	out := make([]navItem, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = navItem{id: b.id, title: b.title}
	}
	return out
}

// render joins the document into exactly d.total lines. progress returns the
// reveal progress of a section; band is the particle field view.
func (d document) render(progress func(id string) float64, band string) string {
	lines := make([]string, 0, d.total)
	for _, b := range d.blocks {
		indent := spaces(margin + int(math.Round((1-progress(b.id))*revealShift)))
		var bandLines []string
		if b.particleRows > 0 {
			bandLines = strings.Split(band, "\n")
		}
		for i, line := range b.lines {
			if i < b.particleRows {
				if len(bandLines) == b.particleRows {
					line = particleStyle.Render(bandLines[i])
				}
				lines = append(lines, spaces(margin)+line)
				continue
			}
			if line == "" {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, indent+line)
		}
	}
	for range d.padding {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func heroBlock(p content.Profile, width, particleRows int) block {
	var lines []string
	for range particleRows {
		lines = append(lines, "")
	}
	lines = append(lines, "", nameStyle.Render(p.Name))
	if p.Role != "" {
		lines = append(lines, roleStyle.Render(p.Role))
	}
	if p.Tagline != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(textStyle, p.Tagline, width)...)
	}
	if p.CTA != "" {
		lines = append(lines, "", ctaStyle.Render("[c] "+p.CTA))
	}
	lines = append(lines, "")
	return block{id: content.Home, lines: lines, particleRows: particleRows}
}

func aboutLines(p content.Profile, width int) []string {
	lines := heading(content.Titles[content.About])
	for i, para := range strings.Split(strings.TrimSpace(p.About), "\n\n") {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, wrap(textStyle, strings.Join(strings.Fields(para), " "), width)...)
	}
	return append(lines, "")
}

func projectLines(p content.Profile, width int) []string {
	lines := heading(content.Titles[content.Projects])
	for i, pr := range p.Projects {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, nameStyle.Render(pr.Name))
		if pr.Description != "" {
			lines = append(lines, wrap(textStyle, pr.Description, width)...)
		}
		if len(pr.Tech) > 0 {
			lines = append(lines, wrap(dimStyle, strings.Join(pr.Tech, " · "), width)...)
		}
		if pr.Link != "" {
			lines = append(lines, roleStyle.Render(pr.Link))
		}
	}
	return append(lines, "")
}

func skillLines(p content.Profile, width int) []string {
	lines := heading(content.Titles[content.Skills])
	nameWidth := 0
	for _, g := range p.Skills {
		for _, s := range g.Items {
			nameWidth = max(nameWidth, lipgloss.Width(s.Name))
		}
	}
	barWidth := min(skillBarWidth, max(4, width-nameWidth-8))
	for i, g := range p.Skills {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, nameStyle.Render(g.Category))
		for _, s := range g.Items {
			name := s.Name + spaces(nameWidth-lipgloss.Width(s.Name))
			lines = append(lines, fmt.Sprintf("%s  %s %s",
				textStyle.Render(name),
				roleStyle.Render(renderLevelBar(s.Level, barWidth)),
				dimStyle.Render(fmt.Sprintf("%3d%%", int(math.Round(s.Level*100))))))
		}
	}
	return append(lines, "")
}

func contactLines(p content.Profile, width int) []string {
	lines := heading(content.Titles[content.Contact])
	labelWidth := 0
	for _, c := range p.Contact {
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
	}
	for _, c := range p.Contact {
		label := c.Label + spaces(labelWidth-lipgloss.Width(c.Label))
		lines = append(lines, dimStyle.Render(label)+"  "+textStyle.Render(c.Value))
	}
	return append(lines, "")
}

func heading(title string) []string {
	return []string{headingStyle.Render(title), ""}
}

func wrap(style lipgloss.Style, s string, width int) []string {
	out := strings.Split(style.Width(width).Render(s), "\n")
	for i := range out {
		out[i] = strings.TrimRight(out[i], " ")
	}
	return out
}

// Anchors lays out p for a terminal of the given size and returns the
// section anchors the navigator would use.
func Anchors(p content.Profile, width, height int, withParticles bool) []section.Section {
	rows := 0
	if withParticles {
		rows = particleRows
	}
	return buildDocument(p, width, max(1, height-chromeRows), rows).sections()
}
