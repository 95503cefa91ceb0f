package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/util"
)

func renderLevelBar(level float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(util.Clamp01(level) * float64(width))
	// filled <= width since level is clamped to [0,1].
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

type navItem struct {
	id    string
	title string
}

// renderNavbar lays out the numbered section links after the site name,
// highlighting the active one. Items that do not fit are dropped from the
// right.
func renderNavbar(name string, items []navItem, active string, width int) string {
	left := headerStyle.Render(name)
	used := lipgloss.Width(left) + 2

	var links []string
	for i, it := range items {
		label := fmt.Sprintf("%d %s", i+1, it.title)
		if used+len(label)+2 > width {
			break
		}
		used += len(label) + 2
		if it.id == active {
			links = append(links, navActiveStyle.Render(label))
		} else {
			links = append(links, navStyle.Render(label))
		}
	}
	if len(links) == 0 {
		return " " + left
	}
	return " " + left + "  " + strings.Join(links, "  ")
}

func renderProgressLine(bar string, ratio float64) string {
	return " " + bar + " " + dimStyle.Render(fmt.Sprintf("%4s", util.FormatPercent(ratio)))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
