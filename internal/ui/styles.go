package ui

import "github.com/charmbracelet/lipgloss"

var accent = lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#A855F7"}

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	roleStyle = lipgloss.NewStyle().
			Foreground(accent)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#444444", Dark: "#CCCCCC"})

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	ctaStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#EC4899"})

	particleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#6D28D9"})

	navStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(accent)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
)
