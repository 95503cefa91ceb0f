package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/logger"
	"github.com/olivier-w/folio/internal/metrics"
	"github.com/olivier-w/folio/internal/ui"
)

type startupPhase uint8

const (
	phaseLoading startupPhase = iota
	phaseFailed
)

type contentLoadedMsg struct {
	profile content.Profile
	err     error
}

// startupModel shows a spinner while the profile loads, then hands the
// program over to the page model.
type startupModel struct {
	cfg     *config.Config
	metrics *metrics.Manager
	phase   startupPhase
	err     error
	width   int
	height  int
	spinner spinner.Model
}

func newStartupModel(cfg *config.Config, mgr *metrics.Manager) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#A855F7"})

	return startupModel{
		cfg:     cfg,
		metrics: mgr,
		phase:   phaseLoading,
		spinner: s,
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("folio"), m.spinner.Tick, loadContentCmd(m.cfg.ContentPath))
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case contentLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		page, err := ui.New(pageOptions(m.cfg, msg.profile, m.metrics))
		if err != nil {
			return m.fail(err), nil
		}

		cmds := []tea.Cmd{page.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return page, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.phase == phaseFailed || startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	return m, nil
}

func (m startupModel) fail(err error) startupModel {
	m.phase = phaseFailed
	m.err = err
	logger.Named("startup").Error(context.Background(), "content unavailable", logger.Error(err))
	return m
}

// Err returns why the page could not be shown, if it could not.
func (m startupModel) Err() error { return m.err }

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("folio"))
	b.WriteString("\n\n  ")

	if m.phase == phaseFailed {
		b.WriteString(startupErrorStyle.Render(m.err.Error()))
		b.WriteString("\n\n  ")
		b.WriteString(startupHelpStyle.Render("press any key to exit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupStatusStyle.Render("Loading..."))
	b.WriteString("\n\n  ")
	b.WriteString(startupHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func loadContentCmd(path string) tea.Cmd {
	return func() tea.Msg {
		p, err := content.Load(path)
		return contentLoadedMsg{profile: p, err: err}
	}
}

func pageOptions(cfg *config.Config, p content.Profile, mgr *metrics.Manager) ui.Options {
	return ui.Options{
		Profile:       p,
		Spring:        cfg.Spring(),
		Motion:        cfg.Motion(),
		Reveal:        cfg.Reveal(),
		Particles:     cfg.ParticlesEnabled,
		ParticleCount: cfg.ParticlesCount,
		ParticleSeed:  cfg.ParticlesSeed,
		Metrics:       mgr,
		Logger:        logger.Named("ui"),
	}
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
