package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/particles"
)

type frameMsg struct {
	at  time.Time
	seq uint64
}

type particleTickMsg time.Time

func frameCmd(fps int, seq uint64) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg{at: t, seq: seq}
	})
}

func particleCmd() tea.Cmd {
	return tea.Tick(time.Second/particles.FPS, func(t time.Time) tea.Msg {
		return particleTickMsg(t)
	})
}
