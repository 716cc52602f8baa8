package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval paces animation frames.
const frameInterval = 16 * time.Millisecond

type frameMsg struct{}

type visitMsg struct {
	DeckID   string
	Recorded bool
	Counts   map[string]int
	Err      error
}

type historyResetMsg struct {
	Err error
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}
