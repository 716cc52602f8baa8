package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/decks/internal/clock"
)

// timerMsg carries a due callback back onto the Update loop.
type timerMsg struct {
	run func()
}

// LoopClock is a clock.Clock whose callbacks run inside Model.Update. The
// program's send function is read when a timer is armed, so timers armed
// before SetSend are dropped.
type LoopClock struct {
	send func(tea.Msg)
}

var _ clock.Clock = (*LoopClock)(nil)

func (c *LoopClock) AfterFunc(d time.Duration, fn func()) clock.Timer {
	send := c.send
	return clock.Loop{Post: func(run func()) {
		if send != nil {
			send(timerMsg{run: run})
		}
	}}.AfterFunc(d, fn)
}
