// Package tui provides the Bubble Tea integration for stickrace.
// It handles the terminal UI loop, input mapping, and match orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// HandoffMsg fires when the pause between turns is over. Seq ties it to
// the handoff that scheduled it, so stale ticks from a discarded match
// are ignored.
type HandoffMsg struct {
	Seq int
	At  time.Time
}

// handoffCmd returns a Bubble Tea command that delivers a HandoffMsg after d.
func handoffCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return HandoffMsg{Seq: seq, At: t}
	})
}
