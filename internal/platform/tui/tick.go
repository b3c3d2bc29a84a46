// Package tui provides the Bubble Tea integration for the brick breaker.
// It handles the terminal UI loop, input mapping and the fixed-step clock
// that drives the engine.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per presentation frame.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends a frame message at the
// specified rate.
func frameCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
