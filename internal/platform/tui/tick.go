// Package tui provides the Bubble Tea host for the game.
// It drives the simulation from a clock, maps keys and mouse to commands,
// and renders snapshots into the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyhop/internal/clock"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// waitForTick returns a Bubble Tea command that blocks until the clock fires.
// Once the clock is stopped it yields no message and the tick loop ends.
func waitForTick(clk clock.Clock) tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-clk.C():
			return TickMsg(t)
		case <-clk.Done():
			return nil
		}
	}
}
