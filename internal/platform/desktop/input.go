// Package desktop hosts the game in an Ebiten window on its native 800x500
// canvas. Ebiten calls Update at a fixed TPS, which serves as the
// simulation clock.
package desktop

import "github.com/vovakirdan/skyhop/internal/core"

// Buttons is the device state sampled once per update.
type Buttons struct {
	KeyDown       bool // a fly key went down this update
	KeyUp         bool // a fly key was released this update
	PointerDown   bool
	PointerUp     bool
	PointerInside bool // cursor is over the canvas
	Quit          bool
}

// InputAdapter converts sampled buttons into the commands for one tick.
// Keys and the pointer share a single hold: a key press while holding is
// ignored, a pointer press always activates, and any release or the pointer
// leaving the canvas ends the hold.
type InputAdapter struct {
	holding   bool
	wasInside bool
	frame     core.InputFrame
}

// NewInputAdapter creates an adapter with no hold in progress.
func NewInputAdapter() *InputAdapter {
	return &InputAdapter{frame: core.NewInputFrame()}
}

// Frame returns the commands produced by b. The returned frame is reused by
// the next call.
func (a *InputAdapter) Frame(b Buttons) core.InputFrame {
	a.frame.Clear()

	if b.PointerDown {
		a.holding = true
		a.frame.Push(core.CommandActivate)
	} else if b.KeyDown && !a.holding {
		a.holding = true
		a.frame.Push(core.CommandActivate)
	}

	left := a.wasInside && !b.PointerInside
	a.wasInside = b.PointerInside
	if b.KeyUp || b.PointerUp || left {
		a.holding = false
		a.frame.Push(core.CommandDeactivate)
	}

	return a.frame
}

// Holding reports whether thrust is currently requested.
func (a *InputAdapter) Holding() bool {
	return a.holding
}
