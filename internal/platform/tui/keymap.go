package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/skyhop/internal/core"
)

const (
	// HoldRelease is how long a key counts as held after its last repeat.
	HoldRelease = 180 * time.Millisecond

	// RepeatDelay is how long a fresh press counts as held before the first
	// repeat arrives. Keyboards wait 500-660ms before auto-repeat starts.
	RepeatDelay = 700 * time.Millisecond
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Fly        key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fly, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fly},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Fly: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/click", "fly (hold to climb)"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// InputAdapter turns device events into the commands queued for the next tick.
//
// Terminals report key presses and repeats but never releases, so a key is
// treated as held until no repeat has arrived for the release window. The
// window is RepeatDelay until the first repeat and the shorter release window
// after it. Mouse buttons report real press and release.
type InputAdapter struct {
	frame       core.InputFrame
	holding     bool
	byKey       bool
	repeating   bool
	lastKey     time.Time
	holdRelease time.Duration
	repeatDelay time.Duration
}

// NewInputAdapter creates an adapter. A non-positive window uses HoldRelease.
func NewInputAdapter(holdRelease time.Duration) *InputAdapter {
	if holdRelease <= 0 {
		holdRelease = HoldRelease
	}
	return &InputAdapter{
		frame:       core.NewInputFrame(),
		holdRelease: holdRelease,
		repeatDelay: max(RepeatDelay, holdRelease),
	}
}

// KeyPress records a fly key press or repeat. A press while already holding
// only extends the hold.
func (a *InputAdapter) KeyPress(now time.Time) {
	a.lastKey = now
	if a.holding {
		a.repeating = a.byKey
		return
	}
	a.holding = true
	a.byKey = true
	a.repeating = false
	a.frame.Push(core.CommandActivate)
}

// PointerDown always activates, even while a hold is in progress.
func (a *InputAdapter) PointerDown() {
	a.holding = true
	a.byKey = false
	a.repeating = false
	a.frame.Push(core.CommandActivate)
}

// PointerUp releases thrust. It also serves for the pointer leaving the surface.
func (a *InputAdapter) PointerUp() {
	a.holding = false
	a.frame.Push(core.CommandDeactivate)
}

// Expire releases a keyboard hold whose repeats have stopped.
func (a *InputAdapter) Expire(now time.Time) {
	window := a.holdRelease
	if !a.repeating {
		window = a.repeatDelay
	}
	if a.holding && a.byKey && now.Sub(a.lastKey) >= window {
		a.holding = false
		a.repeating = false
		a.frame.Push(core.CommandDeactivate)
	}
}

// Holding reports whether thrust is currently requested.
func (a *InputAdapter) Holding() bool {
	return a.holding
}

// Drain returns the queued commands and starts a new frame.
func (a *InputAdapter) Drain() core.InputFrame {
	f := a.frame.Clone()
	a.frame.Clear()
	return f
}
