package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyhop/internal/clock"
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a game screen.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig

	// Clock drives the simulation. Defaults to a wall-clock ticker at Runtime.TickRate.
	Clock clock.Clock

	// Record keeps the input log so the session can be saved and replayed.
	Record bool

	// Replay, when set, plays a recording instead of reading input.
	Replay *game.Player

	Logger      *log.Logger
	HoldRelease time.Duration
	Now         func() time.Time
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	game     *game.Game
	player   *game.Player
	clock    clock.Clock
	input    *InputAdapter
	recorder *game.Recorder
	renderer Renderer
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	runtime  core.RuntimeConfig
	now      func() time.Time
	quitting bool
}

// NewModel creates a model for a live session, or for watching a replay.
func NewModel(opts Options) (Model, error) {
	rt := opts.Runtime
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = clock.DefaultTickRate
	}

	var (
		g   *game.Game
		err error
	)
	if opts.Replay != nil {
		g = opts.Replay.Game()
	} else if g, err = game.New(opts.Config, rt.Seed); err != nil {
		return Model{}, err
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.NewTicker(rt.TickRate)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var rec *game.Recorder
	if opts.Record && opts.Replay == nil {
		rec = game.NewRecorder(rt.Seed)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:     g,
		player:   opts.Replay,
		clock:    clk,
		input:    NewInputAdapter(opts.HoldRelease),
		recorder: rec,
		renderer: NewRenderer(g.Config().Geometry()),
		screen:   core.NewScreen(rt.ScreenW, playfieldHeight(rt.ScreenH)),
		keys:     DefaultKeyMap(),
		help:     h,
		logger:   logger,
		runtime:  rt,
		now:      now,
	}, nil
}

// playfieldHeight leaves the last terminal row for the help footer.
func playfieldHeight(h int) int {
	return max(h-1, 1)
}

// Init starts the clock and the tick loop.
func (m Model) Init() tea.Cmd {
	m.clock.Start()
	return waitForTick(m.clock)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.clock.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Fly):
		if m.player == nil {
			m.input.KeyPress(m.now())
		}
	}

	return m, nil
}

// handleMouse maps the left button to pointer down and any release to pointer up.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.player != nil {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.input.PointerDown()
		}
	case tea.MouseActionRelease:
		if m.input.Holding() {
			m.input.PointerUp()
		}
	}
	return m, nil
}

// handleResize processes window resize events.
// The simulation runs in canvas units, so only the cell grid changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.player != nil {
		if _, ok := m.player.Step(); !ok || m.player.Done() {
			m.clock.Stop()
		}
		return m, waitForTick(m.clock)
	}

	m.input.Expire(m.now())
	frame := m.input.Drain()
	result := m.game.Step(frame)
	if m.recorder != nil {
		m.recorder.Observe(result.Tick, frame)
	}
	if result.Died {
		m.logger.Debug("run over",
			"tick", result.Tick,
			"score", result.Overlay.Score,
			"high", result.Overlay.HighScore)
	}

	return m, waitForTick(m.clock)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.renderer.Draw(m.screen, m.game.Snapshot(), m.game.Overlay())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".skyhop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("skyhop_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Draw(m.screen, m.game.Snapshot(), m.game.Overlay())

	footer := m.help.View(m.keys)
	if m.player != nil {
		footer = fmt.Sprintf("replay  tick %d", m.game.Tick())
		if m.player.Done() {
			footer += "  (finished, q to quit)"
		}
	}
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// Game returns the session's game.
func (m Model) Game() *game.Game {
	return m.game
}

// Seed returns the seed the session was started with.
func (m Model) Seed() int64 {
	return m.runtime.Seed
}

// Recording returns the recorded input log, if recording was enabled.
func (m Model) Recording() (game.Recording, bool) {
	if m.recorder == nil {
		return game.Recording{}, false
	}
	return m.recorder.Recording(), true
}

// Run starts the Bubble Tea program and returns the final model.
// The clock is stopped when the program exits, however it exits.
func Run(opts Options) (Model, error) {
	model, err := NewModel(opts)
	if err != nil {
		return Model{}, err
	}
	defer model.clock.Stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return model, nil
}
