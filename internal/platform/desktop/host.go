package desktop

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/skyhop/internal/clock"
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
	"github.com/vovakirdan/skyhop/internal/game"
)

// Options configures the desktop window.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig

	// Record keeps the input log so the session can be saved and replayed.
	Record bool

	// Replay, when set, plays a recording instead of reading input.
	Replay *game.Player

	Logger *log.Logger
}

// Host implements ebiten.Game around one session.
type Host struct {
	game     *game.Game
	player   *game.Player
	input    *InputAdapter
	recorder *game.Recorder
	scene    scene
	logger   *log.Logger
	seed     int64
	tickRate int
	width    int
	height   int
	frames   uint64
	poll     func(w, h int) Buttons
}

// NewHost creates a host for a live session, or for watching a replay.
// Runtime.Seed must already be resolved; zero is a valid seed here.
func NewHost(opts Options) (*Host, error) {
	var (
		g   *game.Game
		err error
	)
	if opts.Replay != nil {
		g = opts.Replay.Game()
	} else if g, err = game.New(opts.Config, opts.Runtime.Seed); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := opts.Runtime.TickRate
	if rate <= 0 {
		rate = clock.DefaultTickRate
	}

	var rec *game.Recorder
	if opts.Record && opts.Replay == nil {
		rec = game.NewRecorder(opts.Runtime.Seed)
	}

	geo := g.Config().Geometry()
	return &Host{
		game:     g,
		player:   opts.Replay,
		input:    NewInputAdapter(),
		recorder: rec,
		scene:    scene{geo: geo},
		logger:   logger,
		seed:     opts.Runtime.Seed,
		tickRate: rate,
		width:    int(geo.Width),
		height:   int(geo.Height),
		poll:     pollButtons,
	}, nil
}

// Update advances the simulation by one tick.
func (h *Host) Update() error {
	b := h.poll(h.width, h.height)
	if b.Quit {
		return ebiten.Termination
	}
	h.frames++

	if h.player != nil {
		h.player.Step()
		return nil
	}

	frame := h.input.Frame(b)
	result := h.game.Step(frame)
	if h.recorder != nil {
		h.recorder.Observe(result.Tick, frame)
	}
	if result.Died {
		h.logger.Debug("run over",
			"tick", result.Tick,
			"score", result.Overlay.Score,
			"high", result.Overlay.HighScore)
	}
	return nil
}

// Draw renders the current snapshot.
func (h *Host) Draw(screen *ebiten.Image) {
	h.scene.draw(screen, h.game.Snapshot(), h.game.Overlay(), h.frames)
}

// Layout keeps the logical canvas fixed; Ebiten scales it to the window.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.width, h.height
}

// Game returns the session's game.
func (h *Host) Game() *game.Game {
	return h.game
}

// Recording returns the recorded input log, if recording was enabled.
func (h *Host) Recording() (game.Recording, bool) {
	if h.recorder == nil {
		return game.Recording{}, false
	}
	return h.recorder.Recording(), true
}

// Run opens the window and blocks until it is closed or Escape is pressed.
// The host is returned even on error so a partial session can be saved.
func Run(opts Options) (*Host, error) {
	h, err := NewHost(opts)
	if err != nil {
		return nil, err
	}

	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowTitle("Skyhop")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(h.tickRate)

	h.logger.Info("starting desktop window", "tps", h.tickRate, "seed", h.seed)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return h, err
	}
	return h, nil
}

var _ ebiten.Game = (*Host)(nil)
