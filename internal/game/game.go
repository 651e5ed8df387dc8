package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// StepResult describes what happened during one tick.
type StepResult struct {
	Tick    uint64 // tick number the input frame was applied at
	Overlay Overlay
	Scored  int  // obstacles retired this tick
	Hits    Hits // collision result, zero unless the phase was Running
	Died    bool // Running -> Over happened this tick
}

// Game is the controller that owns one session's state.
//
// A session starts Idle. The first activation starts a run; a collision ends
// it; the next activation restarts. The high score survives restarts for the
// lifetime of the Game.
type Game struct {
	cfg       config.Config
	entity    Entity
	obstacles *ObstacleManager
	thrust    bool
	score     int
	highScore int
	runs      int
	phase     Phase
	tick      uint64
}

// New creates a game whose obstacle gaps are drawn from a source seeded with seed.
func New(cfg config.Config, seed int64) (*Game, error) {
	return NewWithSource(cfg, rand.New(rand.NewSource(seed)))
}

// NewWithSource creates a game drawing obstacle gaps from rng.
// The configuration is validated; an invalid one is rejected.
func NewWithSource(cfg config.Config, rng RandSource) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("game: nil random source")
	}

	g := &Game{
		cfg:       cfg,
		entity:    Entity{Y: cfg.Entity.StartY},
		obstacles: NewObstacleManager(cfg, rng),
		phase:     PhaseIdle,
	}
	return g, nil
}

// Activate handles key down / pointer down: it starts an idle game, restarts
// a finished one, and always applies the jump impulse and holds thrust.
func (g *Game) Activate() {
	switch g.phase {
	case PhaseIdle:
		g.phase = PhaseRunning
		g.runs++
	case PhaseOver:
		g.restart()
	}
	g.entity = Jump(g.entity, g.cfg.Physics)
	g.thrust = true
}

// Deactivate releases thrust. It never changes the phase.
func (g *Game) Deactivate() {
	g.thrust = false
}

// Apply dispatches a single command.
func (g *Game) Apply(c core.Command) {
	switch c {
	case core.CommandActivate:
		g.Activate()
	case core.CommandDeactivate:
		g.Deactivate()
	}
}

// Step advances the game by one tick. Queued commands are applied first, in
// order; then, while Running, the entity and obstacles move and collisions
// are checked. Idle and Over are frozen.
func (g *Game) Step(in core.InputFrame) StepResult {
	g.tick++
	for _, c := range in.Commands {
		g.Apply(c)
	}

	result := StepResult{Tick: g.tick}
	if g.phase == PhaseRunning {
		g.advance(&result)
	}
	result.Overlay = g.Overlay()
	return result
}

func (g *Game) advance(result *StepResult) {
	g.entity = Integrate(g.entity, g.thrust, g.cfg.Physics)

	result.Scored = g.obstacles.Update()
	g.score += result.Scored

	result.Hits = Check(g.entity, g.obstacles.Obstacles(), g.cfg)
	if result.Hits.Outcome() == OutcomeDead {
		g.phase = PhaseOver
		g.highScore = max(g.highScore, g.score)
		result.Died = true
	}
}

// restart resets the run state. The high score and random stream carry over.
func (g *Game) restart() {
	g.entity = Entity{Y: g.cfg.Entity.StartY}
	g.obstacles.Reset()
	g.score = 0
	g.runs++
	g.phase = PhaseRunning
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the score of the current (or last) run.
func (g *Game) Score() int {
	return g.score
}

// HighScore returns the best finished score of this session.
func (g *Game) HighScore() int {
	return g.highScore
}

// Entity returns the entity state.
func (g *Game) Entity() Entity {
	return g.entity
}

// ThrustHeld reports whether thrust is currently held.
func (g *Game) ThrustHeld() bool {
	return g.thrust
}

// Tick returns the number of ticks stepped so far.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Runs returns how many runs were started in this session.
func (g *Game) Runs() int {
	return g.runs
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.Config {
	return g.cfg
}
