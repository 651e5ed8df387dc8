package game

import (
	"fmt"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// InputEvent is one command applied at a given tick.
type InputEvent struct {
	Tick    uint64       `msgpack:"t"`
	Command core.Command `msgpack:"c"`
}

// Recording is everything needed to reproduce a session: the seed of the
// gap generator, the ordered input log and the number of ticks stepped.
type Recording struct {
	Seed   int64
	Events []InputEvent
	Ticks  uint64
}

// Recorder accumulates the input log of a live session.
type Recorder struct {
	seed   int64
	events []InputEvent
	ticks  uint64
}

// NewRecorder creates a recorder for a session started with seed.
func NewRecorder(seed int64) *Recorder {
	return &Recorder{seed: seed}
}

// Observe records the frame applied at tick. Call it with StepResult.Tick.
func (r *Recorder) Observe(tick uint64, in core.InputFrame) {
	for _, c := range in.Commands {
		r.events = append(r.events, InputEvent{Tick: tick, Command: c})
	}
	r.ticks = tick
}

// Recording returns a copy of what was recorded so far.
func (r *Recorder) Recording() Recording {
	events := make([]InputEvent, len(r.events))
	copy(events, r.events)
	return Recording{Seed: r.seed, Events: events, Ticks: r.ticks}
}

// Digest summarizes the final state of a session. Two runs of the same
// recording must produce identical digests.
type Digest struct {
	Tick      uint64
	EntityY   float64
	Score     int
	HighScore int
	Runs      int
	Phase     Phase
}

// DigestOf captures the digest of g.
func DigestOf(g *Game) Digest {
	return Digest{
		Tick:      g.tick,
		EntityY:   g.entity.Y,
		Score:     g.score,
		HighScore: g.highScore,
		Runs:      g.runs,
		Phase:     g.phase,
	}
}

// Player re-simulates a recording one tick at a time.
type Player struct {
	game   *Game
	events []InputEvent
	next   int
	total  uint64
	frame  core.InputFrame
}

// NewPlayer creates a player for rec under cfg.
func NewPlayer(cfg config.Config, rec Recording) (*Player, error) {
	for i := 1; i < len(rec.Events); i++ {
		if rec.Events[i].Tick < rec.Events[i-1].Tick {
			return nil, fmt.Errorf("game: recording events out of order at index %d", i)
		}
	}
	if n := len(rec.Events); n > 0 && rec.Events[n-1].Tick > rec.Ticks {
		return nil, fmt.Errorf("game: recording has events after its last tick %d", rec.Ticks)
	}

	g, err := New(cfg, rec.Seed)
	if err != nil {
		return nil, err
	}
	return &Player{
		game:   g,
		events: rec.Events,
		total:  rec.Ticks,
		frame:  core.NewInputFrame(),
	}, nil
}

// Step advances one recorded tick. It reports false once the recording is exhausted.
func (p *Player) Step() (StepResult, bool) {
	if p.Done() {
		return StepResult{}, false
	}

	tick := p.game.Tick() + 1
	p.frame.Clear()
	for p.next < len(p.events) && p.events[p.next].Tick == tick {
		p.frame.Push(p.events[p.next].Command)
		p.next++
	}
	return p.game.Step(p.frame), true
}

// Done reports whether every recorded tick has been replayed.
func (p *Player) Done() bool {
	return p.game.Tick() >= p.total
}

// Game exposes the game being replayed, for rendering.
func (p *Player) Game() *Game {
	return p.game
}

// Replay runs a recording to completion and returns its digest.
func Replay(cfg config.Config, rec Recording) (Digest, error) {
	p, err := NewPlayer(cfg, rec)
	if err != nil {
		return Digest{}, err
	}
	for {
		if _, ok := p.Step(); !ok {
			break
		}
	}
	return DigestOf(p.game), nil
}
