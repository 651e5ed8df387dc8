package game

import "fmt"

// Phase is the lifecycle state of a game session.
type Phase uint8

const (
	PhaseIdle    Phase = iota // before the first activation
	PhaseRunning              // physics and obstacles advance every tick
	PhaseOver                 // frozen until the next activation
)

// String returns the phase name used in logs and storage.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "idle":
		return PhaseIdle, nil
	case "running":
		return PhaseRunning, nil
	case "over":
		return PhaseOver, nil
	}
	return PhaseIdle, fmt.Errorf("game: unknown phase %q", s)
}

// Snapshot is an immutable copy of everything a renderer draws.
type Snapshot struct {
	Tick           uint64
	EntityY        float64
	EntityVelocity float64
	Obstacles      []Obstacle
	Score          int
	Phase          Phase
}

// Overlay is what the presentation layer needs to show or hide its panels.
type Overlay struct {
	Phase     Phase
	Score     int
	HighScore int
}

// Snapshot copies the current state. The returned value shares nothing with the game.
func (g *Game) Snapshot() Snapshot {
	live := g.obstacles.Obstacles()
	obstacles := make([]Obstacle, len(live))
	copy(obstacles, live)

	return Snapshot{
		Tick:           g.tick,
		EntityY:        g.entity.Y,
		EntityVelocity: g.entity.Velocity,
		Obstacles:      obstacles,
		Score:          g.score,
		Phase:          g.phase,
	}
}

// Overlay returns the current overlay state.
func (g *Game) Overlay() Overlay {
	return Overlay{
		Phase:     g.phase,
		Score:     g.score,
		HighScore: g.highScore,
	}
}
