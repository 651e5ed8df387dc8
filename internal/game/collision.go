package game

import (
	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

// Outcome is the result of a collision check.
type Outcome uint8

const (
	OutcomeAlive Outcome = iota
	OutcomeDead
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	if o == OutcomeDead {
		return "Dead"
	}
	return "Alive"
}

// Hits records which terminal conditions held on a tick.
type Hits struct {
	Ground   bool
	Ceiling  bool
	Obstacle bool
}

// Outcome is Dead if any condition holds.
func (h Hits) Outcome() Outcome {
	if h.Ground || h.Ceiling || h.Obstacle {
		return OutcomeDead
	}
	return OutcomeAlive
}

// Check tests the entity against the playfield bounds and every obstacle.
//
// The test is instantaneous: it looks at the end-of-tick position only. At
// the default speeds the entity moves at most a few units per tick, well
// under its radius and the obstacle width, so nothing can tunnel through.
func Check(e Entity, obstacles []Obstacle, cfg config.Config) Hits {
	b := cfg.Bounds
	hits := Hits{
		Ground:  e.Y > b.Height-b.GroundMargin,
		Ceiling: e.Y < b.CeilingMargin,
	}

	body := core.Centered(cfg.Entity.X, cfg.Entity.Radius)
	extent := core.Centered(e.Y, cfg.Entity.Radius)
	for _, o := range obstacles {
		if !body.Overlaps(core.NewSpan(o.X, cfg.Obstacles.Width)) {
			continue
		}
		// Grazing the gap edge is still a pass.
		if !extent.Within(core.NewSpan(o.GapTop, cfg.Obstacles.GapHeight)) {
			hits.Obstacle = true
			break
		}
	}
	return hits
}
