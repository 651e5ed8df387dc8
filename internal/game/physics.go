// Package game implements the skyhop simulation: a single entity flying under
// gravity and thrust through a stream of gated obstacles.
//
// The package is pure and deterministic. It never reads the clock and never
// draws; hosts feed it one InputFrame per tick and read back snapshots.
package game

import (
	"math"

	"github.com/vovakirdan/skyhop/internal/config"
)

// Entity is the player-controlled body. Only its vertical motion is
// simulated; the horizontal position is fixed by configuration.
type Entity struct {
	Y        float64 // center, canvas units, grows downward
	Velocity float64 // per tick, negative = up
}

// Integrate advances the entity by one tick.
// Holding thrust accelerates upward but never beyond MaxUpwardVelocity;
// otherwise gravity pulls it down. Position moves by the updated velocity.
func Integrate(e Entity, thrustHeld bool, p config.Physics) Entity {
	if thrustHeld {
		e.Velocity += p.HoldForce
		e.Velocity = math.Max(e.Velocity, p.MaxUpwardVelocity)
	} else {
		e.Velocity += p.Gravity
	}
	e.Y += e.Velocity
	return e
}

// Jump replaces the accumulated velocity with the jump impulse.
func Jump(e Entity, p config.Physics) Entity {
	e.Velocity = p.JumpForce
	return e
}
