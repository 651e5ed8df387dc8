package game

import (
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
)

func TestIntegrateGravity(t *testing.T) {
	p := config.Default().Physics

	e := Entity{Y: 100, Velocity: 0}
	for i := 0; i < 30; i++ {
		prev := e
		e = Integrate(e, false, p)

		if e.Velocity <= prev.Velocity {
			t.Fatalf("tick %d: velocity should strictly increase, %f -> %f", i, prev.Velocity, e.Velocity)
		}
		if e.Velocity != prev.Velocity+p.Gravity {
			t.Fatalf("tick %d: velocity = %f, expected %f", i, e.Velocity, prev.Velocity+p.Gravity)
		}
		if e.Y != prev.Y+(prev.Velocity+p.Gravity) {
			t.Fatalf("tick %d: position = %f, expected %f", i, e.Y, prev.Y+(prev.Velocity+p.Gravity))
		}
	}
}

func TestIntegrateThrustClamp(t *testing.T) {
	p := config.Default().Physics

	e := Entity{Y: 250, Velocity: 5}
	for i := 0; i < 10000; i++ {
		e = Integrate(e, true, p)
		if e.Velocity < p.MaxUpwardVelocity {
			t.Fatalf("tick %d: velocity %f went past the upward limit %f", i, e.Velocity, p.MaxUpwardVelocity)
		}
	}
	if e.Velocity != p.MaxUpwardVelocity {
		t.Errorf("long hold should settle at %f, got %f", p.MaxUpwardVelocity, e.Velocity)
	}
}

func TestIntegrateThrustClampsJumpImpulse(t *testing.T) {
	p := config.Default().Physics

	// A held jump is clamped on the very next tick.
	e := Jump(Entity{Y: 250}, p)
	e = Integrate(e, true, p)

	if e.Velocity != p.MaxUpwardVelocity {
		t.Errorf("velocity = %f, expected %f", e.Velocity, p.MaxUpwardVelocity)
	}
	if e.Y != 250+p.MaxUpwardVelocity {
		t.Errorf("position = %f, expected %f", e.Y, 250+p.MaxUpwardVelocity)
	}
}

func TestJumpOverridesVelocity(t *testing.T) {
	p := config.Default().Physics

	for _, v := range []float64{-20, -4, 0, 3.3, 50} {
		e := Jump(Entity{Y: 200, Velocity: v}, p)
		if e.Velocity != p.JumpForce {
			t.Errorf("Jump from %f: velocity = %f, expected %f", v, e.Velocity, p.JumpForce)
		}
		if e.Y != 200 {
			t.Errorf("Jump must not move the entity, Y = %f", e.Y)
		}
	}
}
