package config

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError contains details about a rejected configuration value.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the configuration can sustain a game.
// All problems are reported together, joined with errors.Join.
func (c Config) Validate() error {
	var errs []error
	add := func(code, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	b, p, e, o := c.Bounds, c.Physics, c.Entity, c.Obstacles

	// Every comparison below is false for NaN, so non-finite values are
	// rejected up front.
	for _, f := range []struct {
		code, name string
		v          float64
	}{
		{"BOUNDS", "bounds.width", b.Width},
		{"BOUNDS", "bounds.height", b.Height},
		{"BOUNDS", "bounds.ground_margin", b.GroundMargin},
		{"BOUNDS", "bounds.ceiling_margin", b.CeilingMargin},
		{"PHYSICS", "physics.gravity", p.Gravity},
		{"PHYSICS", "physics.jump_force", p.JumpForce},
		{"PHYSICS", "physics.hold_force", p.HoldForce},
		{"PHYSICS", "physics.max_upward_velocity", p.MaxUpwardVelocity},
		{"ENTITY", "entity.x", e.X},
		{"ENTITY", "entity.start_y", e.StartY},
		{"ENTITY", "entity.radius", e.Radius},
		{"OBSTACLES", "obstacles.speed", o.Speed},
		{"OBSTACLES", "obstacles.spacing", o.Spacing},
		{"OBSTACLES", "obstacles.width", o.Width},
		{"OBSTACLES", "obstacles.gap_height", o.GapHeight},
		{"OBSTACLES", "obstacles.gap_min_top", o.GapMinTop},
		{"OBSTACLES", "obstacles.gap_range", o.GapRange},
		{"OBSTACLES", "obstacles.initial_x", o.InitialX},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			add(f.code, "%s must be a finite number, got %g", f.name, f.v)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if b.Width <= 0 || b.Height <= 0 {
		add("BOUNDS", "canvas must be positive, got %gx%g", b.Width, b.Height)
	}
	if b.GroundMargin < 0 || b.CeilingMargin < 0 {
		add("BOUNDS", "margins must not be negative (ground %g, ceiling %g)", b.GroundMargin, b.CeilingMargin)
	}
	if b.CeilingMargin >= b.Height-b.GroundMargin {
		add("BOUNDS", "no room to fly between ceiling %g and ground %g", b.CeilingMargin, b.Height-b.GroundMargin)
	}

	// Negative is up: gravity pulls down, jump and thrust push up.
	if p.Gravity < 0 {
		add("PHYSICS", "gravity must not be negative, got %g", p.Gravity)
	}
	if p.JumpForce > 0 {
		add("PHYSICS", "jump_force must not be positive, got %g", p.JumpForce)
	}
	if p.HoldForce > 0 {
		add("PHYSICS", "hold_force must not be positive, got %g", p.HoldForce)
	}
	if p.MaxUpwardVelocity > 0 {
		add("PHYSICS", "max_upward_velocity must not be positive, got %g", p.MaxUpwardVelocity)
	}

	if e.Radius <= 0 {
		add("ENTITY", "radius must be positive, got %g", e.Radius)
	}
	if e.StartY <= b.CeilingMargin || e.StartY >= b.Height-b.GroundMargin {
		add("ENTITY", "start_y %g is outside the flyable band", e.StartY)
	}

	if o.Speed <= 0 {
		add("OBSTACLES", "speed must be positive, got %g", o.Speed)
	}
	if o.Width <= 0 {
		add("OBSTACLES", "width must be positive, got %g", o.Width)
	}
	if o.Spacing <= 0 {
		add("OBSTACLES", "spacing must be positive, got %g", o.Spacing)
	}
	// The newest obstacle must trigger the next spawn before it can be retired,
	// otherwise the sequence could run empty.
	if o.Spacing >= b.Width+o.Width {
		add("OBSTACLES", "spacing %g must be below canvas width plus obstacle width (%g)", o.Spacing, b.Width+o.Width)
	}
	if o.GapHeight <= 0 {
		add("OBSTACLES", "gap_height must be positive, got %g", o.GapHeight)
	}
	if o.GapMinTop < 0 || o.GapRange < 0 {
		add("OBSTACLES", "gap_min_top and gap_range must not be negative (%g, %g)", o.GapMinTop, o.GapRange)
	}
	if o.GapMinTop+o.GapRange+o.GapHeight > b.Height {
		add("OBSTACLES", "gap window can reach %g, beyond canvas height %g", o.GapMinTop+o.GapRange+o.GapHeight, b.Height)
	}

	return errors.Join(errs...)
}
