// Package config provides YAML-based game configuration: the geometry shared
// by the simulation and its renderers, the physics constants and the obstacle
// rules. Defaults are embedded; files can override any subset of fields.
package config

// Config contains all tunable constants of the game.
type Config struct {
	Bounds    Bounds    `yaml:"bounds"`
	Physics   Physics   `yaml:"physics"`
	Entity    Entity    `yaml:"entity"`
	Obstacles Obstacles `yaml:"obstacles"`
}

// Bounds defines the playfield in canvas units.
type Bounds struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	GroundMargin  float64 `yaml:"ground_margin"`  // entity dies below Height - GroundMargin
	CeilingMargin float64 `yaml:"ceiling_margin"` // entity dies above CeilingMargin
}

// Physics defines per-tick accelerations and velocity limits.
// Negative values point up.
type Physics struct {
	Gravity           float64 `yaml:"gravity"`
	JumpForce         float64 `yaml:"jump_force"`
	HoldForce         float64 `yaml:"hold_force"`
	MaxUpwardVelocity float64 `yaml:"max_upward_velocity"`
}

// Entity defines the player-controlled entity.
type Entity struct {
	X      float64 `yaml:"x"` // fixed horizontal center
	StartY float64 `yaml:"start_y"`
	Radius float64 `yaml:"radius"`
}

// Obstacles defines the gated barriers.
type Obstacles struct {
	Speed     float64 `yaml:"speed"`       // scroll per tick
	Spacing   float64 `yaml:"spacing"`     // distance from the right edge before the next spawn
	Width     float64 `yaml:"width"`       // barrier body width
	GapHeight float64 `yaml:"gap_height"`  // passable window height
	GapMinTop float64 `yaml:"gap_min_top"` // lowest possible gap top offset
	GapRange  float64 `yaml:"gap_range"`   // gap top is drawn from [GapMinTop, GapMinTop+GapRange)
	InitialX  float64 `yaml:"initial_x"`   // position of the first obstacle after a reset
}

// Geometry is the subset of constants renderers need to draw a snapshot.
type Geometry struct {
	Width        float64
	Height       float64
	PipeWidth    float64
	GapHeight    float64
	EntityX      float64
	EntityRadius float64
	GroundMargin float64
}

// Geometry extracts the renderer-facing constants.
func (c Config) Geometry() Geometry {
	return Geometry{
		Width:        c.Bounds.Width,
		Height:       c.Bounds.Height,
		PipeWidth:    c.Obstacles.Width,
		GapHeight:    c.Obstacles.GapHeight,
		EntityX:      c.Entity.X,
		EntityRadius: c.Entity.Radius,
		GroundMargin: c.Bounds.GroundMargin,
	}
}
