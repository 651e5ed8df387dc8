package config

import (
	_ "embed"
)

//go:embed defaults/skyhop.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors defaults/skyhop.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Bounds: Bounds{
			Width:         800,
			Height:        500,
			GroundMargin:  35,
			CeilingMargin: 15,
		},
		Physics: Physics{
			Gravity:           0.4,
			JumpForce:         -6,
			HoldForce:         -0.5,
			MaxUpwardVelocity: -4,
		},
		Entity: Entity{
			X:      100,
			StartY: 250,
			Radius: 15,
		},
		Obstacles: Obstacles{
			Speed:     1.5,
			Spacing:   300,
			Width:     60,
			GapHeight: 200,
			GapMinTop: 100,
			GapRange:  150,
			InitialX:  400,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
