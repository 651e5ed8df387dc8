package core

// RuntimeConfig carries host parameters that are not part of the game rules.
// The simulation itself runs in canvas units; ScreenW/ScreenH only tell a
// renderer how many terminal cells it may use.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for obstacle gaps, 0 = pick one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}
