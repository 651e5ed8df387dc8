package game

import (
	"github.com/vovakirdan/skyhop/internal/config"
)

// Obstacle is one scrolling barrier with a gap the entity must fly through.
type Obstacle struct {
	X      float64 // left edge
	GapTop float64 // top of the passable window; the window height is fixed
}

// RandSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// ObstacleManager owns the ordered obstacle queue.
//
// Obstacles are appended at the right edge and all scroll at the same speed,
// so insertion order is horizontal order and only the front can leave the
// screen. The queue is never empty after Reset.
type ObstacleManager struct {
	obstacles []Obstacle
	rng       RandSource
	cfg       config.Obstacles
	width     float64
}

// NewObstacleManager creates a manager seeded with its initial obstacle.
func NewObstacleManager(cfg config.Config, rng RandSource) *ObstacleManager {
	m := &ObstacleManager{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rng,
		cfg:       cfg.Obstacles,
		width:     cfg.Bounds.Width,
	}
	m.Reset()
	return m
}

// Reset replaces the queue with a single obstacle at the initial position.
// The random source is not reseeded: restarts continue the same stream.
func (m *ObstacleManager) Reset() {
	m.obstacles = m.obstacles[:0]
	m.obstacles = append(m.obstacles, Obstacle{X: m.cfg.InitialX, GapTop: m.randomGapTop()})
}

// Update scrolls every obstacle by one tick, spawns a new one at the right
// edge when the last has moved Spacing away from it, and retires obstacles
// that have fully left the screen. It returns the number retired.
//
// Every qualifying obstacle is retired, so a host that delivers ticks late
// still scores each passed obstacle exactly once.
func (m *ObstacleManager) Update() int {
	for i := range m.obstacles {
		m.obstacles[i].X -= m.cfg.Speed
	}

	if m.last().X < m.width-m.cfg.Spacing {
		m.obstacles = append(m.obstacles, Obstacle{X: m.width, GapTop: m.randomGapTop()})
	}

	retired := 0
	for len(m.obstacles) > 0 && m.obstacles[0].X < -m.cfg.Width {
		m.obstacles = m.obstacles[1:]
		retired++
	}
	m.mustNotBeEmpty()
	return retired
}

// Obstacles returns the live queue, front first. Callers must not modify it.
func (m *ObstacleManager) Obstacles() []Obstacle {
	return m.obstacles
}

func (m *ObstacleManager) last() Obstacle {
	m.mustNotBeEmpty()
	return m.obstacles[len(m.obstacles)-1]
}

// mustNotBeEmpty guards the spawn invariant. An empty queue means the
// configuration let every obstacle scroll away before a new one spawned.
func (m *ObstacleManager) mustNotBeEmpty() {
	if len(m.obstacles) == 0 {
		panic("game: obstacle queue is empty")
	}
}

func (m *ObstacleManager) randomGapTop() float64 {
	return m.cfg.GapMinTop + m.rng.Float64()*m.cfg.GapRange
}
