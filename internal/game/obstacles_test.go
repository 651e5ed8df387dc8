package game

import (
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
)

// fixedRand always returns the same value.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestObstacleManagerReset(t *testing.T) {
	cfg := config.Default()
	m := NewObstacleManager(cfg, fixedRand(0.5))

	if len(m.Obstacles()) != 1 {
		t.Fatalf("expected a single initial obstacle, got %d", len(m.Obstacles()))
	}
	o := m.Obstacles()[0]
	if o.X != cfg.Obstacles.InitialX {
		t.Errorf("initial X = %f, expected %f", o.X, cfg.Obstacles.InitialX)
	}
	if o.GapTop != 175 {
		t.Errorf("GapTop = %f, expected 175 (100 + 0.5*150)", o.GapTop)
	}
}

func TestObstacleGapRange(t *testing.T) {
	cfg := config.Default()

	low := NewObstacleManager(cfg, fixedRand(0)).Obstacles()[0].GapTop
	high := NewObstacleManager(cfg, fixedRand(0.999999)).Obstacles()[0].GapTop

	if low != cfg.Obstacles.GapMinTop {
		t.Errorf("lowest gap = %f, expected %f", low, cfg.Obstacles.GapMinTop)
	}
	if high < low || high >= cfg.Obstacles.GapMinTop+cfg.Obstacles.GapRange {
		t.Errorf("highest gap %f outside [%f, %f)", high, low, cfg.Obstacles.GapMinTop+cfg.Obstacles.GapRange)
	}
}

func TestObstacleSpawnAndScroll(t *testing.T) {
	cfg := config.Default()
	m := NewObstacleManager(cfg, fixedRand(0.5))

	// The first obstacle starts at 400, already left of width-spacing (500),
	// so the first update spawns the next one at the right edge.
	m.Update()
	if len(m.Obstacles()) != 2 {
		t.Fatalf("expected spawn on first update, have %d obstacles", len(m.Obstacles()))
	}
	if x := m.Obstacles()[1].X; x != cfg.Bounds.Width {
		t.Fatalf("spawned at %f, expected %f", x, cfg.Bounds.Width)
	}

	for n := 1; n <= 150; n++ {
		m.Update()
		want := 800 - 1.5*float64(n)
		if x := m.Obstacles()[1].X; x != want {
			t.Fatalf("after %d ticks X = %f, expected %f", n, x, want)
		}
	}
}

func TestObstacleSpacingIsConstant(t *testing.T) {
	cfg := config.Default()
	m := NewObstacleManager(cfg, fixedRand(0.3))

	for i := 0; i < 2000; i++ {
		m.Update()
		obs := m.Obstacles()
		for j := 1; j < len(obs); j++ {
			if obs[j].X <= obs[j-1].X {
				t.Fatalf("tick %d: queue not ordered: %v", i, obs)
			}
		}
	}

	// Spawns happen on the first tick the last obstacle crosses 500, so
	// consecutive spawned obstacles are 201 ticks (301.5 units) apart.
	obs := m.Obstacles()
	for j := 2; j < len(obs); j++ {
		if gap := obs[j].X - obs[j-1].X; gap != 301.5 {
			t.Errorf("spacing between %d and %d = %f, expected 301.5", j-1, j, gap)
		}
	}
}

func TestObstacleRetirement(t *testing.T) {
	cfg := config.Default()
	m := NewObstacleManager(cfg, fixedRand(0.5))

	total := 0
	for tick := 1; tick <= 306; tick++ {
		total += m.Update()
	}
	if total != 0 {
		t.Fatalf("nothing should retire before the first obstacle passes -60, retired %d", total)
	}
	if x := m.Obstacles()[0].X; x != -59 {
		t.Fatalf("front X = %f, expected -59", x)
	}

	if retired := m.Update(); retired != 1 {
		t.Fatalf("tick 307 should retire exactly one obstacle, got %d", retired)
	}
	// The obstacle spawned on tick 1 is now at the front.
	if x := m.Obstacles()[0].X; x != 800-1.5*306 {
		t.Errorf("front X = %f, expected %f", x, 800-1.5*306)
	}
}

func TestObstacleRetiresAllQualifying(t *testing.T) {
	cfg := config.Default()
	m := NewObstacleManager(cfg, fixedRand(0.5))
	m.obstacles = []Obstacle{{X: -100}, {X: -90}, {X: 500}}

	retired := m.Update()
	if retired != 2 {
		t.Errorf("expected both off-screen obstacles retired, got %d", retired)
	}
	if len(m.Obstacles()) != 2 {
		t.Errorf("expected 2 remaining (old + spawned), got %d", len(m.Obstacles()))
	}
}

func TestObstacleEmptyQueuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("an empty obstacle queue must panic")
		}
	}()

	m := &ObstacleManager{rng: fixedRand(0)}
	m.Update()
}
