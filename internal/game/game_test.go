package game

import (
	"math"
	"slices"
	"testing"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/core"
)

func newTestGame(t *testing.T, cfg config.Config) *Game {
	t.Helper()
	g, err := New(cfg, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func frame(cmds ...core.Command) core.InputFrame {
	f := core.NewInputFrame()
	for _, c := range cmds {
		f.Push(c)
	}
	return f
}

// wideGap returns a config whose gaps cover almost the whole playfield.
func wideGap() config.Config {
	cfg := config.Default()
	cfg.Obstacles.GapMinTop = 20
	cfg.Obstacles.GapRange = 0
	cfg.Obstacles.GapHeight = 440
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Entity.Radius = 0

	if _, err := New(cfg, 1); err == nil {
		t.Error("expected an error for a zero radius")
	}
	if _, err := NewWithSource(config.Default(), nil); err == nil {
		t.Error("expected an error for a nil random source")
	}

	// NaN speed would freeze every obstacle at X = NaN: no spawns, no score.
	cfg = config.Default()
	cfg.Obstacles.Speed = math.NaN()
	if _, err := New(cfg, 1); err == nil {
		t.Error("expected an error for a NaN obstacle speed")
	}
}

func TestInitialState(t *testing.T) {
	g := newTestGame(t, config.Default())

	if g.Phase() != PhaseIdle {
		t.Errorf("phase = %v, expected idle", g.Phase())
	}
	if e := g.Entity(); e.Y != 250 || e.Velocity != 0 {
		t.Errorf("entity = %+v, expected Y=250 V=0", e)
	}
	if g.Score() != 0 || g.HighScore() != 0 || g.Runs() != 0 {
		t.Errorf("expected zero score/high score/runs, got %d/%d/%d", g.Score(), g.HighScore(), g.Runs())
	}
}

func TestActivateFromIdle(t *testing.T) {
	g := newTestGame(t, config.Default())
	g.Activate()

	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected running", g.Phase())
	}
	if e := g.Entity(); e.Y != 250 || e.Velocity != -6 {
		t.Errorf("entity = %+v, expected Y=250 V=-6", e)
	}
	if !g.ThrustHeld() {
		t.Error("thrust should be held")
	}
	if g.Runs() != 1 {
		t.Errorf("runs = %d, expected 1", g.Runs())
	}
}

func TestIdleAndOverAreFrozen(t *testing.T) {
	g := newTestGame(t, config.Default())

	before := g.Snapshot()
	res := g.Step(frame())
	after := g.Snapshot()
	if after.EntityY != before.EntityY || after.Obstacles[0].X != before.Obstacles[0].X {
		t.Error("idle game moved")
	}
	if res.Tick != 1 || res.Overlay.Phase != PhaseIdle {
		t.Errorf("unexpected result %+v", res)
	}

	g.Activate()
	g.phase = PhaseOver
	before = g.Snapshot()
	g.Step(frame(core.CommandDeactivate))
	after = g.Snapshot()
	if after.EntityY != before.EntityY || after.Phase != PhaseOver {
		t.Error("finished game moved or changed phase on deactivate")
	}
}

func TestDeactivateKeepsPhase(t *testing.T) {
	g := newTestGame(t, config.Default())

	g.Deactivate()
	if g.Phase() != PhaseIdle {
		t.Errorf("deactivate changed idle to %v", g.Phase())
	}

	g.Activate()
	g.Deactivate()
	if g.Phase() != PhaseRunning || g.ThrustHeld() {
		t.Errorf("phase = %v thrust = %v, expected running without thrust", g.Phase(), g.ThrustHeld())
	}
}

func TestStepAppliesCommandsBeforePhysics(t *testing.T) {
	g := newTestGame(t, config.Default())

	res := g.Step(frame(core.CommandActivate))
	if res.Overlay.Phase != PhaseRunning {
		t.Fatalf("phase = %v, expected running", res.Overlay.Phase)
	}
	// Jump sets -6, held thrust adds -0.5 and clamps to -4, then moves.
	if e := g.Entity(); e.Velocity != -4 || e.Y != 246 {
		t.Errorf("entity = %+v, expected Y=246 V=-4", e)
	}

	res = g.Step(frame(core.CommandDeactivate))
	if e := g.Entity(); e.Velocity != -4+0.4 {
		t.Errorf("velocity after release = %f, expected %f", e.Velocity, -4+0.4)
	}
	if res.Died {
		t.Error("should not die in the middle of the screen")
	}
}

func TestStepAppliesCommandsInOrder(t *testing.T) {
	g := newTestGame(t, config.Default())

	g.Step(frame(core.CommandActivate, core.CommandDeactivate))
	if g.ThrustHeld() {
		t.Error("activate then deactivate in one frame should leave thrust released")
	}
	if e := g.Entity(); e.Velocity != -6+0.4 {
		t.Errorf("velocity = %f, expected jump plus gravity %f", e.Velocity, -6+0.4)
	}
}

func TestGroundCollisionEndsRun(t *testing.T) {
	g := newTestGame(t, config.Default())
	g.Activate()
	g.Deactivate()

	g.entity = Entity{Y: 464, Velocity: 2}
	g.score = 3
	g.highScore = 1

	res := g.Step(frame())
	if !res.Died || !res.Hits.Ground {
		t.Fatalf("expected ground death, got %+v", res)
	}
	if g.Phase() != PhaseOver {
		t.Errorf("phase = %v, expected over", g.Phase())
	}
	if g.HighScore() != 3 {
		t.Errorf("high score = %d, expected 3", g.HighScore())
	}
	if res.Overlay.Score != 3 || res.Overlay.HighScore != 3 {
		t.Errorf("overlay = %+v", res.Overlay)
	}
}

func TestHighScoreNeverDecreases(t *testing.T) {
	g := newTestGame(t, config.Default())
	g.Activate()
	g.Deactivate()

	g.entity = Entity{Y: 464, Velocity: 2}
	g.score = 3
	g.highScore = 10

	g.Step(frame())
	if g.HighScore() != 10 {
		t.Errorf("high score = %d, expected 10", g.HighScore())
	}
}

func TestRestartResetsRun(t *testing.T) {
	g := newTestGame(t, config.Default())
	g.Activate()
	for i := 0; i < 50; i++ {
		g.Step(frame())
	}
	g.score = 7
	g.highScore = 7
	g.phase = PhaseOver

	g.Step(frame(core.CommandActivate))

	if g.Phase() != PhaseRunning {
		t.Fatalf("phase = %v, expected running", g.Phase())
	}
	if g.Score() != 0 {
		t.Errorf("score = %d, expected 0", g.Score())
	}
	if g.HighScore() != 7 {
		t.Errorf("high score = %d, expected 7", g.HighScore())
	}
	if g.Runs() != 2 {
		t.Errorf("runs = %d, expected 2", g.Runs())
	}
	// Restarted from 250, jumped, then one held tick.
	if e := g.Entity(); e.Y != 246 || e.Velocity != -4 {
		t.Errorf("entity = %+v, expected Y=246 V=-4", e)
	}
	obs := g.Snapshot().Obstacles
	if len(obs) != 2 || obs[0].X != 400-1.5 {
		t.Errorf("obstacles = %+v, expected the initial one after one tick plus a spawn", obs)
	}
}

func TestScoreCountsPassedObstacles(t *testing.T) {
	g := newTestGame(t, wideGap())
	g.Step(frame(core.CommandActivate, core.CommandDeactivate))

	// Keep the entity level so only obstacles can affect the run.
	for tick := 2; tick <= 306; tick++ {
		g.entity = Entity{Y: 250}
		res := g.Step(frame())
		if res.Died {
			t.Fatalf("died at tick %d: %+v", tick, res.Hits)
		}
	}
	if g.Score() != 0 {
		t.Fatalf("score = %d before the first obstacle passed", g.Score())
	}

	g.entity = Entity{Y: 250}
	res := g.Step(frame())
	if res.Scored != 1 || g.Score() != 1 {
		t.Errorf("tick 307: scored %d, score %d, expected 1 and 1", res.Scored, g.Score())
	}
}

func TestRunningInvariants(t *testing.T) {
	g := newTestGame(t, config.Default())
	p := g.Config().Physics

	for tick := 1; tick <= 20000; tick++ {
		var f core.InputFrame
		switch tick % 23 {
		case 0:
			f = frame(core.CommandActivate)
		case 9:
			f = frame(core.CommandDeactivate)
		default:
			f = frame()
		}

		before := g.Score()
		activating := slices.Contains(f.Commands, core.CommandActivate)
		restarting := g.Phase() == PhaseOver && activating
		res := g.Step(f)

		if g.Phase() == PhaseRunning && len(g.obstacles.Obstacles()) == 0 {
			t.Fatalf("tick %d: obstacle queue empty while running", tick)
		}
		if g.Entity().Velocity < p.MaxUpwardVelocity && g.Phase() == PhaseRunning && !activating {
			t.Fatalf("tick %d: velocity %f past the upward limit", tick, g.Entity().Velocity)
		}
		if !restarting && g.Score()-before != res.Scored {
			t.Fatalf("tick %d: score moved by %d, scored %d", tick, g.Score()-before, res.Scored)
		}
		if g.HighScore() < g.Score() && g.Phase() == PhaseOver {
			t.Fatalf("tick %d: high score %d below finished score %d", tick, g.HighScore(), g.Score())
		}
	}
}

func TestDeterminism(t *testing.T) {
	script := func(tick int) core.InputFrame {
		switch {
		case tick%31 == 0:
			return frame(core.CommandActivate)
		case tick%31 == 12:
			return frame(core.CommandDeactivate)
		}
		return frame()
	}

	a := newTestGame(t, config.Default())
	b := newTestGame(t, config.Default())
	for tick := 1; tick <= 5000; tick++ {
		ra := a.Step(script(tick))
		rb := b.Step(script(tick))
		if ra != rb {
			t.Fatalf("tick %d: results diverged: %+v vs %+v", tick, ra, rb)
		}
		sa, sb := a.Snapshot(), b.Snapshot()
		if sa.EntityY != sb.EntityY || len(sa.Obstacles) != len(sb.Obstacles) {
			t.Fatalf("tick %d: snapshots diverged", tick)
		}
		for i := range sa.Obstacles {
			if sa.Obstacles[i] != sb.Obstacles[i] {
				t.Fatalf("tick %d: obstacle %d diverged: %+v vs %+v", tick, i, sa.Obstacles[i], sb.Obstacles[i])
			}
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(t, config.Default())
	s := g.Snapshot()
	s.Obstacles[0].X = -1000

	if g.Snapshot().Obstacles[0].X == -1000 {
		t.Error("modifying a snapshot changed the game")
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{PhaseIdle, PhaseRunning, PhaseOver} {
		got, err := ParsePhase(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePhase("paused"); err == nil {
		t.Error("expected an error for an unknown phase")
	}
}
