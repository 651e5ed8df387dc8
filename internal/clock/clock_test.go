package clock

import (
	"testing"
	"time"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		rate     int
		expected time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / DefaultTickRate},
		{-5, time.Second / DefaultTickRate},
	}

	for _, tc := range tests {
		if got := Interval(tc.rate); got != tc.expected {
			t.Errorf("Interval(%d) = %v, expected %v", tc.rate, got, tc.expected)
		}
	}
}

func TestTickerDeliversTicks(t *testing.T) {
	tk := NewTicker(200)
	tk.Start()
	defer tk.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-tk.C():
		case <-time.After(time.Second):
			t.Fatalf("tick %d not delivered", i)
		}
	}
}

func TestTickerStopIsIdempotent(t *testing.T) {
	tk := NewTicker(60)
	tk.Start()
	tk.Stop()
	tk.Stop()

	select {
	case <-tk.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}

	// Drop a tick that may have been forwarded before Stop.
	select {
	case <-tk.C():
	default:
	}

	// Start after Stop must not resurrect the ticker.
	tk.Start()
	select {
	case <-tk.C():
		t.Error("stopped ticker should not deliver new ticks")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTickerStopWithoutStart(t *testing.T) {
	tk := NewTicker(60)
	tk.Stop()

	select {
	case <-tk.Done():
	default:
		t.Fatal("Done should be closed")
	}
}

func TestManualAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start, 10*time.Millisecond)

	if m.Advance() {
		t.Fatal("Advance before Start should not tick")
	}

	m.Start()
	if !m.Advance() {
		t.Fatal("Advance should tick when running")
	}
	if m.Advance() {
		t.Error("unconsumed tick should cause the next one to be dropped")
	}

	got := <-m.C()
	if want := start.Add(10 * time.Millisecond); !got.Equal(want) {
		t.Errorf("tick time = %v, expected %v", got, want)
	}

	m.Stop()
	if m.Advance() {
		t.Error("Advance after Stop should not tick")
	}
	select {
	case <-m.Done():
	default:
		t.Error("Done should be closed after Stop")
	}
}
