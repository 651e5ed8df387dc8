// Package clock provides the scheduling primitive that drives simulation
// ticks. The simulation never sleeps or reads the time itself; a host starts
// a Clock, consumes its ticks and stops it on teardown.
package clock

import (
	"sync"
	"time"
)

// DefaultTickRate is used when a non-positive rate is requested.
const DefaultTickRate = 60

// Clock delivers ticks at a fixed cadence.
//
// C never delivers a backlog: a tick that is not consumed before the next one
// is due is dropped, so a slow consumer sees fewer ticks instead of a burst.
// Stop is idempotent and closes Done.
type Clock interface {
	Start()
	Stop()
	C() <-chan time.Time
	Done() <-chan struct{}
}

// Interval converts a tick rate to the period between ticks.
func Interval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// Ticker is a wall-clock Clock backed by time.Ticker.
type Ticker struct {
	interval time.Duration

	mu      sync.Mutex
	ticker  *time.Ticker
	c       chan time.Time
	done    chan struct{}
	started bool
	stopped bool
}

// NewTicker creates a stopped ticker firing tickRate times per second.
func NewTicker(tickRate int) *Ticker {
	return &Ticker{
		interval: Interval(tickRate),
		c:        make(chan time.Time, 1),
		done:     make(chan struct{}),
	}
}

// Start begins delivering ticks. Calling Start twice, or after Stop, does nothing.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started || t.stopped {
		return
	}
	t.started = true
	t.ticker = time.NewTicker(t.interval)
	go t.forward(t.ticker.C)
}

func (t *Ticker) forward(src <-chan time.Time) {
	for {
		select {
		case <-t.done:
			return
		case now := <-src:
			select {
			case t.c <- now:
			default:
				// Previous tick still pending: drop this one.
			}
		}
	}
}

// Stop halts the ticker and releases its goroutine.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	if t.ticker != nil {
		t.ticker.Stop()
	}
	close(t.done)
}

// C returns the tick channel.
func (t *Ticker) C() <-chan time.Time {
	return t.c
}

// Done is closed once the ticker is stopped.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}

// Manual is a Clock that only ticks when Advance is called.
// Used by tests and headless replays.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	step    time.Duration
	c       chan time.Time
	done    chan struct{}
	running bool
	stopped bool
}

// NewManual creates a manual clock starting at start and moving by step per Advance.
func NewManual(start time.Time, step time.Duration) *Manual {
	return &Manual{
		now:  start,
		step: step,
		c:    make(chan time.Time, 1),
		done: make(chan struct{}),
	}
}

// Start enables Advance.
func (m *Manual) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.stopped {
		m.running = true
	}
}

// Stop disables the clock and closes Done.
func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true
	m.running = false
	close(m.done)
}

// Advance moves time forward by one step and emits a tick.
// It reports false when the clock is not running or the previous tick was not
// consumed yet (the tick is dropped, like a Ticker under load).
func (m *Manual) Advance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return false
	}
	m.now = m.now.Add(m.step)
	select {
	case m.c <- m.now:
		return true
	default:
		return false
	}
}

// Now returns the time of the last emitted tick.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// C returns the tick channel.
func (m *Manual) C() <-chan time.Time {
	return m.c
}

// Done is closed once the clock is stopped.
func (m *Manual) Done() <-chan struct{} {
	return m.done
}

var (
	_ Clock = (*Ticker)(nil)
	_ Clock = (*Manual)(nil)
)
