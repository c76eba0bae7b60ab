// ABOUTME: Debounce gate that emits the latest submitted value after a quiet window.
// ABOUTME: Each submission restarts the timer; superseded timers are discarded by generation.
package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultWindow is the quiescence window used for prompt derivation.
const DefaultWindow = 500 * time.Millisecond

// Option configures a Gate.
type Option func(*options)

type options struct {
	clock clockwork.Clock
}

// WithClock replaces the real clock, typically with a clockwork.FakeClock in tests.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Gate coalesces rapid submissions into a single call to its sink.
type Gate[T any] struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	window time.Duration
	sink   func(T)
	timer  clockwork.Timer
	gen    uint64
}

// New creates a gate that calls sink with the last submitted value once no
// submission has arrived for window.
func New[T any](window time.Duration, sink func(T), opts ...Option) *Gate[T] {
	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Gate[T]{
		clock:  o.clock,
		window: window,
		sink:   sink,
	}
}

// Window returns the quiescence window.
func (g *Gate[T]) Window() time.Duration {
	return g.window
}

// Submit replaces any pending value with v and restarts the window.
func (g *Gate[T]) Submit(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopLocked()
	g.gen++
	gen := g.gen
	g.timer = g.clock.AfterFunc(g.window, func() {
		g.fire(gen, v)
	})
}

// Cancel drops the pending value, if any.
func (g *Gate[T]) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopLocked()
	g.gen++
}

// Pending reports whether a value is waiting for the window to elapse.
func (g *Gate[T]) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

func (g *Gate[T]) fire(gen uint64, v T) {
	g.mu.Lock()
	if gen != g.gen {
		// Superseded between the timer firing and acquiring the lock.
		g.mu.Unlock()
		return
	}
	g.timer = nil
	g.mu.Unlock()

	g.sink(v)
}

func (g *Gate[T]) stopLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
