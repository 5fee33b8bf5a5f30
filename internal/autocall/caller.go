// Package autocall drives periodic number calls. The engine has no timers of
// its own; a Caller is the ticker a shell switches on and off.
package autocall

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

// DefaultInterval is the delay between two automatic calls.
const DefaultInterval = 2 * time.Second

// TickFunc performs one call and reports whether calling should stop.
type TickFunc func(ctx context.Context) (done bool)

type Caller struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func New(interval time.Duration) *Caller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Caller{interval: interval}
}

// Start - runs tick every interval in its own goroutine until Stop, ctx
// cancellation, or tick reporting done.
func (that *Caller) Start(ctx context.Context, tick TickFunc) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.stop != nil {
		return apperror.ErrAutoCallRunning
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	that.stop, that.done = stop, done

	go that.run(ctx, tick, stop, done)

	return nil
}

// Stop - stops calling. Safe to call when not running and from inside tick.
func (that *Caller) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.stop == nil {
		return
	}

	close(that.stop)
	that.stop, that.done = nil, nil
}

// StopAndWait - stops calling and blocks until a tick in flight has returned.
// It must not be called from inside tick.
func (that *Caller) StopAndWait() {
	done := that.Done()
	that.Stop()
	<-done
}

// Toggle - starts a stopped caller or stops a running one and returns whether it now runs.
func (that *Caller) Toggle(ctx context.Context, tick TickFunc) bool {
	if that.Running() {
		that.Stop()
		return false
	}

	return that.Start(ctx, tick) == nil
}

func (that *Caller) Running() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.stop != nil
}

// Done returns a channel closed when the current run ends. It is already
// closed when nothing runs.
func (that *Caller) Done() <-chan struct{} {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}

	return that.done
}

func (that *Caller) run(ctx context.Context, tick TickFunc, stop, done chan struct{}) {
	defer close(done)
	defer that.release(stop)

	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}

			if tick(ctx) {
				return
			}
		}
	}
}

// release - forgets the run if it ended on its own.
func (that *Caller) release(stop chan struct{}) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.stop == stop {
		that.stop, that.done = nil, nil
	}
}
