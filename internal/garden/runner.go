package garden

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Runner.Do after the runner has stopped.
var ErrStopped = errors.New("runner stopped")

// Runner drives an Economy from one goroutine: the tick timer, the event
// timer and caller closures are all handled by the same loop, so mutations
// never interleave.
type Runner struct {
	eco  *Economy
	tick time.Duration
	roll time.Duration

	ops      chan func(*Economy)
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRunner creates a runner using the economy's rule intervals.
func NewRunner(eco *Economy) *Runner {
	r := eco.Rules()
	return &Runner{
		eco:  eco,
		tick: r.TickInterval,
		roll: r.EventInterval,
		ops:  make(chan func(*Economy)),
		done: make(chan struct{}),
	}
}

// Start begins processing. The runner stops when ctx is cancelled or Stop
// is called.
func (r *Runner) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

// Stop halts both timers and waits for the loop to exit.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
	r.wg.Wait()
}

// Done is closed once the runner has been asked to stop.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Do runs fn on the runner goroutine and waits for it to finish.
func (r *Runner) Do(fn func(*Economy)) error {
	finished := make(chan struct{})
	op := func(e *Economy) {
		defer close(finished)
		fn(e)
	}

	select {
	case r.ops <- op:
	case <-r.done:
		return ErrStopped
	}
	<-finished
	return nil
}

func (r *Runner) loop(ctx context.Context) {
	defer r.wg.Done()

	tick := time.NewTicker(r.tick)
	defer tick.Stop()
	roll := time.NewTicker(r.roll)
	defer roll.Stop()

	for {
		select {
		case <-tick.C:
			r.eco.Tick()
		case <-roll.C:
			r.eco.Roll()
		case op := <-r.ops:
			op(r.eco)
		case <-ctx.Done():
			r.stopOnce.Do(func() { close(r.done) })
			return
		case <-r.done:
			return
		}
	}
}
