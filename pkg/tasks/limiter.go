package tasks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter bounds the number of operations running at once. Admission blocks
// on a weighted semaphore, so a freed slot is itself the wakeup for the next
// waiter. The in-flight count is derived from the ticket set; idle waiters
// are signalled by closing a generation channel when the set empties.
type Limiter[T comparable] struct {
	concurrency int
	slots       *semaphore.Weighted
	rate        *rate.Limiter
	logger      *zap.Logger

	mu         sync.Mutex
	inflight   map[uint64]struct{}
	nextTicket uint64
	idle       chan struct{} // armed on 0->1, closed on 1->0

	processed *ProcessedSet[T]

	admitted  atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	errored   atomic.Int64
}

// Stats is a point-in-time snapshot of limiter activity.
type Stats struct {
	Concurrency int   // slot count, fixed at creation
	InFlight    int   // operations currently admitted and unsettled
	Processed   int   // settlements recorded
	Admitted    int64 // total admissions
	Succeeded   int64 // settlements with Success and no error
	Failed      int64 // settlements declared Failure
	Errored     int64 // settlements with an error or panic
}

// NewLimiter creates a Limiter with the given concurrency.
func NewLimiter[T comparable](concurrency int, opts ...Option) (*Limiter[T], error) {
	if concurrency < 1 {
		return nil, errors.New("concurrency must be at least 1")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Limiter[T]{
		concurrency: concurrency,
		slots:       semaphore.NewWeighted(int64(concurrency)),
		rate:        cfg.newRateLimiter(),
		logger:      cfg.logger,
		inflight:    make(map[uint64]struct{}),
		processed:   newProcessedSet[T](),
	}, nil
}

// Admit waits for a free slot and runs op(item) on its own goroutine.
// It blocks while all slots are taken. ctx aborts the wait, never work
// already admitted. settle observes the settlement; nil is allowed.
//
// The item is in flight from admission until it settles, at which point it
// is recorded once in the processed set and the slot is released. A panic
// in op settles as a *PanicError; nothing propagates past this boundary.
func (l *Limiter[T]) Admit(ctx context.Context, item T, op Operation[T], settle SettleFunc[T]) error {
	if l.rate != nil {
		if err := l.rate.Wait(ctx); err != nil {
			return err
		}
	}
	if err := l.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	l.start(ctx, l.register(), item, op, settle)
	return nil
}

// Drain admits every item from src in order, then waits for in-flight work
// to settle. The semaphore acquire is the refill trigger: each settlement
// frees a slot, which re-admits the loop with the next item. Admission
// stops with ctx's error if ctx is cancelled; operations already admitted
// still run to completion.
//
// Rate pacing applies per pulled item, after it is registered in flight,
// so an exhausted source returns without spending a token or waiting out
// a rate period.
func (l *Limiter[T]) Drain(ctx context.Context, src Source[T], op Operation[T], settle SettleFunc[T]) error {
	for {
		if err := l.slots.Acquire(ctx, 1); err != nil {
			return err
		}

		// Register before pulling from src so an item is never outside
		// both the source and the in-flight set.
		ticket := l.register()
		item, ok := src.Next()
		if !ok {
			l.deregister(ticket)
			l.slots.Release(1)
			break
		}

		// The pulled item is already in flight; if the pacing wait is
		// aborted the item still runs and only further admissions stop.
		var waitErr error
		if l.rate != nil {
			waitErr = l.rate.Wait(ctx)
		}
		l.start(ctx, ticket, item, op, settle)
		if waitErr != nil {
			return waitErr
		}
	}
	return l.AwaitIdle(ctx)
}

// AwaitIdle blocks until no operations are in flight. Admissions racing
// with the idle signal re-arm it, and the loop re-checks after each wakeup.
func (l *Limiter[T]) AwaitIdle(ctx context.Context) error {
	for {
		l.mu.Lock()
		if len(l.inflight) == 0 {
			l.mu.Unlock()
			return nil
		}
		idle := l.idle
		l.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// register adds a ticket to the in-flight set, arming the idle channel on
// the empty-to-occupied transition.
func (l *Limiter[T]) register() uint64 {
	l.mu.Lock()
	ticket := l.nextTicket
	l.nextTicket++
	if len(l.inflight) == 0 {
		l.idle = make(chan struct{})
	}
	l.inflight[ticket] = struct{}{}
	l.mu.Unlock()
	return ticket
}

// deregister removes a ticket, closing the idle channel when the set empties.
func (l *Limiter[T]) deregister(ticket uint64) {
	l.mu.Lock()
	delete(l.inflight, ticket)
	if len(l.inflight) == 0 {
		close(l.idle)
	}
	l.mu.Unlock()
}

// start runs the operation on its own goroutine. The caller holds a slot
// and the ticket; both are released when the item settles.
func (l *Limiter[T]) start(ctx context.Context, ticket uint64, item T, op Operation[T], settle SettleFunc[T]) {
	l.admitted.Add(1)

	go func() {
		began := time.Now()
		out, err := l.run(ctx, item, op)

		switch {
		case err != nil:
			l.errored.Add(1)
		case out == Failure:
			l.failed.Add(1)
		default:
			l.succeeded.Add(1)
		}

		// Record and notify before leaving the in-flight set so idle
		// observers see the completed settlement.
		l.processed.add(item)
		if settle != nil {
			settle(item, out, err)
		}

		l.logger.Debug("operation settled",
			zap.Stringer("outcome", out),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(began)),
		)

		l.deregister(ticket)
		l.slots.Release(1)
	}()
}

// run executes op, converting panics to *PanicError.
func (l *Limiter[T]) run(ctx context.Context, item T, op Operation[T]) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = Failure, newPanicError(r)
		}
	}()
	return op(ctx, item)
}

// Concurrency returns the slot count.
func (l *Limiter[T]) Concurrency() int { return l.concurrency }

// InFlight returns the number of admitted, unsettled operations.
func (l *Limiter[T]) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inflight)
}

// Idle reports whether no operations are in flight.
func (l *Limiter[T]) Idle() bool { return l.InFlight() == 0 }

// Processed returns the settlement record.
func (l *Limiter[T]) Processed() *ProcessedSet[T] { return l.processed }

// Stats returns a point-in-time snapshot of limiter activity.
func (l *Limiter[T]) Stats() Stats {
	return Stats{
		Concurrency: l.concurrency,
		InFlight:    l.InFlight(),
		Processed:   l.processed.Len(),
		Admitted:    l.admitted.Load(),
		Succeeded:   l.succeeded.Load(),
		Failed:      l.failed.Load(),
		Errored:     l.errored.Load(),
	}
}
