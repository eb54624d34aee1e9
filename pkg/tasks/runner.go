package tasks

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Runner gates admission behind a per-instance enabled flag and fans each
// settlement out to exactly one of the three hooks. Two instances never
// share gate state.
type Runner[T comparable] struct {
	limiter *Limiter[T]
	logger  *zap.Logger
	enabled atomic.Bool
}

// NewRunner creates a Runner with the given concurrency. The gate starts
// open.
func NewRunner[T comparable](concurrency int, opts ...Option) (*Runner[T], error) {
	limiter, err := NewLimiter[T](concurrency, opts...)
	if err != nil {
		return nil, err
	}

	r := &Runner[T]{limiter: limiter, logger: limiter.logger}
	r.enabled.Store(true)
	return r, nil
}

// Enable opens the gate. Safe to call concurrently; idempotent.
func (r *Runner[T]) Enable() { r.enabled.Store(true) }

// Disable closes the gate. In-flight operations are unaffected; only new
// submissions are rejected.
func (r *Runner[T]) Disable() { r.enabled.Store(false) }

// Enabled reports whether the gate is open.
func (r *Runner[T]) Enabled() bool { return r.enabled.Load() }

// SubmitOne admits a single item. Returns ErrDisabled, mutating nothing,
// when the gate is closed. Exactly one hook fires once the item settles.
func (r *Runner[T]) SubmitOne(ctx context.Context, item T, op Operation[T], hooks Hooks[T]) error {
	if !r.enabled.Load() {
		return ErrDisabled
	}
	return r.limiter.Admit(ctx, item, op, hooks.route)
}

// SubmitAll admits every item in order, then waits for all of them to
// settle. Returns ErrDisabled, mutating nothing, when the gate is closed.
// The gate is checked once at submission; a Disable during the batch does
// not interrupt it.
func (r *Runner[T]) SubmitAll(ctx context.Context, items []T, op Operation[T], hooks Hooks[T]) error {
	if !r.enabled.Load() {
		return ErrDisabled
	}

	r.logger.Debug("submitting batch", zap.Int("items", len(items)))
	return r.limiter.Drain(ctx, NewSliceSource(items), op, hooks.route)
}

// Drain admits items from src until exhausted, then waits for idle.
// Returns ErrDisabled when the gate is closed at the time of the call.
func (r *Runner[T]) Drain(ctx context.Context, src Source[T], op Operation[T], hooks Hooks[T]) error {
	if !r.enabled.Load() {
		return ErrDisabled
	}
	return r.limiter.Drain(ctx, src, op, hooks.route)
}

// AwaitIdle blocks until no operations are in flight.
func (r *Runner[T]) AwaitIdle(ctx context.Context) error { return r.limiter.AwaitIdle(ctx) }

// InFlight returns the number of admitted, unsettled operations.
func (r *Runner[T]) InFlight() int { return r.limiter.InFlight() }

// Concurrency returns the slot count.
func (r *Runner[T]) Concurrency() int { return r.limiter.Concurrency() }

// Processed returns the settlement record.
func (r *Runner[T]) Processed() *ProcessedSet[T] { return r.limiter.Processed() }

// Stats returns a point-in-time snapshot of runner activity.
func (r *Runner[T]) Stats() Stats { return r.limiter.Stats() }
