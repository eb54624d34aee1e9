package tasks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-taskq/pkg/datastructs/bounded"
)

// TaskQueue pairs a bounded FIFO queue with a gated concurrent runner.
// Producers may enqueue while a run is draining; the drain re-checks the
// queue after every idle, so items enqueued behind an observed-empty queue
// are still picked up by the running drain.
//
// Completion means the queue is empty and nothing is in flight. Waiters are
// woken by state-change edges, never by polling.
type TaskQueue[T comparable] struct {
	runner *Runner[T]
	logger *zap.Logger

	mu      sync.Mutex
	queue   *bounded.Queue[T]
	changed chan struct{} // closed and re-armed on every queue or flight change
}

// NewTaskQueue creates a TaskQueue with the given concurrency and queue
// capacity (zero or less means unbounded), seeded with items in arrival
// order. The gate starts open.
func NewTaskQueue[T comparable](concurrency, capacity int, items []T, opts ...Option) (*TaskQueue[T], error) {
	queue, err := bounded.NewQueue[T](capacity, items...)
	if err != nil {
		return nil, err
	}
	runner, err := NewRunner[T](concurrency, opts...)
	if err != nil {
		return nil, err
	}

	return &TaskQueue[T]{
		runner:  runner,
		logger:  runner.logger,
		queue:   queue,
		changed: make(chan struct{}),
	}, nil
}

// pulse wakes completion waiters. Callers must hold tq.mu.
func (tq *TaskQueue[T]) pulse() {
	close(tq.changed)
	tq.changed = make(chan struct{})
}

// Enqueue adds an item at the tail. Returns bounded.ErrQueueFull at
// capacity, leaving the queue unchanged. Safe to call during a run.
func (tq *TaskQueue[T]) Enqueue(item T) error {
	tq.mu.Lock()
	defer tq.mu.Unlock()

	if err := tq.queue.Enqueue(item); err != nil {
		return err
	}
	tq.pulse()
	return nil
}

// EnqueueBatch adds items until the queue fills. Returns count enqueued.
func (tq *TaskQueue[T]) EnqueueBatch(items []T) int {
	tq.mu.Lock()
	defer tq.mu.Unlock()

	count := tq.queue.EnqueueBatch(items)
	if count > 0 {
		tq.pulse()
	}
	return count
}

// Dequeue removes and returns the head item without processing it.
func (tq *TaskQueue[T]) Dequeue() (T, bool) {
	tq.mu.Lock()
	defer tq.mu.Unlock()

	item, ok := tq.queue.Dequeue()
	if ok {
		tq.pulse()
	}
	return item, ok
}

// Peek returns the head item without removing it.
func (tq *TaskQueue[T]) Peek() (T, bool) {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return tq.queue.Peek()
}

// Clear discards all queued items and returns the receiver for chaining.
// In-flight operations are unaffected.
func (tq *TaskQueue[T]) Clear() *TaskQueue[T] {
	tq.mu.Lock()
	defer tq.mu.Unlock()

	tq.queue.Clear()
	tq.pulse()
	return tq
}

// Len returns the number of queued items.
func (tq *TaskQueue[T]) Len() int {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return tq.queue.Len()
}

// Capacity returns the queue capacity, or 0 if unbounded.
func (tq *TaskQueue[T]) Capacity() int {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return tq.queue.Capacity()
}

// IsEmpty reports whether the queue is empty.
func (tq *TaskQueue[T]) IsEmpty() bool {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return tq.queue.IsEmpty()
}

// IsFull reports whether the queue is at capacity.
func (tq *TaskQueue[T]) IsFull() bool {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return tq.queue.IsFull()
}

// State returns a copy of the queued items in FIFO order.
func (tq *TaskQueue[T]) State() []T {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return tq.queue.Items()
}

// Enable opens the processing gate.
func (tq *TaskQueue[T]) Enable() { tq.runner.Enable() }

// Disable closes the processing gate. Queued items stay queued and
// in-flight operations are unaffected.
func (tq *TaskQueue[T]) Disable() { tq.runner.Disable() }

// Enabled reports whether the processing gate is open.
func (tq *TaskQueue[T]) Enabled() bool { return tq.runner.Enabled() }

// Concurrency returns the slot count.
func (tq *TaskQueue[T]) Concurrency() int { return tq.runner.Concurrency() }

// InFlight returns the number of admitted, unsettled operations.
func (tq *TaskQueue[T]) InFlight() int { return tq.runner.InFlight() }

// Processed returns the settlement record, shared across runs.
func (tq *TaskQueue[T]) Processed() *ProcessedSet[T] { return tq.runner.Processed() }

// Stats returns a point-in-time snapshot of scheduler activity.
func (tq *TaskQueue[T]) Stats() Stats { return tq.runner.Stats() }

// runSource yields queued items one at a time under the queue lock.
type runSource[T comparable] struct {
	tq *TaskQueue[T]
}

func (s runSource[T]) Next() (T, bool) {
	s.tq.mu.Lock()
	defer s.tq.mu.Unlock()
	return s.tq.queue.Dequeue()
}

// stepSource yields at most one queued item, so a drain pass over it
// admits a single item and then waits it out.
type stepSource[T comparable] struct {
	tq   *TaskQueue[T]
	done bool
}

func (s *stepSource[T]) Next() (T, bool) {
	if s.done {
		var zero T
		return zero, false
	}
	s.done = true
	s.tq.mu.Lock()
	defer s.tq.mu.Unlock()
	return s.tq.queue.Dequeue()
}

// settleFunc wraps hook routing with a completion pulse.
func (tq *TaskQueue[T]) settleFunc(hooks Hooks[T]) SettleFunc[T] {
	return func(item T, out Outcome, err error) {
		hooks.route(item, out, err)

		tq.mu.Lock()
		tq.pulse()
		tq.mu.Unlock()
	}
}

// RunAsync drains the queue concurrently and returns a Completion that
// resolves with the settlement-ordered processed items once the queue is
// empty and all in-flight work has settled. Returns ErrDisabled, starting
// nothing, when the gate is closed.
//
// ctx aborts admission only; operations already admitted run to
// completion, and remaining items stay queued.
func (tq *TaskQueue[T]) RunAsync(ctx context.Context, op Operation[T], hooks Hooks[T]) (*Completion[T], error) {
	if !tq.runner.Enabled() {
		return nil, ErrDisabled
	}

	c := newCompletion[T]()
	logger := tq.logger.With(zap.String("run_id", uuid.NewString()))

	go func() {
		logger.Debug("run started", zap.Int("queued", tq.Len()))

		err := tq.drain(ctx, op, hooks)
		items := tq.runner.Processed().Items()

		logger.Debug("run finished",
			zap.Int("processed", len(items)),
			zap.Error(err),
		)
		c.resolve(items, err)
	}()

	return c, nil
}

// drain empties the queue through the limiter, then re-checks for items
// that arrived between the empty observation and the idle signal. The loop
// exits only when the empty check holds after an idle.
func (tq *TaskQueue[T]) drain(ctx context.Context, op Operation[T], hooks Hooks[T]) error {
	settle := tq.settleFunc(hooks)
	for {
		if err := tq.runner.limiter.Drain(ctx, runSource[T]{tq}, op, settle); err != nil {
			return err
		}
		if tq.IsEmpty() {
			return nil
		}
	}
}

// Run drains the queue synchronously, strictly one item at a time; slots
// beyond the first are left unused. Each item settles before the next is
// dequeued, and the queue always drains to exhaustion: ctx is forwarded to
// operations but does not abort the loop. Items leave the queue only after
// they are registered in flight, the same discipline as an asynchronous
// run, so completion is never observable between dequeue and admission.
// Returns ErrDisabled, mutating nothing, when the gate is closed.
func (tq *TaskQueue[T]) Run(ctx context.Context, op Operation[T], hooks Hooks[T]) error {
	if !tq.runner.Enabled() {
		return ErrDisabled
	}

	settle := tq.settleFunc(hooks)
	forward := func(_ context.Context, item T) (Outcome, error) {
		return op(ctx, item)
	}

	for !tq.IsEmpty() {
		if err := tq.runner.limiter.Drain(context.Background(), &stepSource[T]{tq: tq}, forward, settle); err != nil {
			return err
		}
	}
	return nil
}

// IsCompleted reports whether the queue is empty and nothing is in flight.
// During a drain an item is registered in flight before it leaves the
// queue, so the two checks never both pass mid-run.
func (tq *TaskQueue[T]) IsCompleted() bool {
	tq.mu.Lock()
	empty := tq.queue.IsEmpty()
	tq.mu.Unlock()
	return empty && tq.runner.InFlight() == 0
}

// AwaitCompleted blocks until the queue is empty and no operations are in
// flight, then returns the processed items in settlement order. The wait is
// edge-triggered: the in-flight side wakes on the limiter's idle signal and
// the queue side wakes on queue-change pulses.
func (tq *TaskQueue[T]) AwaitCompleted(ctx context.Context) ([]T, error) {
	for {
		if err := tq.runner.AwaitIdle(ctx); err != nil {
			return nil, err
		}

		tq.mu.Lock()
		empty := tq.queue.IsEmpty()
		changed := tq.changed
		tq.mu.Unlock()

		if empty && tq.runner.InFlight() == 0 {
			return tq.runner.Processed().Items(), nil
		}

		// Idle with items still queued: no drain is moving them yet.
		// Sleep until the queue or flight state changes.
		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
