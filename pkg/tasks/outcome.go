package tasks

import "context"

// Outcome is the declared result of an operation that ran to completion.
type Outcome int

const (
	// Success marks an item that was processed successfully.
	Success Outcome = iota

	// Failure marks an item whose operation completed but declared the
	// item failed. Declared failures are expected results, not faults.
	Failure
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Operation processes a single item. Returning a non-nil error reports an
// unexpected fault; returning Failure with a nil error declares an expected
// failure. The two travel on separate channels: faults route to OnError,
// declared failures to OnFailure.
//
// The scheduler forwards the caller's context unchanged and never cancels
// an operation it has admitted.
type Operation[T any] func(ctx context.Context, item T) (Outcome, error)

// Hooks routes settled items. Exactly one hook fires per settlement; nil
// hooks are skipped. The zero value routes nothing.
type Hooks[T any] struct {
	// OnSuccess receives items that settled with Success and no error.
	OnSuccess func(item T)

	// OnFailure receives items whose operation declared Failure.
	OnFailure func(item T)

	// OnError receives items whose operation returned an error or panicked.
	OnError func(item T, err error)
}

// route fires the hook matching the settlement.
func (h Hooks[T]) route(item T, out Outcome, err error) {
	switch {
	case err != nil:
		if h.OnError != nil {
			h.OnError(item, err)
		}
	case out == Failure:
		if h.OnFailure != nil {
			h.OnFailure(item)
		}
	default:
		if h.OnSuccess != nil {
			h.OnSuccess(item)
		}
	}
}

// SettleFunc observes a single settlement. It runs on the operation's
// goroutine before the concurrency slot is released.
type SettleFunc[T any] func(item T, out Outcome, err error)

// Source feeds items to a drain. Next returns (zero, false) when exhausted.
// It is called from a single goroutine.
type Source[T any] interface {
	Next() (T, bool)
}

// SliceSource adapts a slice into a Source, yielding items in order.
// The slice is not copied.
type SliceSource[T any] struct {
	items []T
	pos   int
}

// NewSliceSource creates a Source over items.
func NewSliceSource[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Next returns the next item in slice order.
func (s *SliceSource[T]) Next() (T, bool) {
	if s.pos >= len(s.items) {
		var zero T
		return zero, false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}
