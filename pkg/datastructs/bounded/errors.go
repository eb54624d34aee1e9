package bounded

import "errors"

var (
	// ErrCapacityExceeded is returned when an insert would grow a sequence past its capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrIndexOutOfRange is returned when an index falls outside the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrQueueFull is returned when enqueueing into a queue at capacity.
	ErrQueueFull = errors.New("queue is full")

	// ErrStackFull is returned when pushing onto a stack at capacity.
	ErrStackFull = errors.New("stack is full")
)
