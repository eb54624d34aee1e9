package bounded

// Stack is a LIFO view over a bounded Sequence.
// It is NOT thread-safe.
type Stack[T any] struct {
	seq *Sequence[T]
}

// NewStack creates a Stack with the given capacity, seeded from bottom to top.
// Returns ErrCapacityExceeded if the seed items exceed a positive capacity.
func NewStack[T any](capacity int, items ...T) (*Stack[T], error) {
	seq, err := NewSequence[T](capacity, items...)
	if err != nil {
		return nil, err
	}
	return &Stack[T]{seq: seq}, nil
}

// Push adds an item on top. Returns ErrStackFull at capacity.
// The stack is unchanged on failure.
func (s *Stack[T]) Push(item T) error {
	if err := s.seq.Append(item); err != nil {
		return ErrStackFull
	}
	return nil
}

// Pop removes and returns the top item.
// Returns (zero, false) if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	return s.seq.Remove(s.seq.Len() - 1)
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.seq.Last()
}

// Len returns the number of stacked items.
func (s *Stack[T]) Len() int { return s.seq.Len() }

// Capacity returns the maximum number of items, or 0 if unbounded.
func (s *Stack[T]) Capacity() int { return s.seq.Capacity() }

// IsEmpty reports whether the stack is empty.
func (s *Stack[T]) IsEmpty() bool { return s.seq.IsEmpty() }

// IsFull reports whether the stack is at capacity.
func (s *Stack[T]) IsFull() bool { return s.seq.IsFull() }

// Clear removes all stacked items and returns the stack for chaining.
func (s *Stack[T]) Clear() *Stack[T] {
	s.seq.Clear()
	return s
}

// Items returns a copy of the stacked items from bottom to top.
func (s *Stack[T]) Items() []T { return s.seq.Items() }
