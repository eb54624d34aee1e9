package bounded

// Sequence is a capacity-checked ordered container backed by a single slice.
// A capacity of zero or less means unbounded.
// It is NOT thread-safe.
type Sequence[T any] struct {
	items    []T
	capacity int
}

// NewSequence creates a Sequence with the given capacity, seeded with items in order.
// Returns ErrCapacityExceeded if the seed items exceed a positive capacity.
func NewSequence[T any](capacity int, items ...T) (*Sequence[T], error) {
	if capacity < 0 {
		capacity = 0
	}
	if capacity > 0 && len(items) > capacity {
		return nil, ErrCapacityExceeded
	}

	s := &Sequence[T]{capacity: capacity}
	if capacity > 0 {
		s.items = make([]T, 0, capacity)
	}
	s.items = append(s.items, items...)
	return s, nil
}

// Append adds an item at the end. Returns ErrCapacityExceeded when full.
// The sequence is unchanged on failure.
func (s *Sequence[T]) Append(item T) error {
	if s.IsFull() {
		return ErrCapacityExceeded
	}
	s.items = append(s.items, item)
	return nil
}

// Prepend adds an item at the front, shifting existing items right.
func (s *Sequence[T]) Prepend(item T) error {
	return s.Insert(0, item)
}

// Insert places an item at index, shifting later items right. Index len appends.
// Returns ErrCapacityExceeded when full, ErrIndexOutOfRange for an invalid index.
func (s *Sequence[T]) Insert(index int, item T) error {
	if s.IsFull() {
		return ErrCapacityExceeded
	}
	if index < 0 || index > len(s.items) {
		return ErrIndexOutOfRange
	}

	var zero T
	s.items = append(s.items, zero)
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = item
	return nil
}

// Remove deletes and returns the item at index.
// Returns (zero, false) if the index is out of range.
func (s *Sequence[T]) Remove(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(s.items) {
		return zero, false
	}

	item := s.items[index]
	copy(s.items[index:], s.items[index+1:])
	s.items[len(s.items)-1] = zero // release the reference
	s.items = s.items[:len(s.items)-1]
	return item, true
}

// Update replaces the item at index. Returns ErrIndexOutOfRange for an invalid index.
func (s *Sequence[T]) Update(index int, item T) error {
	if index < 0 || index >= len(s.items) {
		return ErrIndexOutOfRange
	}
	s.items[index] = item
	return nil
}

// First returns the first item without removing it.
func (s *Sequence[T]) First() (T, bool) {
	return s.At(0)
}

// Last returns the last item without removing it.
func (s *Sequence[T]) Last() (T, bool) {
	return s.At(len(s.items) - 1)
}

// At returns the item at index. Returns (zero, false) if out of range.
func (s *Sequence[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(s.items) {
		return zero, false
	}
	return s.items[index], true
}

// Len returns the number of items held.
func (s *Sequence[T]) Len() int { return len(s.items) }

// Capacity returns the maximum number of items, or 0 if unbounded.
func (s *Sequence[T]) Capacity() int { return s.capacity }

// IsEmpty reports whether the sequence holds no items.
func (s *Sequence[T]) IsEmpty() bool { return len(s.items) == 0 }

// IsFull reports whether the sequence is at capacity.
// An unbounded sequence is never full.
func (s *Sequence[T]) IsFull() bool {
	return s.capacity > 0 && len(s.items) >= s.capacity
}

// Clear removes all items. Capacity and backing memory are retained.
func (s *Sequence[T]) Clear() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.items = s.items[:0]
}

// Items returns a copy of the held items in order.
func (s *Sequence[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
