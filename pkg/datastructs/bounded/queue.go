package bounded

// Queue is a FIFO view over a bounded Sequence.
// It is NOT thread-safe.
type Queue[T any] struct {
	seq *Sequence[T]
}

// NewQueue creates a Queue with the given capacity, seeded with items in arrival order.
// Returns ErrCapacityExceeded if the seed items exceed a positive capacity.
func NewQueue[T any](capacity int, items ...T) (*Queue[T], error) {
	seq, err := NewSequence[T](capacity, items...)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{seq: seq}, nil
}

// Enqueue adds an item at the tail. Returns ErrQueueFull at capacity.
// The queue is unchanged on failure.
func (q *Queue[T]) Enqueue(item T) error {
	if err := q.seq.Append(item); err != nil {
		return ErrQueueFull
	}
	return nil
}

// EnqueueBatch adds items until the queue fills. Returns count of items enqueued.
func (q *Queue[T]) EnqueueBatch(items []T) int {
	count := 0
	for _, item := range items {
		if q.Enqueue(item) != nil {
			break
		}
		count++
	}
	return count
}

// Dequeue removes and returns the head item.
// Returns (zero, false) if the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	return q.seq.Remove(0)
}

// DequeueBatch removes items into out. Returns count dequeued.
func (q *Queue[T]) DequeueBatch(out []T) int {
	count := 0
	for i := range out {
		item, ok := q.Dequeue()
		if !ok {
			break
		}
		out[i] = item
		count++
	}
	return count
}

// Peek returns the head item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	return q.seq.First()
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return q.seq.Len() }

// Capacity returns the maximum number of items, or 0 if unbounded.
func (q *Queue[T]) Capacity() int { return q.seq.Capacity() }

// IsEmpty reports whether the queue is empty.
func (q *Queue[T]) IsEmpty() bool { return q.seq.IsEmpty() }

// IsFull reports whether the queue is at capacity.
func (q *Queue[T]) IsFull() bool { return q.seq.IsFull() }

// Clear removes all queued items and returns the queue for chaining.
func (q *Queue[T]) Clear() *Queue[T] {
	q.seq.Clear()
	return q
}

// Items returns a copy of the queued items in FIFO order.
func (q *Queue[T]) Items() []T { return q.seq.Items() }
