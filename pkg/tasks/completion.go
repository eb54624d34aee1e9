package tasks

// Completion is the future for an asynchronous queue run. It resolves
// exactly once, after the queue has drained and every admitted operation
// has settled.
type Completion[T comparable] struct {
	done  chan struct{}
	items []T
	err   error
}

func newCompletion[T comparable]() *Completion[T] {
	return &Completion[T]{done: make(chan struct{})}
}

// resolve publishes the result. Called exactly once, by the drain goroutine.
func (c *Completion[T]) resolve(items []T, err error) {
	c.items = items
	c.err = err
	close(c.done)
}

// Wait blocks until the run completes and returns the processed items in
// settlement order. The error is non-nil only if admission was aborted.
func (c *Completion[T]) Wait() ([]T, error) {
	<-c.done
	return c.items, c.err
}

// Done returns a channel that is closed when the run completes.
func (c *Completion[T]) Done() <-chan struct{} {
	return c.done
}
