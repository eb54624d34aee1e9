package tasks

import "sync"

// ProcessedSet records settled items. Settlement order is preserved for
// iteration and membership checks are constant time. One entry is appended
// per settlement, so Len counts settlements even when equal items repeat.
//
// Safe for concurrent use.
type ProcessedSet[T comparable] struct {
	mu    sync.RWMutex
	order []T
	seen  map[T]struct{}
}

func newProcessedSet[T comparable]() *ProcessedSet[T] {
	return &ProcessedSet[T]{seen: make(map[T]struct{})}
}

func (p *ProcessedSet[T]) add(item T) {
	p.mu.Lock()
	p.order = append(p.order, item)
	p.seen[item] = struct{}{}
	p.mu.Unlock()
}

// Len returns the number of settlements recorded.
func (p *ProcessedSet[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Contains reports whether item has settled at least once.
func (p *ProcessedSet[T]) Contains(item T) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.seen[item]
	return ok
}

// Items returns a copy of the settled items in settlement order.
func (p *ProcessedSet[T]) Items() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]T, len(p.order))
	copy(out, p.order)
	return out
}
