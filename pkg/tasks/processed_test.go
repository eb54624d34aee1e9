package tasks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessedSet(t *testing.T) {
	s := newProcessedSet[string]()
	assert.Zero(t, s.Len())
	assert.False(t, s.Contains("a"))

	s.add("a")
	s.add("b")
	s.add("a") // settles again; both settlements count

	assert.Equal(t, 3, s.Len(), "Len counts settlements, not distinct items")
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, []string{"a", "b", "a"}, s.Items(), "Items preserves settlement order")
}

func TestProcessedSetItemsSnapshot(t *testing.T) {
	s := newProcessedSet[int]()
	s.add(1)
	s.add(2)

	items := s.Items()
	items[0] = 99
	assert.Equal(t, []int{1, 2}, s.Items(), "mutating the snapshot should not affect the set")
}

func TestProcessedSetConcurrentAdds(t *testing.T) {
	s := newProcessedSet[int]()

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.add(i)
		}(i)
	}
	wg.Wait()

	require.Equal(t, n, s.Len())
	for i := 0; i < n; i++ {
		assert.True(t, s.Contains(i), "item %d should be recorded", i)
	}
}

func TestPanicError(t *testing.T) {
	err := newPanicError("kaboom")
	require.NotNil(t, err)
	assert.Equal(t, "kaboom", err.Value)
	assert.NotEmpty(t, err.Stack, "the stack should be captured at panic time")
	assert.Contains(t, err.Error(), "panic: kaboom")

	wrapped := fmt.Errorf("running op: %w", err)
	var pe *PanicError
	assert.ErrorAs(t, wrapped, &pe)
}
