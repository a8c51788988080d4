package domain

import (
	"sync"
	"testing"
)

func TestCounter_StartsAtZero(t *testing.T) {
	var c Counter
	if got := c.Next(); got != 0 {
		t.Errorf("first Next() = %d, want 0", got)
	}
	if got := c.Next(); got != 1 {
		t.Errorf("second Next() = %d, want 1", got)
	}
	if got := c.Peek(); got != 2 {
		t.Errorf("Peek() = %d, want 2", got)
	}
}

func TestCounter_IndependentInstances(t *testing.T) {
	var a, b Counter
	a.Next()
	a.Next()
	if got := b.Next(); got != 0 {
		t.Errorf("b.Next() = %d, want 0; counters must not share state", got)
	}
}

func TestCounter_ConcurrentUnique(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int64]bool)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := c.Next()
			mu.Lock()
			defer mu.Unlock()
			if seen[id] {
				t.Errorf("duplicate id %d", id)
			}
			seen[id] = true
		}()
	}
	wg.Wait()

	if len(seen) != 100 {
		t.Errorf("got %d unique ids, want 100", len(seen))
	}
}
