package litl

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoroutineID_UniquePerGoroutine(t *testing.T) {
	const n = 8
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = goroutineID()
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "goroutine ids must be unique: %v", ids)
		seen[id] = true
	}
}

func TestGoroutineID_StableWithinGoroutine(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		first := goroutineID()
		second := goroutineID()
		assert.Equal(t, first, second)
	}()
	<-done
}
