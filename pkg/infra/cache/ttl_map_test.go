package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLMap_ExpiresEntries(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	m := NewTTLMap[string](time.Minute).WithClock(func() time.Time { return now })

	m.Set("a", "1")
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	now = now.Add(time.Minute + time.Millisecond)
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_Sweep(t *testing.T) {
	now := time.UnixMilli(0)
	m := NewTTLMap[int](time.Second).WithClock(func() time.Time { return now })

	m.Set("old", 1)
	now = now.Add(2 * time.Second)
	m.Set("new", 2)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	v, ok := m.Get("new")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestTTLMap_DeleteAndClear(t *testing.T) {
	m := NewTTLMap[string](time.Hour)
	m.Set("a", "1")
	m.Set("b", "2")

	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestTTLMap_ConcurrentAccess(t *testing.T) {
	m := NewTTLMap[int](time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Set("k", i)
			_, _ = m.Get("k")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
}

func TestTTLMap_SweeperDropsIdleEntries(t *testing.T) {
	var mu sync.Mutex
	now := time.UnixMilli(0)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	m := NewTTLMap[int](time.Minute).WithClock(clock)
	for i := 0; i < 1000; i++ {
		m.Set(fmt.Sprintf("10.0.%d.%d", i/256, i%256), i)
	}

	mu.Lock()
	now = now.Add(time.Hour)
	mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
