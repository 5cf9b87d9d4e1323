package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindow_Allow(t *testing.T) {
	ctx := context.Background()
	window := time.Hour

	t.Run("admits up to limit then rejects", func(t *testing.T) {
		l := NewSlidingWindow()

		for i := 0; i < 5; i++ {
			ok, err := l.Allow(ctx, "client:a", 5, window)
			require.NoError(t, err)
			assert.True(t, ok, "request %d", i)
		}

		ok, err := l.Allow(ctx, "client:a", 5, window)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys are isolated", func(t *testing.T) {
		l := NewSlidingWindow()

		ok, err := l.Allow(ctx, "client:a", 1, window)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = l.Allow(ctx, "client:a", 1, window)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = l.Allow(ctx, "client:b", 1, window)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("readmits after the window slides", func(t *testing.T) {
		current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		l := NewSlidingWindow()
		l.now = func() time.Time { return current }

		ok, _ := l.Allow(ctx, "client:a", 1, window)
		assert.True(t, ok)
		ok, _ = l.Allow(ctx, "client:a", 1, window)
		assert.False(t, ok)

		current = current.Add(window + time.Second)
		ok, _ = l.Allow(ctx, "client:a", 1, window)
		assert.True(t, ok)
	})

	t.Run("partial expiry frees partial quota", func(t *testing.T) {
		current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		l := NewSlidingWindow()
		l.now = func() time.Time { return current }

		ok, _ := l.Allow(ctx, "client:a", 2, window)
		assert.True(t, ok)

		current = current.Add(40 * time.Minute)
		ok, _ = l.Allow(ctx, "client:a", 2, window)
		assert.True(t, ok)
		ok, _ = l.Allow(ctx, "client:a", 2, window)
		assert.False(t, ok)

		// The first request falls out of the window, freeing one slot.
		current = current.Add(25 * time.Minute)
		ok, _ = l.Allow(ctx, "client:a", 2, window)
		assert.True(t, ok)
	})
}

func TestSlidingWindow_Remaining(t *testing.T) {
	ctx := context.Background()
	l := NewSlidingWindow()

	remaining, err := l.Remaining(ctx, "client:a", 3, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	_, _ = l.Allow(ctx, "client:a", 3, time.Hour)
	_, _ = l.Allow(ctx, "client:a", 3, time.Hour)

	remaining, err = l.Remaining(ctx, "client:a", 3, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestSlidingWindow_Concurrent(t *testing.T) {
	ctx := context.Background()
	l := NewSlidingWindow()

	const (
		workers  = 20
		attempts = 10
		limit    = 50
	)

	var wg sync.WaitGroup
	admitted := make(chan struct{}, workers*attempts)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < attempts; j++ {
				ok, err := l.Allow(ctx, "client:shared", limit, time.Hour)
				assert.NoError(t, err)
				if ok {
					admitted <- struct{}{}
				}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	assert.Equal(t, limit, len(admitted))
}
