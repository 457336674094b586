package client

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCache_FreshHitSkipsFetch(t *testing.T) {
	cache := newQueryCache(time.Minute, time.Hour)

	var calls int32
	fetch := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{"n":1}`), nil
	}

	first, err := cache.Get("GET /api/v1/posts", fetch)
	require.NoError(t, err)

	second, err := cache.Get("GET /api/v1/posts", fetch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestQueryCache_StaleServedWhileRefreshing(t *testing.T) {
	cache := newQueryCache(0, time.Hour)

	refreshed := make(chan struct{})
	var calls int32
	fetch := func() ([]byte, error) {
		if atomic.AddInt32(&calls, 1) == 2 {
			defer close(refreshed)
			return []byte(`new`), nil
		}
		return []byte(`old`), nil
	}

	first, err := cache.Get("key", fetch)
	require.NoError(t, err)
	assert.Equal(t, []byte(`old`), first)

	// The entry is already stale: it is served as-is and refreshed in the
	// background.
	second, err := cache.Get("key", fetch)
	require.NoError(t, err)
	assert.Equal(t, []byte(`old`), second)

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("background refresh never ran")
	}
}

func TestQueryCache_ConcurrentMissesCollapse(t *testing.T) {
	cache := newQueryCache(time.Minute, time.Hour)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	fetch := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return []byte(`shared`), nil
	}

	var wg sync.WaitGroup
	results := make([][]byte, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Get("key", fetch)
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []byte(`shared`), results[0])
	assert.Equal(t, []byte(`shared`), results[1])
}

func TestQueryCache_FetchErrorNotCached(t *testing.T) {
	cache := newQueryCache(time.Minute, time.Hour)

	boom := errors.New("boom")
	_, err := cache.Get("key", func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	body, err := cache.Get("key", func() ([]byte, error) { return []byte(`ok`), nil })
	require.NoError(t, err)
	assert.Equal(t, []byte(`ok`), body)
}

func TestQueryCache_Invalidate(t *testing.T) {
	cache := newQueryCache(time.Minute, time.Hour)

	cache.Set("GET /api/v1/posts", []byte(`list`))
	cache.Set("GET /api/v1/posts/1", []byte(`item`))
	cache.Set("GET /api/v1/tags", []byte(`tags`))

	cache.Invalidate("GET /api/v1/posts")

	var calls int32
	fetch := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`fresh`), nil
	}

	_, err := cache.Get("GET /api/v1/posts", fetch)
	require.NoError(t, err)
	_, err = cache.Get("GET /api/v1/posts/1", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	body, err := cache.Get("GET /api/v1/tags", fetch)
	require.NoError(t, err)
	assert.Equal(t, []byte(`tags`), body)
}

func TestQueryCache_EvictsUnusedEntries(t *testing.T) {
	cache := newQueryCache(time.Minute, 10*time.Millisecond)

	cache.Set("key", []byte(`old`))
	time.Sleep(20 * time.Millisecond)

	var calls int32
	body, err := cache.Get("key", func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`fresh`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte(`fresh`), body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
