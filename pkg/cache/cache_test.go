package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestGetOrRefresh(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := New(nil)
	c.now = func() time.Time { return now }
	ctx := context.Background()
	fallback := func() []quote { return []quote{{Symbol: "SPY", Price: 1}} }

	t.Run("empty cache, refresh ok", func(t *testing.T) {
		res := GetOrRefresh(ctx, c, "stocks", time.Minute, func(context.Context) ([]quote, error) {
			return []quote{{Symbol: "AAPL", Price: 150}}, nil
		}, fallback)
		require.NoError(t, res.Err)
		assert.False(t, res.Cached)
		assert.False(t, res.Fallback)
		assert.Equal(t, []quote{{Symbol: "AAPL", Price: 150}}, res.Value)
	})

	t.Run("fresh entry, refresh not called", func(t *testing.T) {
		now = now.Add(30 * time.Second)
		res := GetOrRefresh(ctx, c, "stocks", time.Minute, func(context.Context) ([]quote, error) {
			t.Fatal("refresh should not be called")
			return nil, nil
		}, fallback)
		require.NoError(t, res.Err)
		assert.True(t, res.Cached)
		assert.False(t, res.Stale)
		assert.Equal(t, []quote{{Symbol: "AAPL", Price: 150}}, res.Value)
	})

	t.Run("expired entry, refresh fails, stale served", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		res := GetOrRefresh(ctx, c, "stocks", time.Minute, func(context.Context) ([]quote, error) {
			return nil, errors.New("upstream down")
		}, fallback)
		require.EqualError(t, res.Err, "upstream down")
		assert.True(t, res.Cached)
		assert.True(t, res.Stale)
		assert.False(t, res.Fallback)
		assert.Equal(t, []quote{{Symbol: "AAPL", Price: 150}}, res.Value)
	})

	t.Run("expired entry, refresh ok, replaced", func(t *testing.T) {
		res := GetOrRefresh(ctx, c, "stocks", time.Minute, func(context.Context) ([]quote, error) {
			return []quote{{Symbol: "AAPL", Price: 151}}, nil
		}, fallback)
		require.NoError(t, res.Err)
		assert.False(t, res.Cached)
		assert.Equal(t, now, res.FetchedAt)

		res = GetOrRefresh(ctx, c, "stocks", time.Minute, func(context.Context) ([]quote, error) {
			return nil, errors.New("not expected")
		}, fallback)
		assert.True(t, res.Cached)
		assert.Equal(t, []quote{{Symbol: "AAPL", Price: 151}}, res.Value)
	})

	t.Run("no entry, refresh fails, fallback served", func(t *testing.T) {
		res := GetOrRefresh(ctx, c, "other", time.Minute, func(context.Context) ([]quote, error) {
			return nil, errors.New("upstream down")
		}, fallback)
		require.Error(t, res.Err)
		assert.True(t, res.Fallback)
		assert.False(t, res.Cached)
		assert.Equal(t, fallback(), res.Value)
	})

	t.Run("no entry, no fallback", func(t *testing.T) {
		res := GetOrRefresh[[]quote](ctx, c, "nothing", time.Minute, func(context.Context) ([]quote, error) {
			return nil, errors.New("upstream down")
		}, nil)
		require.Error(t, res.Err)
		assert.True(t, res.Fallback)
		assert.Nil(t, res.Value)
	})
}

func TestGetOrRefresh_Coalesced(t *testing.T) {
	c := New(NewMemoryStore())
	var calls int32
	release := make(chan struct{})
	refresh := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]Result[int], 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GetOrRefresh(context.Background(), c, "k", time.Minute, refresh, nil)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, 42, r.Value)
		assert.NoError(t, r.Err)
	}
}

func TestGetOrRefresh_BrokenEntry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "k", Entry{Payload: []byte("{bad"), FetchedAt: time.Now()}))
	c := New(store)
	res := GetOrRefresh(context.Background(), c, "k", time.Hour, func(context.Context) (int, error) { return 7, nil }, nil)
	require.NoError(t, res.Err)
	assert.False(t, res.Cached)
	assert.Equal(t, 7, res.Value)
}

func TestWarm(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	require.NoError(t, Warm(ctx, c, "k", func(context.Context) (string, error) { return "warm", nil }))

	res := GetOrRefresh(ctx, c, "k", time.Minute, func(context.Context) (string, error) {
		return "", errors.New("not expected")
	}, nil)
	assert.True(t, res.Cached)
	assert.Equal(t, "warm", res.Value)

	err := Warm(ctx, c, "k", func(context.Context) (string, error) { return "", errors.New("boom") })
	require.EqualError(t, err, "warm k: boom")
}
