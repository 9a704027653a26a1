// Package cache keeps the last good upstream response per key and decides between fresh,
// stale and fallback data.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"
)

// Entry is a stored payload with the time it was fetched. Entries are replaced whole.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Age returns how old the entry is at now
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Store persists entries by key. Implementations never evict.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, e Entry) error
}

// Cache wraps a Store and coalesces concurrent refreshes of the same key
type Cache struct {
	store Store
	group singleflight.Group
	now   func() time.Time
}

// New makes a cache on top of store, memory store used if nil
func New(store Store) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Cache{store: store, now: time.Now}
}

// Result is what GetOrRefresh returns. Err is set whenever refresh failed, even if stale or
// fallback data was served.
type Result[T any] struct {
	Value     T
	Cached    bool
	Stale     bool
	Fallback  bool
	FetchedAt time.Time
	Err       error
}

// GetOrRefresh returns a fresh cached value for key, or calls refresh and stores its result.
// On refresh failure it serves the stale entry if one exists, otherwise fallback().
func GetOrRefresh[T any](ctx context.Context, c *Cache, key string, ttl time.Duration,
	refresh func(ctx context.Context) (T, error), fallback func() T) Result[T] {

	stored, found := c.load(ctx, key)
	var cached T
	if found {
		if err := json.Unmarshal(stored.Payload, &cached); err != nil {
			lgr.Printf("[WARN] can't decode cache entry %s: %v", key, err)
			found = false
		}
	}
	if found && stored.Age(c.now()) < ttl {
		return Result[T]{Value: cached, Cached: true, FetchedAt: stored.FetchedAt}
	}

	type refreshed struct {
		value T
		entry Entry
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		val, err := refresh(ctx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		e := Entry{Payload: payload, FetchedAt: c.now()}
		if err := c.store.Put(ctx, key, e); err != nil {
			lgr.Printf("[WARN] can't store cache entry %s: %v", key, err)
		}
		return refreshed{value: val, entry: e}, nil
	})
	if err == nil {
		r := v.(refreshed)
		return Result[T]{Value: r.value, FetchedAt: r.entry.FetchedAt}
	}

	if found {
		lgr.Printf("[WARN] refresh %s failed, serving stale entry from %s: %v", key, stored.FetchedAt.Format(time.RFC3339), err)
		return Result[T]{Value: cached, Cached: true, Stale: true, FetchedAt: stored.FetchedAt, Err: err}
	}
	lgr.Printf("[WARN] refresh %s failed, serving fallback: %v", key, err)
	res := Result[T]{Fallback: true, Err: err}
	if fallback != nil {
		res.Value = fallback()
	}
	return res
}

// Warm refreshes key unconditionally and stores the result
func Warm[T any](ctx context.Context, c *Cache, key string, refresh func(ctx context.Context) (T, error)) error {
	val, err := refresh(ctx)
	if err != nil {
		return fmt.Errorf("warm %s: %w", key, err)
	}
	payload, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.Put(ctx, key, Entry{Payload: payload, FetchedAt: c.now()}); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (c *Cache) load(ctx context.Context, key string) (Entry, bool) {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		lgr.Printf("[WARN] can't read cache entry %s: %v", key, err)
		return Entry{}, false
	}
	return e, ok
}
