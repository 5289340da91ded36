package main

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const recordsCacheKey = "records"

// CachedStore memoises reads of a slow store (a remote spreadsheet) for a TTL.
// Appends go straight through and invalidate the memoised read.
type CachedStore struct {
	Store
	cache *cache.Cache

	// gen counts appends; a read only fills the cache if none happened meanwhile
	mu  sync.Mutex
	gen uint64
}

func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		Store: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

func (c *CachedStore) Records(ctx context.Context) ([]Record, error) {
	if cached, found := c.cache.Get(recordsCacheKey); found {
		return slices.Clone(cached.([]Record)), nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	records, err := c.Store.Records(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if gen == c.gen {
		c.cache.Set(recordsCacheKey, slices.Clone(records), cache.DefaultExpiration)
	}
	c.mu.Unlock()
	return records, nil
}

func (c *CachedStore) Append(ctx context.Context, e Entry) error {
	if err := c.Store.Append(ctx, e); err != nil {
		return err
	}
	c.mu.Lock()
	c.gen++
	c.cache.Delete(recordsCacheKey)
	c.mu.Unlock()
	return nil
}
