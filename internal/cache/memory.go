package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"MarketAtlas/internal/model"
)

// MemoryCache is an in-process TTL cache for fetched series.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, 10*time.Minute)}
}

func (m *MemoryCache) Get(symbol, period string) (model.Series, bool) {
	v, ok := m.store.Get(Key(symbol, period))
	if !ok {
		return model.Series{}, false
	}
	return v.(model.Series), true
}

func (m *MemoryCache) Set(symbol, period string, s model.Series) {
	m.store.SetDefault(Key(symbol, period), s)
}

func (m *MemoryCache) Close() error { return nil }
