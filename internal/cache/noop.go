package cache

import "MarketAtlas/internal/model"

// NoopCache is used when caching is disabled; every lookup misses.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Get(_, _ string) (model.Series, bool) { return model.Series{}, false }
func (n *NoopCache) Set(_, _ string, _ model.Series)      {}
func (n *NoopCache) Close() error                         { return nil }
