// Package cache provides the fetch cache keyed by (symbol, period) with
// time-to-live invalidation, kept outside the analytics core.
package cache

import "MarketAtlas/internal/model"

// Cache stores fetched series so repeated board builds for the same
// (symbol, period) pair skip the upstream call until the entry expires.
type Cache interface {
	Get(symbol, period string) (model.Series, bool)
	Set(symbol, period string, s model.Series)
	Close() error
}

// Key builds the canonical cache key for a (symbol, period) pair.
func Key(symbol, period string) string {
	return symbol + "|" + period
}
