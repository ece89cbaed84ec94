package collector

import (
	"context"
	"errors"

	"MarketAtlas/internal/model"
)

// ErrNoData signals that the upstream source produced nothing for a symbol.
// It is a skip-and-warn condition for callers, never a fatal one, and is
// distinct from a valid series that happens to be empty.
var ErrNoData = errors.New("no data for symbol")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol, period string) (model.Series, error)
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	Name() string
}
