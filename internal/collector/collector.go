package collector

import (
	"context"
	"log"
	"time"

	"MarketAtlas/internal/cache"
	"MarketAtlas/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series map[string]model.Series // per-symbol override; missing symbols get synthetic bars
	Quotes map[string]model.Quote
	Err    error // returned by every call when set
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol, period string) (model.Series, error) {
	if m.Err != nil {
		return model.Series{}, m.Err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return model.Series{
		Symbol:    symbol,
		Bars:      generateMockBars(m.Price, 60),
		FetchedAt: time.Now(),
	}, nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	if m.Err != nil {
		return model.Quote{}, m.Err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return model.Quote{Symbol: symbol, Name: symbol, Price: m.Price}, nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector sits between the board builder and the upstream source: every
// series request goes through the fetch cache first.
type Collector struct {
	Fetcher Fetcher
	Cache   cache.Cache
}

// New creates a new Collector.
func New(fetcher Fetcher, c cache.Cache) *Collector {
	return &Collector{Fetcher: fetcher, Cache: c}
}

// Series returns the cached series for (symbol, period) or fetches and
// caches a fresh one.
func (c *Collector) Series(ctx context.Context, symbol, period string) (model.Series, error) {
	if s, ok := c.Cache.Get(symbol, period); ok {
		return s, nil
	}
	s, err := c.Fetcher.FetchSeries(ctx, symbol, period)
	if err != nil {
		return model.Series{}, err
	}
	c.Cache.Set(symbol, period, s)
	return s, nil
}

// Quote returns current metadata for one symbol. Quotes are not cached;
// they feed the header cards and staleness matters more than call volume.
func (c *Collector) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	return c.Fetcher.FetchQuote(ctx, symbol)
}

// Warm pre-fetches every symbol for the given period so the first board
// build after startup or a scheduled refresh hits only the cache.
func (c *Collector) Warm(ctx context.Context, symbols []string, period string) {
	for _, sym := range symbols {
		s, err := c.Fetcher.FetchSeries(ctx, sym, period)
		if err != nil {
			log.Printf("[WARN] warm %s/%s: %v", sym, period, err)
			continue
		}
		c.Cache.Set(sym, period, s)
	}
}
