// Package dashboard assembles the data products served to the browser:
// raw and normalized series, performance summaries, crisis overlays, and
// per-symbol warnings for anything that could not be fetched.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"MarketAtlas/internal/calculator"
	"MarketAtlas/internal/collector"
	"MarketAtlas/internal/model"
)

// Entry maps a display name to a ticker, in catalogue order.
type Entry struct {
	Name   string
	Ticker string
}

// Board is one immutable dashboard snapshot for a single lookback period.
// A fresh Board is built per request (or served from the fetch cache
// underneath); nothing here is mutated after Build returns.
type Board struct {
	Period     string
	Start      time.Time
	End        time.Time
	Companies  []Entry
	Assets     []Entry
	Quotes     []model.Quote
	Series     map[string]model.Series
	Normalized map[string]model.NormalizedSeries
	Summaries  []model.PerformanceSummary
	Crises     []model.CrisisWindow
	Warnings   []string
	BuiltAt    time.Time
}

// Builder turns catalogue entries into Board snapshots.
type Builder struct {
	Collector *collector.Collector
	Companies []Entry
	Assets    []Entry
	Crises    []model.CrisisWindow
}

// NewBuilder creates a Builder over the given catalogues.
func NewBuilder(col *collector.Collector, companies, assets []Entry, crises []model.CrisisWindow) *Builder {
	return &Builder{Collector: col, Companies: companies, Assets: assets, Crises: crises}
}

// Entries returns the full catalogue, companies first.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, 0, len(b.Companies)+len(b.Assets))
	out = append(out, b.Companies...)
	return append(out, b.Assets...)
}

// Build assembles a Board for the given lookback period. It fails only for
// an unrecognized period code; a symbol whose data cannot be fetched,
// normalized, or summarized is skipped with a warning so one bad symbol
// never takes down the rest of the board.
func (b *Builder) Build(ctx context.Context, period string) (*Board, error) {
	start, end, err := calculator.ResolveLookback(period, time.Now())
	if err != nil {
		return nil, err
	}

	board := &Board{
		Period:     period,
		Start:      start,
		End:        end,
		Companies:  b.Companies,
		Assets:     b.Assets,
		Series:     make(map[string]model.Series),
		Normalized: make(map[string]model.NormalizedSeries),
		Crises:     calculator.OverlappingWindows(b.Crises, start, end),
		BuiltAt:    time.Now(),
	}

	for _, e := range b.Entries() {
		s, err := b.Collector.Series(ctx, e.Ticker, period)
		if err != nil {
			b.skip(board, e, fmt.Sprintf("no data for %s (%s): %v", e.Name, e.Ticker, err))
			continue
		}
		if s.Empty() {
			b.skip(board, e, fmt.Sprintf("empty series for %s (%s)", e.Name, e.Ticker))
			continue
		}
		board.Series[e.Ticker] = s

		ns, err := calculator.Normalize(s)
		if err != nil {
			b.skip(board, e, fmt.Sprintf("cannot normalize %s (%s): %v", e.Name, e.Ticker, err))
		} else {
			board.Normalized[e.Ticker] = ns
		}

		sum, err := calculator.Summarize(s)
		if err != nil {
			b.skip(board, e, fmt.Sprintf("cannot summarize %s (%s): %v", e.Name, e.Ticker, err))
			continue
		}
		board.Summaries = append(board.Summaries, sum)
	}

	// Header cards for companies; failures here only cost the card.
	for _, e := range b.Companies {
		q, err := b.Collector.Quote(ctx, e.Ticker)
		if err != nil {
			log.Printf("[WARN] quote %s: %v", e.Ticker, err)
			continue
		}
		if q.Name == "" {
			q.Name = e.Name
		}
		board.Quotes = append(board.Quotes, q)
	}

	return board, nil
}

func (b *Builder) skip(board *Board, e Entry, msg string) {
	log.Printf("[WARN] %s", msg)
	board.Warnings = append(board.Warnings, msg)
}
