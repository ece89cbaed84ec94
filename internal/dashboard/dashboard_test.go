package dashboard

import (
	"context"
	"testing"
	"time"

	"MarketAtlas/internal/cache"
	"MarketAtlas/internal/calculator"
	"MarketAtlas/internal/collector"
	"MarketAtlas/internal/model"
)

func testSeries(symbol string, closes ...float64) model.Series {
	base := time.Now().AddDate(0, 0, -len(closes))
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	return model.Series{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}
}

func testBuilder(fetcher collector.Fetcher) *Builder {
	col := collector.New(fetcher, cache.NewNoopCache())
	companies := []Entry{{Name: "Apple", Ticker: "AAPL"}}
	assets := []Entry{{Name: "Gold", Ticker: "GLD"}}
	crises := []model.CrisisWindow{
		{
			Name:  "COVID-19 pandemic shock",
			Start: time.Date(2020, 2, 19, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	return NewBuilder(col, companies, assets, crises)
}

func TestBuild_FullBoard(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price: 100,
		Series: map[string]model.Series{
			"AAPL": testSeries("AAPL", 100, 110, 90),
			"GLD":  testSeries("GLD", 50, 110, 90),
		},
	}
	b := testBuilder(fetcher)

	board, err := b.Build(context.Background(), "1y")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(board.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", board.Warnings)
	}
	if len(board.Series) != 2 || len(board.Summaries) != 2 {
		t.Fatalf("expected 2 series and 2 summaries, got %d/%d", len(board.Series), len(board.Summaries))
	}
	if board.Summaries[0].Symbol != "AAPL" {
		t.Errorf("summaries should follow catalogue order, got %q first", board.Summaries[0].Symbol)
	}
	if board.Summaries[0].TotalReturnPct != -10.0 {
		t.Errorf("expected AAPL return -10.0, got %v", board.Summaries[0].TotalReturnPct)
	}

	ns := board.Normalized["GLD"]
	if len(ns.Bars) != 3 || ns.Bars[1].NormalizedClose != 220 {
		t.Errorf("expected GLD normalized to [100 220 180], got %+v", ns.Bars)
	}
	if len(board.Quotes) != 1 || board.Quotes[0].Symbol != "AAPL" {
		t.Errorf("expected one company quote, got %+v", board.Quotes)
	}
}

func TestBuild_InvalidPeriod(t *testing.T) {
	b := testBuilder(&collector.MockFetcher{Price: 100})
	if _, err := b.Build(context.Background(), "7y"); err == nil {
		t.Fatal("expected error for unrecognized period")
	}
}

func TestBuild_SkipsAbsentSymbol(t *testing.T) {
	// AAPL has data, GLD reports nothing upstream: board keeps AAPL and
	// carries a warning for GLD.
	fetcher := &perSymbolFetcher{
		good: map[string]model.Series{"AAPL": testSeries("AAPL", 100, 105)},
	}
	b := testBuilder(fetcher)

	board, err := b.Build(context.Background(), "1y")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := board.Series["AAPL"]; !ok {
		t.Error("AAPL should survive GLD's absence")
	}
	if _, ok := board.Series["GLD"]; ok {
		t.Error("GLD should have been skipped")
	}
	if len(board.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", board.Warnings)
	}
}

func TestBuild_SkipsZeroBaseSeries(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price: 100,
		Series: map[string]model.Series{
			"AAPL": testSeries("AAPL", 0, 10),
			"GLD":  testSeries("GLD", 50, 55),
		},
	}
	b := testBuilder(fetcher)

	board, err := b.Build(context.Background(), "1y")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := board.Normalized["AAPL"]; ok {
		t.Error("zero-base series must not be normalized")
	}
	if len(board.Summaries) != 1 || board.Summaries[0].Symbol != "GLD" {
		t.Errorf("expected only GLD summarized, got %+v", board.Summaries)
	}
	if len(board.Warnings) == 0 {
		t.Error("expected warnings for the zero-base series")
	}
}

func TestBuild_CrisisOverlap(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	b := testBuilder(fetcher)

	// A 10y window reaches back past 2020, so the COVID window overlaps.
	board, err := b.Build(context.Background(), "10y")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(board.Crises) != 1 {
		t.Errorf("expected the COVID window in a 10y board, got %d", len(board.Crises))
	}
}

// perSymbolFetcher returns data for listed symbols and ErrNoData otherwise.
type perSymbolFetcher struct {
	good map[string]model.Series
}

func (f *perSymbolFetcher) Name() string { return "per-symbol" }

func (f *perSymbolFetcher) FetchSeries(_ context.Context, symbol, _ string) (model.Series, error) {
	if s, ok := f.good[symbol]; ok {
		return s, nil
	}
	return model.Series{}, collector.ErrNoData
}

func (f *perSymbolFetcher) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	return model.Quote{Symbol: symbol}, nil
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.42e12, "$3.42T"},
		{891.2e9, "$891.20B"},
		{52.1e6, "$52.10M"},
		{950_000, "$950000"},
	}
	for _, tt := range tests {
		if got := FormatMarketCap(tt.in); got != tt.want {
			t.Errorf("FormatMarketCap(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoardCrisesMatchCalculator(t *testing.T) {
	// The board's crisis list is exactly the calculator's overlap result.
	b := testBuilder(&collector.MockFetcher{Price: 100})
	board, err := b.Build(context.Background(), "1y")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := calculator.OverlappingWindows(b.Crises, board.Start, board.End)
	if len(board.Crises) != len(want) {
		t.Errorf("board crises diverge from overlap computation: %d != %d", len(board.Crises), len(want))
	}
}
