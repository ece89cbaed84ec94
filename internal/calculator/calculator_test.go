package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"MarketAtlas/internal/model"
)

func seriesFromCloses(symbol string, closes ...float64) model.Series {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   base.AddDate(0, 0, i),
			Open:   c * 0.99,
			High:   c * 1.01,
			Low:    c * 0.98,
			Close:  c,
			Volume: 1000,
		}
	}
	return model.Series{Symbol: symbol, Bars: bars}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalize_FirstBarIsBase(t *testing.T) {
	s := seriesFromCloses("AAPL", 173.5, 180.2, 168.9)
	ns, err := Normalize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ns.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(ns.Bars))
	}
	if ns.Bars[0].NormalizedClose != 100 {
		t.Errorf("first normalized close should be exactly 100, got %v", ns.Bars[0].NormalizedClose)
	}
}

func TestNormalize_NonTrivialBase(t *testing.T) {
	s := seriesFromCloses("GLD", 50, 110, 90)
	ns, err := Normalize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{100, 220, 180}
	for i, w := range want {
		if !almostEqual(ns.Bars[i].NormalizedClose, w) {
			t.Errorf("bar %d: expected normalized close %v, got %v", i, w, ns.Bars[i].NormalizedClose)
		}
	}
}

func TestNormalize_IdentityScaling(t *testing.T) {
	s := seriesFromCloses("SPY", 100, 110, 90)
	ns, err := Normalize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{100, 110, 90}
	for i, w := range want {
		if !almostEqual(ns.Bars[i].NormalizedClose, w) {
			t.Errorf("bar %d: expected %v, got %v", i, w, ns.Bars[i].NormalizedClose)
		}
	}
}

func TestNormalize_PreservesBarFields(t *testing.T) {
	s := seriesFromCloses("TLT", 95.5, 97.2)
	ns, err := Normalize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range s.Bars {
		if ns.Bars[i].Bar != s.Bars[i] {
			t.Errorf("bar %d mutated: %+v != %+v", i, ns.Bars[i].Bar, s.Bars[i])
		}
	}
}

func TestNormalize_Roundtrip(t *testing.T) {
	// Normalizing an already-normalized series yields the same values, since
	// its first close is the base itself.
	s := seriesFromCloses("IEF", 50, 110, 90)
	first, err := Normalize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	renorm := model.Series{Symbol: first.Symbol}
	for _, b := range first.Bars {
		bar := b.Bar
		bar.Close = b.NormalizedClose
		renorm.Bars = append(renorm.Bars, bar)
	}
	second, err := Normalize(renorm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first.Bars {
		if !almostEqual(first.Bars[i].NormalizedClose, second.Bars[i].NormalizedClose) {
			t.Errorf("bar %d: %v != %v", i, first.Bars[i].NormalizedClose, second.Bars[i].NormalizedClose)
		}
	}
}

func TestNormalize_EmptySeries(t *testing.T) {
	ns, err := Normalize(model.Series{Symbol: "DBC"})
	if err != nil {
		t.Fatalf("empty series should not error, got %v", err)
	}
	if !ns.Empty() {
		t.Errorf("expected empty normalized series, got %d bars", len(ns.Bars))
	}
}

func TestNormalize_ZeroBase(t *testing.T) {
	s := seriesFromCloses("BAD", 0, 10, 20)
	_, err := Normalize(s)
	if !errors.Is(err, ErrZeroBasePrice) {
		t.Errorf("expected ErrZeroBasePrice, got %v", err)
	}
}

func TestSummarize_Basic(t *testing.T) {
	s := seriesFromCloses("MSFT", 100, 110, 90)
	sum, err := Summarize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.StartPrice != 100 || sum.EndPrice != 90 {
		t.Errorf("expected start=100 end=90, got %v/%v", sum.StartPrice, sum.EndPrice)
	}
	if !almostEqual(sum.TotalReturnPct, -10.0) {
		t.Errorf("expected total return -10.0, got %v", sum.TotalReturnPct)
	}
	if sum.MaxPrice != 110 || sum.MinPrice != 90 {
		t.Errorf("expected max=110 min=90, got %v/%v", sum.MaxPrice, sum.MinPrice)
	}
	// Population std dev of {100,110,90}: mean 100, variance 200/3.
	if !almostEqual(sum.Volatility, math.Sqrt(200.0/3.0)) {
		t.Errorf("expected volatility %v, got %v", math.Sqrt(200.0/3.0), sum.Volatility)
	}
}

func TestSummarize_SingleBar(t *testing.T) {
	s := seriesFromCloses("NVDA", 42.5)
	sum, err := Summarize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalReturnPct != 0 {
		t.Errorf("expected zero return, got %v", sum.TotalReturnPct)
	}
	if sum.Volatility != 0 {
		t.Errorf("expected zero volatility under the population estimator, got %v", sum.Volatility)
	}
	if sum.MaxPrice != 42.5 || sum.MinPrice != 42.5 || sum.StartPrice != 42.5 || sum.EndPrice != 42.5 {
		t.Errorf("all prices should equal the single close, got %+v", sum)
	}
}

func TestSummarize_EmptySeries(t *testing.T) {
	_, err := Summarize(model.Series{Symbol: "AMZN"})
	if !errors.Is(err, ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestSummarize_ZeroStartPrice(t *testing.T) {
	_, err := Summarize(seriesFromCloses("BAD", 0, 5))
	if !errors.Is(err, ErrZeroBasePrice) {
		t.Errorf("expected ErrZeroBasePrice, got %v", err)
	}
}

func dateOnly(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCatalogue() []model.CrisisWindow {
	return []model.CrisisWindow{
		{Name: "COVID-19 crash", Start: dateOnly(2020, 2, 19), End: dateOnly(2020, 4, 1)},
		{Name: "2022 inflation", Start: dateOnly(2022, 1, 1), End: dateOnly(2022, 12, 31)},
		{Name: "SVB collapse", Start: dateOnly(2023, 3, 8), End: dateOnly(2023, 3, 20)},
	}
}

func TestOverlappingWindows_PreservesOrder(t *testing.T) {
	got := OverlappingWindows(testCatalogue(), dateOnly(2019, 1, 1), dateOnly(2024, 1, 1))
	if len(got) != 3 {
		t.Fatalf("expected all 3 windows, got %d", len(got))
	}
	want := []string{"COVID-19 crash", "2022 inflation", "SVB collapse"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, got[i].Name)
		}
	}
}

func TestOverlappingWindows_TouchingBoundary(t *testing.T) {
	// Display range ends exactly on a window's start date: still an overlap.
	got := OverlappingWindows(testCatalogue(), dateOnly(2020, 1, 1), dateOnly(2020, 2, 19))
	if len(got) != 1 || got[0].Name != "COVID-19 crash" {
		t.Fatalf("expected the touching window to be reported, got %v", got)
	}
}

func TestOverlappingWindows_Disjoint(t *testing.T) {
	got := OverlappingWindows(testCatalogue(), dateOnly(2015, 1, 1), dateOnly(2016, 1, 1))
	if len(got) != 0 {
		t.Errorf("expected no overlaps, got %d", len(got))
	}
}

func TestOverlappingWindows_EmptyCatalogue(t *testing.T) {
	got := OverlappingWindows(nil, dateOnly(2020, 1, 1), dateOnly(2021, 1, 1))
	if len(got) != 0 {
		t.Errorf("expected empty result for empty catalogue, got %d", len(got))
	}
}

func TestResolveLookback(t *testing.T) {
	now := dateOnly(2024, 6, 15)
	tests := []struct {
		code string
		days int
	}{
		{"1y", 365},
		{"2y", 730},
		{"3y", 1095},
		{"5y", 1825},
		{"10y", 3650},
	}
	for _, tt := range tests {
		start, end, err := ResolveLookback(tt.code, now)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.code, err)
			continue
		}
		if !end.Equal(now) {
			t.Errorf("%s: end should equal now, got %v", tt.code, end)
		}
		if want := now.AddDate(0, 0, -tt.days); !start.Equal(want) {
			t.Errorf("%s: expected start %v, got %v", tt.code, want, start)
		}
	}
}

func TestResolveLookback_InvalidCode(t *testing.T) {
	for _, code := range []string{"", "7y", "3Y", "max", "ytd"} {
		if _, _, err := ResolveLookback(code, time.Now()); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("%q: expected ErrInvalidPeriod, got %v", code, err)
		}
	}
}
