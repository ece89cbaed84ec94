package model

import "time"

// Bar represents a single daily candlestick observation.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds ordered daily bars for one symbol over one lookback window.
// Bars are strictly increasing in time. An empty Series means "nothing to
// display" rather than an error.
type Series struct {
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// Empty reports whether the series has no bars.
func (s Series) Empty() bool { return len(s.Bars) == 0 }

// Closes returns the close price of every bar in order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// NormalizedBar is a Bar augmented with a close rescaled to a common base,
// so that the first bar of a series always sits at 100.
type NormalizedBar struct {
	Bar
	NormalizedClose float64
}

// NormalizedSeries is a Series rescaled for cross-symbol comparison.
type NormalizedSeries struct {
	Symbol string
	Bars   []NormalizedBar
}

// Empty reports whether the normalized series has no bars.
func (s NormalizedSeries) Empty() bool { return len(s.Bars) == 0 }
