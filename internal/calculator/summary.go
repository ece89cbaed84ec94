package calculator

import (
	"math"

	"MarketAtlas/internal/model"
)

// Summarize computes the performance snapshot of a non-empty series.
// Returns ErrEmptySeries for an empty input and ErrZeroBasePrice when the
// starting close is zero, since the total return is undefined there.
func Summarize(s model.Series) (model.PerformanceSummary, error) {
	if s.Empty() {
		return model.PerformanceSummary{}, ErrEmptySeries
	}

	closes := s.Closes()
	start := closes[0]
	end := closes[len(closes)-1]
	if start == 0 {
		return model.PerformanceSummary{}, ErrZeroBasePrice
	}

	max := math.Inf(-1)
	min := math.Inf(1)
	for _, c := range closes {
		if c > max {
			max = c
		}
		if c < min {
			min = c
		}
	}

	return model.PerformanceSummary{
		Symbol:         s.Symbol,
		StartPrice:     start,
		EndPrice:       end,
		TotalReturnPct: (end - start) / start * 100,
		MaxPrice:       max,
		MinPrice:       min,
		Volatility:     stdDev(closes),
	}, nil
}

// stdDev computes the population standard deviation (divisor n). The
// population estimator keeps single-element series well-defined at 0.
func stdDev(values []float64) float64 {
	n := float64(len(values))
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n

	var m2 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
	}
	return math.Sqrt(m2 / n)
}
