package model

// PerformanceSummary is a read-only snapshot of one series, computed on
// demand and discarded after rendering.
//
// Volatility is the population standard deviation (divisor n) of the close
// prices, so a single-bar series yields exactly 0 rather than NaN.
type PerformanceSummary struct {
	Symbol         string
	StartPrice     float64
	EndPrice       float64
	TotalReturnPct float64
	MaxPrice       float64
	MinPrice       float64
	Volatility     float64
}
