package calculator

import "errors"

var (
	// ErrEmptySeries is returned when a computation needs at least one bar.
	ErrEmptySeries = errors.New("empty series")

	// ErrZeroBasePrice is returned when the first close of a series is zero,
	// which would otherwise produce infinities in normalization or returns.
	ErrZeroBasePrice = errors.New("zero base price")

	// ErrInvalidPeriod is returned for an unrecognized lookback code.
	ErrInvalidPeriod = errors.New("invalid lookback period")
)
