package calculator

import (
	"fmt"
	"time"
)

// lookbackDays maps each supported period code to a fixed day offset.
var lookbackDays = map[string]int{
	"1y":  365,
	"2y":  730,
	"3y":  1095,
	"5y":  1825,
	"10y": 3650,
}

// Periods lists the supported lookback codes, shortest first.
var Periods = []string{"1y", "2y", "3y", "5y", "10y"}

// ValidPeriod reports whether code is a supported lookback code.
func ValidPeriod(code string) bool {
	_, ok := lookbackDays[code]
	return ok
}

// ResolveLookback turns a period code into a concrete [start, end] date range
// ending at now. Unrecognized codes return ErrInvalidPeriod; callers that
// want a default must pick one explicitly rather than relying on a silent
// fallback.
func ResolveLookback(code string, now time.Time) (start, end time.Time, err error) {
	days, ok := lookbackDays[code]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, code)
	}
	return now.AddDate(0, 0, -days), now, nil
}
