package calculator

import (
	"MarketAtlas/internal/model"
)

// NormalizationBase is the value assigned to the first close of every
// normalized series, so that different symbols can share one axis.
const NormalizationBase = 100.0

// Normalize rescales a series so its first close equals NormalizationBase.
// An empty series normalizes to an empty series with a nil error; callers
// treat that as "nothing to display". A zero first close returns
// ErrZeroBasePrice instead of silently producing infinities.
func Normalize(s model.Series) (model.NormalizedSeries, error) {
	out := model.NormalizedSeries{Symbol: s.Symbol}
	if s.Empty() {
		return out, nil
	}

	base := s.Bars[0].Close
	if base == 0 {
		return out, ErrZeroBasePrice
	}

	out.Bars = make([]model.NormalizedBar, len(s.Bars))
	for i, b := range s.Bars {
		out.Bars[i] = model.NormalizedBar{
			Bar:             b,
			NormalizedClose: NormalizationBase * b.Close / base,
		}
	}
	return out, nil
}
