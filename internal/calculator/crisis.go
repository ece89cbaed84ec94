package calculator

import (
	"time"

	"MarketAtlas/internal/model"
)

// OverlappingWindows returns the crisis windows that intersect the display
// range [start, end], in catalogue order. The overlap test is closed on both
// sides: a window touching the range at a single date still counts. Total
// over all inputs; an empty catalogue yields an empty result.
func OverlappingWindows(catalogue []model.CrisisWindow, start, end time.Time) []model.CrisisWindow {
	var out []model.CrisisWindow
	for _, w := range catalogue {
		if w.Overlaps(start, end) {
			out = append(out, w)
		}
	}
	return out
}
