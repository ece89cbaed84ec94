package model

import "time"

// CrisisWindow is a named historical market-stress period drawn as a shaded
// overlay on charts. Start and End are inclusive dates.
type CrisisWindow struct {
	Name        string
	Start       time.Time
	End         time.Time
	Description string
}

// Overlaps reports whether the window intersects [start, end] under
// closed-interval semantics: touching endpoints count as overlapping.
func (w CrisisWindow) Overlaps(start, end time.Time) bool {
	return !(w.End.Before(start) || w.Start.After(end))
}
