package model

// Quote holds current per-symbol metadata for the dashboard header cards.
// Fields are best-effort: a failed lookup leaves zero values rather than
// blocking the rest of the board.
type Quote struct {
	Symbol    string
	Name      string
	Price     float64
	MarketCap float64
}
