package dashboard

import "fmt"

// FormatMarketCap renders a market cap in trillions/billions/millions,
// matching the header cards ($3.42T, $891.20B, $52.10M).
func FormatMarketCap(marketCap float64) string {
	switch {
	case marketCap >= 1e12:
		return fmt.Sprintf("$%.2fT", marketCap/1e12)
	case marketCap >= 1e9:
		return fmt.Sprintf("$%.2fB", marketCap/1e9)
	case marketCap >= 1e6:
		return fmt.Sprintf("$%.2fM", marketCap/1e6)
	default:
		return fmt.Sprintf("$%.0f", marketCap)
	}
}
