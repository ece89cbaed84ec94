// Package server exposes the dashboard over HTTP: JSON APIs for the board
// data products and rendered chart pages for the browser.
package server

import (
	"MarketAtlas/internal/dashboard"
	"MarketAtlas/internal/model"
)

const dateLayout = "2006-01-02"

// BarJSON is the JSON representation of one daily bar.
type BarJSON struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// SeriesJSON holds the raw bars for one symbol.
type SeriesJSON struct {
	Symbol string    `json:"symbol"`
	Bars   []BarJSON `json:"bars"`
}

// PointJSON is one (date, value) pair of a normalized series.
type PointJSON struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SummaryJSON is one row of the performance table.
type SummaryJSON struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name,omitempty"`
	StartPrice     float64 `json:"startPrice"`
	EndPrice       float64 `json:"endPrice"`
	TotalReturnPct float64 `json:"totalReturnPct"`
	MaxPrice       float64 `json:"maxPrice"`
	MinPrice       float64 `json:"minPrice"`
	Volatility     float64 `json:"volatility"`
}

// QuoteJSON is one company header card.
type QuoteJSON struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	MarketCap     float64 `json:"marketCap"`
	MarketCapText string  `json:"marketCapText"`
}

// CrisisJSON is one crisis window overlay.
type CrisisJSON struct {
	Name        string `json:"name"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
}

// BoardJSON is the full dashboard snapshot for one period.
type BoardJSON struct {
	Period     string                 `json:"period"`
	Start      string                 `json:"start"`
	End        string                 `json:"end"`
	Quotes     []QuoteJSON            `json:"quotes"`
	Summaries  []SummaryJSON          `json:"summaries"`
	Normalized map[string][]PointJSON `json:"normalized"`
	Crises     []CrisisJSON           `json:"crises"`
	Warnings   []string               `json:"warnings,omitempty"`
}

func toBarsJSON(bars []model.Bar) []BarJSON {
	out := make([]BarJSON, len(bars))
	for i, b := range bars {
		out[i] = BarJSON{
			Date:   b.Time.Format(dateLayout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return out
}

func toCrisesJSON(crises []model.CrisisWindow) []CrisisJSON {
	out := make([]CrisisJSON, 0, len(crises))
	for _, w := range crises {
		out = append(out, CrisisJSON{
			Name:        w.Name,
			Start:       w.Start.Format(dateLayout),
			End:         w.End.Format(dateLayout),
			Description: w.Description,
		})
	}
	return out
}

func toBoardJSON(board *dashboard.Board) BoardJSON {
	names := make(map[string]string, len(board.Companies)+len(board.Assets))
	for _, e := range board.Companies {
		names[e.Ticker] = e.Name
	}
	for _, e := range board.Assets {
		names[e.Ticker] = e.Name
	}

	out := BoardJSON{
		Period:     board.Period,
		Start:      board.Start.Format(dateLayout),
		End:        board.End.Format(dateLayout),
		Normalized: make(map[string][]PointJSON, len(board.Normalized)),
		Crises:     toCrisesJSON(board.Crises),
		Warnings:   board.Warnings,
	}
	for _, q := range board.Quotes {
		out.Quotes = append(out.Quotes, QuoteJSON{
			Symbol:        q.Symbol,
			Name:          q.Name,
			Price:         q.Price,
			MarketCap:     q.MarketCap,
			MarketCapText: dashboard.FormatMarketCap(q.MarketCap),
		})
	}
	for _, sum := range board.Summaries {
		out.Summaries = append(out.Summaries, SummaryJSON{
			Symbol:         sum.Symbol,
			Name:           names[sum.Symbol],
			StartPrice:     sum.StartPrice,
			EndPrice:       sum.EndPrice,
			TotalReturnPct: sum.TotalReturnPct,
			MaxPrice:       sum.MaxPrice,
			MinPrice:       sum.MinPrice,
			Volatility:     sum.Volatility,
		})
	}
	for sym, ns := range board.Normalized {
		points := make([]PointJSON, len(ns.Bars))
		for i, b := range ns.Bars {
			points[i] = PointJSON{Date: b.Time.Format(dateLayout), Value: b.NormalizedClose}
		}
		out.Normalized[sym] = points
	}
	return out
}
