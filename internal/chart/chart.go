// Package chart builds the go-echarts figures served by the dashboard:
// multi-symbol price and normalized comparison lines, volume lines, and
// single-symbol candlesticks, each with crisis windows shaded underneath.
package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"MarketAtlas/internal/dashboard"
	"MarketAtlas/internal/model"
)

const dateLayout = "2006-01-02"

// markAreaStyle is the translucent red fill shared by every crisis overlay.
func markAreaStyle() charts.SeriesOpts {
	return charts.WithMarkAreaStyleOpts(opts.MarkAreaStyle{
		ItemStyle: &opts.ItemStyle{Color: "rgba(255, 0, 0, 0.1)"},
	})
}

// crisisMarkAreas converts crisis windows into shaded mark areas on a time
// axis.
func crisisMarkAreas(crises []model.CrisisWindow) []charts.SeriesOpts {
	items := make([]opts.MarkAreaNameCoordItem, 0, len(crises))
	for _, w := range crises {
		items = append(items, opts.MarkAreaNameCoordItem{
			Name:        w.Name,
			Coordinate0: []interface{}{w.Start.Format(dateLayout)},
			Coordinate1: []interface{}{w.End.Format(dateLayout)},
		})
	}
	if len(items) == 0 {
		return nil
	}
	return []charts.SeriesOpts{markAreaStyle(), charts.WithMarkAreaNameCoordItemOpts(items...)}
}

func newTimeLine(title, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
	)
	return line
}

func lineData(bars []model.Bar, value func(model.Bar) float64) []opts.LineData {
	data := make([]opts.LineData, len(bars))
	for i, b := range bars {
		data[i] = opts.LineData{Value: []interface{}{b.Time.Format(dateLayout), value(b)}}
	}
	return data
}

// entryLabel returns "Name (TICKER)" for legend entries.
func entryLabel(e dashboard.Entry) string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Ticker)
}

// PriceLine draws the close price of every company on the board.
func PriceLine(board *dashboard.Board) *charts.Line {
	line := newTimeLine(
		fmt.Sprintf("Close prices - %s", board.Period),
		"Price (USD)",
	)
	line.SetXAxis([]string{})
	for _, e := range board.Companies {
		s, ok := board.Series[e.Ticker]
		if !ok {
			continue
		}
		line.AddSeries(entryLabel(e), lineData(s.Bars, func(b model.Bar) float64 { return b.Close }))
	}
	line.SetSeriesOptions(crisisMarkAreas(board.Crises)...)
	return line
}

// NormalizedLine draws every asset rebased to 100 at the window start.
func NormalizedLine(board *dashboard.Board) *charts.Line {
	line := newTimeLine(
		fmt.Sprintf("Normalized performance (start = 100) - %s", board.Period),
		"Normalized price",
	)
	line.SetXAxis([]string{})
	for _, e := range board.Assets {
		ns, ok := board.Normalized[e.Ticker]
		if !ok {
			continue
		}
		data := make([]opts.LineData, len(ns.Bars))
		for i, b := range ns.Bars {
			data[i] = opts.LineData{Value: []interface{}{b.Time.Format(dateLayout), b.NormalizedClose}}
		}
		line.AddSeries(entryLabel(e), data)
	}
	line.SetSeriesOptions(crisisMarkAreas(board.Crises)...)
	return line
}

// VolumeLine draws daily traded volume for every company on the board.
func VolumeLine(board *dashboard.Board) *charts.Line {
	line := newTimeLine(
		fmt.Sprintf("Trading volume - %s", board.Period),
		"Volume",
	)
	line.SetXAxis([]string{})
	for _, e := range board.Companies {
		s, ok := board.Series[e.Ticker]
		if !ok {
			continue
		}
		line.AddSeries(entryLabel(e), lineData(s.Bars, func(b model.Bar) float64 { return b.Volume }))
	}
	line.SetSeriesOptions(crisisMarkAreas(board.Crises)...)
	return line
}

// Candlestick draws one symbol's OHLC bars with crisis windows shaded.
func Candlestick(name string, s model.Series, crises []model.CrisisWindow) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s candlestick", name)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price (USD)", Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
	)

	dates := make([]string, len(s.Bars))
	data := make([]opts.KlineData, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Time.Format(dateLayout)
		// echarts kline order: open, close, low, high
		data[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}
	kline.SetXAxis(dates).AddSeries(name, data)
	kline.SetSeriesOptions(categoryMarkAreas(s, crises)...)
	return kline
}

// categoryMarkAreas clamps crisis window bounds to trading days present in
// the series, since a category axis cannot place coordinates between bars.
func categoryMarkAreas(s model.Series, crises []model.CrisisWindow) []charts.SeriesOpts {
	var items []opts.MarkAreaNameCoordItem
	for _, w := range crises {
		var first, last string
		for _, b := range s.Bars {
			if b.Time.Before(w.Start) || b.Time.After(w.End) {
				continue
			}
			d := b.Time.Format(dateLayout)
			if first == "" {
				first = d
			}
			last = d
		}
		if first == "" {
			continue // no trading days inside the window
		}
		items = append(items, opts.MarkAreaNameCoordItem{
			Name:        w.Name,
			Coordinate0: []interface{}{first},
			Coordinate1: []interface{}{last},
		})
	}
	if len(items) == 0 {
		return nil
	}
	return []charts.SeriesOpts{markAreaStyle(), charts.WithMarkAreaNameCoordItemOpts(items...)}
}
