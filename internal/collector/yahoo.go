package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"MarketAtlas/internal/calculator"
	"MarketAtlas/internal/model"
)

// yahooRanges maps each lookback code to the smallest Yahoo chart range that
// covers it. Yahoo has no 3y range, so 3y fetches 5y and trims afterwards.
var yahooRanges = map[string]string{
	"1y":  "1y",
	"2y":  "2y",
	"3y":  "5y",
	"5y":  "5y",
	"10y": "10y",
}

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	client    *resty.Client
	SymbolMap map[string]string // maps catalogue tickers to Yahoo tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	client := resty.New().
		SetBaseURL("https://query1.finance.yahoo.com").
		SetTimeout(30 * time.Second).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "Mozilla/5.0",
		})
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		client: client,
		SymbolMap: map[string]string{
			"BRK.B": "BRK-B",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooQuote is the response structure from the Yahoo Finance quote API.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			LongName           string  `json:"longName"`
			ShortName          string  `json:"shortName"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
			MarketCap          float64 `json:"marketCap"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// FetchSeries fetches daily bars for the given lookback code and trims them
// to the resolved window. An unrecognized code propagates the calculator's
// period error; an empty upstream result maps to ErrNoData.
func (f *YahooFetcher) FetchSeries(ctx context.Context, symbol, period string) (model.Series, error) {
	start, _, err := calculator.ResolveLookback(period, time.Now())
	if err != nil {
		return model.Series{}, err
	}

	var chart yahooChart
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    yahooRanges[period],
		}).
		SetResult(&chart).
		Get("/v8/finance/chart/" + f.yahooSymbol(symbol))
	if err != nil {
		return model.Series{}, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return model.Series{}, fmt.Errorf("yahoo fetch %s: status %d", symbol, resp.StatusCode())
	}
	if chart.Chart.Error != nil {
		return model.Series{}, fmt.Errorf("%w: %s: %s", ErrNoData, symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return model.Series{}, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		o, h, l, c := quote.Open[i], quote.High[i], quote.Low[i], quote.Close[i]
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: quote.Volume[i],
		})
	}
	if len(bars) == 0 {
		return model.Series{}, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	// Trim bars older than the resolved window (3y rides on the 5y range).
	first := 0
	for first < len(bars) && bars[first].Time.Before(start) {
		first++
	}
	bars = bars[first:]

	return model.Series{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

// FetchQuote fetches current price, name, and market cap for one symbol.
func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	var q yahooQuote
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("symbols", f.yahooSymbol(symbol)).
		SetResult(&q).
		Get("/v7/finance/quote")
	if err != nil {
		return model.Quote{}, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return model.Quote{}, fmt.Errorf("yahoo quote %s: status %d", symbol, resp.StatusCode())
	}
	if q.QuoteResponse.Error != nil || len(q.QuoteResponse.Result) == 0 {
		return model.Quote{}, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	r := q.QuoteResponse.Result[0]
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	return model.Quote{
		Symbol:    symbol,
		Name:      name,
		Price:     r.RegularMarketPrice,
		MarketCap: r.MarketCap,
	}, nil
}
