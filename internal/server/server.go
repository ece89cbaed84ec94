package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"MarketAtlas/internal/calculator"
	"MarketAtlas/internal/chart"
	"MarketAtlas/internal/collector"
	"MarketAtlas/internal/dashboard"
)

// Server serves the dashboard HTTP API and chart pages.
type Server struct {
	Builder       *dashboard.Builder
	DefaultPeriod string
}

// New creates a new dashboard server.
func New(builder *dashboard.Builder, defaultPeriod string) *Server {
	return &Server{Builder: builder, DefaultPeriod: defaultPeriod}
}

// RegisterRoutes registers all routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/board", s.handleBoard)
	mux.HandleFunc("GET /api/series/{symbol}", s.handleSeries)
	mux.HandleFunc("GET /api/crises", s.handleCrises)
	mux.HandleFunc("GET /charts/prices", s.handlePriceChart)
	mux.HandleFunc("GET /charts/normalized", s.handleNormalizedChart)
	mux.HandleFunc("GET /charts/volume", s.handleVolumeChart)
	mux.HandleFunc("GET /charts/candlestick/{symbol}", s.handleCandlestick)
	mux.HandleFunc("GET /{$}", s.handleIndex)
}

// Handler returns the fully-routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// period returns the requested lookback code, falling back to the default
// when the query parameter is absent.
func (s *Server) period(r *http.Request) string {
	if p := r.URL.Query().Get("period"); p != "" {
		return p
	}
	return s.DefaultPeriod
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// knownTicker reports whether the symbol is in the configured catalogue, so
// the API does not proxy arbitrary tickers to the upstream source.
func (s *Server) knownTicker(symbol string) bool {
	for _, e := range s.Builder.Entries() {
		if e.Ticker == symbol {
			return true
		}
	}
	return false
}

func (s *Server) buildBoard(w http.ResponseWriter, r *http.Request) (*dashboard.Board, bool) {
	board, err := s.Builder.Build(r.Context(), s.period(r))
	if err != nil {
		if errors.Is(err, calculator.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, err)
		} else {
			writeError(w, http.StatusBadGateway, err)
		}
		return nil, false
	}
	return board, true
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	board, ok := s.buildBoard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toBoardJSON(board))
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !s.knownTicker(symbol) {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown symbol %q", symbol))
		return
	}

	series, err := s.Builder.Collector.Series(r.Context(), symbol, s.period(r))
	switch {
	case errors.Is(err, calculator.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, collector.ErrNoData):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, SeriesJSON{Symbol: symbol, Bars: toBarsJSON(series.Bars)})
}

func (s *Server) handleCrises(w http.ResponseWriter, r *http.Request) {
	// Default to the default period's window when no explicit range given.
	start, end, err := calculator.ResolveLookback(s.DefaultPeriod, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if v := r.URL.Query().Get("start"); v != "" {
		if start, err = time.Parse(dateLayout, v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parse start: %w", err))
			return
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if end, err = time.Parse(dateLayout, v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parse end: %w", err))
			return
		}
	}

	overlaps := calculator.OverlappingWindows(s.Builder.Crises, start, end)
	writeJSON(w, http.StatusOK, toCrisesJSON(overlaps))
}

func (s *Server) handlePriceChart(w http.ResponseWriter, r *http.Request) {
	board, ok := s.buildBoard(w, r)
	if !ok {
		return
	}
	if err := chart.PriceLine(board).Render(w); err != nil {
		log.Printf("[ERROR] render price chart: %v", err)
	}
}

func (s *Server) handleNormalizedChart(w http.ResponseWriter, r *http.Request) {
	board, ok := s.buildBoard(w, r)
	if !ok {
		return
	}
	if err := chart.NormalizedLine(board).Render(w); err != nil {
		log.Printf("[ERROR] render normalized chart: %v", err)
	}
}

func (s *Server) handleVolumeChart(w http.ResponseWriter, r *http.Request) {
	board, ok := s.buildBoard(w, r)
	if !ok {
		return
	}
	if err := chart.VolumeLine(board).Render(w); err != nil {
		log.Printf("[ERROR] render volume chart: %v", err)
	}
}

func (s *Server) handleCandlestick(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !s.knownTicker(symbol) {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown symbol %q", symbol))
		return
	}
	board, ok := s.buildBoard(w, r)
	if !ok {
		return
	}
	series, found := board.Series[symbol]
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("no data for %q", symbol))
		return
	}

	name := symbol
	for _, e := range s.Builder.Entries() {
		if e.Ticker == symbol {
			name = e.Name
			break
		}
	}
	if err := chart.Candlestick(name, series, board.Crises).Render(w); err != nil {
		log.Printf("[ERROR] render candlestick: %v", err)
	}
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>MarketAtlas</title></head>
<body>
<h1>MarketAtlas</h1>
<p>Period: {{.Period}} (append ?period={{.PeriodCodes}} to any link)</p>
<ul>
  <li><a href="/charts/prices?period={{.Period}}">Close prices</a></li>
  <li><a href="/charts/normalized?period={{.Period}}">Normalized performance (start = 100)</a></li>
  <li><a href="/charts/volume?period={{.Period}}">Trading volume</a></li>
</ul>
<h2>Candlesticks</h2>
<ul>
{{range .Entries}}  <li><a href="/charts/candlestick/{{.Ticker}}?period={{$.Period}}">{{.Name}} ({{.Ticker}})</a></li>
{{end}}</ul>
<h2>API</h2>
<ul>
  <li><a href="/api/board?period={{.Period}}">/api/board</a></li>
  <li><a href="/api/crises">/api/crises</a></li>
</ul>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	period := s.period(r)
	if !calculator.ValidPeriod(period) {
		period = s.DefaultPeriod
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTmpl.Execute(w, struct {
		Period      string
		PeriodCodes string
		Entries     []dashboard.Entry
	}{
		Period:      period,
		PeriodCodes: strings.Join(calculator.Periods, "|"),
		Entries:     s.Builder.Entries(),
	})
	if err != nil {
		log.Printf("[ERROR] render index: %v", err)
	}
}
