package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"MarketAtlas/internal/calculator"
	"MarketAtlas/internal/model"
)

const dateLayout = "2006-01-02"

// SymbolEntry maps a display name to a ticker.
type SymbolEntry struct {
	Name   string `yaml:"name"`
	Ticker string `yaml:"ticker"`
}

// CrisisEntry is one crisis window as configured; dates use YYYY-MM-DD.
type CrisisEntry struct {
	Name        string `yaml:"name"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Description string `yaml:"description"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Cache struct {
		TTL        string `yaml:"ttl"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`
	Refresh struct {
		Cron string `yaml:"cron"`
	} `yaml:"refresh"`
	DefaultPeriod string        `yaml:"default_period"`
	Companies     []SymbolEntry `yaml:"companies"`
	Assets        []SymbolEntry `yaml:"assets"`
	CrisisWindows []CrisisEntry `yaml:"crisis_windows"`
	Proxy         string        `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file falls back to defaults entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		cfg.Cache.TTL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Refresh.Cron = v
	}
	if v := os.Getenv("DEFAULT_PERIOD"); v != "" {
		cfg.DefaultPeriod = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = "1h"
	}
	if cfg.DefaultPeriod == "" {
		cfg.DefaultPeriod = "3y"
	}
	if len(cfg.Companies) == 0 {
		cfg.Companies = defaultCompanies()
	}
	if len(cfg.Assets) == 0 {
		cfg.Assets = defaultAssets()
	}
	if len(cfg.CrisisWindows) == 0 {
		cfg.CrisisWindows = defaultCrisisWindows()
	}

	return cfg, nil
}

// defaultCompanies is the built-in largest-cap company catalogue.
func defaultCompanies() []SymbolEntry {
	return []SymbolEntry{
		{Name: "Apple", Ticker: "AAPL"},
		{Name: "Microsoft", Ticker: "MSFT"},
		{Name: "Alphabet", Ticker: "GOOGL"},
		{Name: "Amazon", Ticker: "AMZN"},
		{Name: "NVIDIA", Ticker: "NVDA"},
		{Name: "Meta", Ticker: "META"},
		{Name: "Berkshire Hathaway", Ticker: "BRK-B"},
		{Name: "Taiwan Semiconductor", Ticker: "TSM"},
		{Name: "Tesla", Ticker: "TSLA"},
		{Name: "Broadcom", Ticker: "AVGO"},
	}
}

// defaultAssets is the all-weather portfolio asset-class catalogue.
func defaultAssets() []SymbolEntry {
	return []SymbolEntry{
		{Name: "S&P 500 (stocks)", Ticker: "SPY"},
		{Name: "Long-term treasuries (20y+)", Ticker: "TLT"},
		{Name: "Intermediate treasuries (7-10y)", Ticker: "IEF"},
		{Name: "Gold", Ticker: "GLD"},
		{Name: "Commodities", Ticker: "DBC"},
	}
}

// defaultCrisisWindows is the built-in market-stress catalogue.
func defaultCrisisWindows() []CrisisEntry {
	return []CrisisEntry{
		{
			Name:        "COVID-19 pandemic shock",
			Start:       "2020-02-19",
			End:         "2020-04-01",
			Description: "Sharp drawdown at the onset of the COVID-19 pandemic",
		},
		{
			Name:        "2022 inflation / rate hikes",
			Start:       "2022-01-01",
			End:         "2022-12-31",
			Description: "Market decline driven by inflation and rising rates",
		},
		{
			Name:        "Silicon Valley Bank collapse",
			Start:       "2023-03-08",
			End:         "2023-03-20",
			Description: "Financial-sector stress following the SVB failure",
		},
	}
}

// CacheTTL returns the parsed cache TTL. Validate guarantees the field
// parses; the fallback covers zero-value configs built in tests.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// CrisisCatalogue parses the configured crisis windows into model values,
// preserving configuration order.
func (c *Config) CrisisCatalogue() ([]model.CrisisWindow, error) {
	out := make([]model.CrisisWindow, 0, len(c.CrisisWindows))
	for _, e := range c.CrisisWindows {
		start, err := time.Parse(dateLayout, e.Start)
		if err != nil {
			return nil, fmt.Errorf("crisis window %q: parse start: %w", e.Name, err)
		}
		end, err := time.Parse(dateLayout, e.End)
		if err != nil {
			return nil, fmt.Errorf("crisis window %q: parse end: %w", e.Name, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("crisis window %q: end before start", e.Name)
		}
		out = append(out, model.CrisisWindow{
			Name:        e.Name,
			Start:       start,
			End:         end,
			Description: e.Description,
		})
	}
	return out, nil
}

// Tickers returns every configured ticker, companies first.
func (c *Config) Tickers() []string {
	out := make([]string, 0, len(c.Companies)+len(c.Assets))
	for _, e := range c.Companies {
		out = append(out, e.Ticker)
	}
	for _, e := range c.Assets {
		out = append(out, e.Ticker)
	}
	return out
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if !calculator.ValidPeriod(c.DefaultPeriod) {
		return fmt.Errorf("default_period %q is not a supported lookback code", c.DefaultPeriod)
	}
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	if len(c.Companies) == 0 && len(c.Assets) == 0 {
		return fmt.Errorf("at least one company or asset must be configured")
	}
	if _, err := c.CrisisCatalogue(); err != nil {
		return err
	}
	return nil
}
