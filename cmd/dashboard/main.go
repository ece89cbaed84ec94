package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketAtlas/internal/cache"
	"MarketAtlas/internal/collector"
	"MarketAtlas/internal/config"
	"MarketAtlas/internal/dashboard"
	"MarketAtlas/internal/scheduler"
	"MarketAtlas/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketAtlas starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init fetch cache
	var seriesCache cache.Cache
	if cfg.Cache.SQLitePath != "" {
		sc, err := cache.NewSQLiteCache(cfg.Cache.SQLitePath, cfg.CacheTTL())
		if err != nil {
			log.Printf("[WARN] init sqlite cache failed, using memory cache: %v", err)
			seriesCache = cache.NewMemoryCache(cfg.CacheTTL())
		} else {
			seriesCache = sc
			defer sc.Close()
		}
	} else {
		seriesCache = cache.NewMemoryCache(cfg.CacheTTL())
	}

	col := collector.New(fetcher, seriesCache)

	// Init board builder from the configured catalogues
	crises, err := cfg.CrisisCatalogue()
	if err != nil {
		log.Fatalf("[FATAL] crisis catalogue: %v", err)
	}
	builder := dashboard.NewBuilder(col, toEntries(cfg.Companies), toEntries(cfg.Assets), crises)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional cron refresh keeping the cache warm
	if cfg.Refresh.Cron != "" {
		sched := scheduler.NewScheduler(ctx, col, cfg.Tickers(), []string{cfg.DefaultPeriod})
		if err := sched.Register(cfg.Refresh.Cron); err != nil {
			log.Fatalf("[FATAL] register refresh task: %v", err)
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, warming cache now")
			go sched.RunNow()
		}
	}

	// HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(builder, cfg.DefaultPeriod).Handler(),
	}
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] MarketAtlas is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] MarketAtlas stopped")
}

func toEntries(entries []config.SymbolEntry) []dashboard.Entry {
	out := make([]dashboard.Entry, len(entries))
	for i, e := range entries {
		out[i] = dashboard.Entry{Name: e.Name, Ticker: e.Ticker}
	}
	return out
}
