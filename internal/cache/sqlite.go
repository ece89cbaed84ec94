package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketAtlas/internal/model"
)

// SQLiteCache persists fetched series to a SQLite database so the cache
// survives restarts. Entries expire after the configured TTL, checked on
// read; expired rows are overwritten by the next Set.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.Mutex
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite series cache opened: %s", dbPath)
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS series_cache (
		cache_key  TEXT PRIMARY KEY,
		symbol     TEXT NOT NULL,
		period     TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		bars       TEXT NOT NULL
	)`)
	return err
}

func (c *SQLiteCache) Get(symbol, period string) (model.Series, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fetchedAt int64
	var barsJSON string
	err := c.db.QueryRow(
		`SELECT fetched_at, bars FROM series_cache WHERE cache_key = ?`,
		Key(symbol, period),
	).Scan(&fetchedAt, &barsJSON)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[WARN] sqlite cache read %s: %v", Key(symbol, period), err)
		}
		return model.Series{}, false
	}

	fetched := time.Unix(fetchedAt, 0)
	if time.Since(fetched) > c.ttl {
		return model.Series{}, false
	}

	var bars []model.Bar
	if err := json.Unmarshal([]byte(barsJSON), &bars); err != nil {
		log.Printf("[WARN] sqlite cache decode %s: %v", Key(symbol, period), err)
		return model.Series{}, false
	}
	return model.Series{Symbol: symbol, Bars: bars, FetchedAt: fetched}, true
}

func (c *SQLiteCache) Set(symbol, period string, s model.Series) {
	c.mu.Lock()
	defer c.mu.Unlock()

	barsJSON, err := json.Marshal(s.Bars)
	if err != nil {
		log.Printf("[WARN] sqlite cache encode %s: %v", Key(symbol, period), err)
		return
	}
	fetched := s.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}
	if _, err := c.db.Exec(
		`INSERT OR REPLACE INTO series_cache (cache_key, symbol, period, fetched_at, bars)
		 VALUES (?,?,?,?,?)`,
		Key(symbol, period), symbol, period, fetched.Unix(), string(barsJSON),
	); err != nil {
		log.Printf("[WARN] sqlite cache write %s: %v", Key(symbol, period), err)
	}
}

func (c *SQLiteCache) Close() error {
	log.Println("[INFO] closing sqlite series cache")
	return c.db.Close()
}
