package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"MarketAtlas/internal/collector"
)

// Scheduler periodically re-fetches the catalogue so board builds keep
// hitting a warm cache instead of the upstream API.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Symbols   []string
	Periods   []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler covering the given symbols and
// lookback codes.
func NewScheduler(ctx context.Context, col *collector.Collector, symbols, periods []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Symbols:   symbols,
		Periods:   periods,
		Ctx:       ctx,
	}
}

// Register registers the refresh task with the given cron expression.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running cache refresh")
	for _, period := range s.Periods {
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO] cache refresh cancelled")
			return
		default:
		}
		s.Collector.Warm(s.Ctx, s.Symbols, period)
	}
	log.Println("[INFO] cache refresh done")
}
