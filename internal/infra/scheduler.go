package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"marketmind/internal/usecase"
)

const warmupTimeout = 2 * time.Minute

// Scheduler periodically warms the analysis cache for the configured
// watchlist so interactive requests mostly hit fresh records.
type Scheduler struct {
	cron      *cron.Cron
	analysis  *usecase.AnalysisService
	watchlist []string
}

// NewScheduler creates a new scheduler
func NewScheduler(analysis *usecase.AnalysisService, watchlist []string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		analysis:  analysis,
		watchlist: watchlist,
	}
}

// Start registers the watchlist warmup job. The interval sits inside the
// shortest analysis TTL so the signal cache never fully cools between runs.
func (s *Scheduler) Start() error {
	if len(s.watchlist) == 0 {
		log.Println("[WARN] Watchlist empty, cache warmup disabled")
		return nil
	}

	_, err := s.cron.AddFunc("*/10 * * * *", s.warmWatchlist)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[OK] Scheduler started, warming %v every 10m", s.watchlist)
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cron.Stop()
	log.Println("[OK] Scheduler stopped")
}

func (s *Scheduler) warmWatchlist() {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()

	for _, symbol := range s.watchlist {
		if _, err := s.analysis.AnalyzeComprehensive(ctx, symbol); err != nil {
			log.Printf("[WARN] Cache warmup failed for %s: %v", symbol, err)
			continue
		}
		log.Printf("[CRON] Warmed analysis cache for %s", symbol)
	}
}
