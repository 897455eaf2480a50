package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"AssetSentinel/internal/marketdata"
	"AssetSentinel/internal/recorder"
)

// Scheduler manages the background cron tasks: the daily reference-data
// refresh and the weekly cache cleanup.
type Scheduler struct {
	Cron     *cron.Cron
	Market   *marketdata.Manager
	Recorder recorder.Recorder
}

// New creates a Scheduler.
func New(market *marketdata.Manager, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Market:   market,
		Recorder: rec,
	}
}

// RegisterAll registers the refresh and cleanup tasks.
func (s *Scheduler) RegisterAll(refreshCron, cleanupCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(cleanupCron, s.cleanupTask); err != nil {
		return fmt.Errorf("register cleanup task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger / startup warm-up).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Info().Msg("running market data refresh")
	snap, err := s.Market.Refresh()
	if err != nil {
		log.Error().Err(err).Msg("market refresh failed")
		return
	}

	if err := s.Recorder.RecordMarketRefresh(&recorder.MarketRefreshEvent{
		Source:    snap.Source,
		SoraRate:  snap.Rates["sora_rate"],
		FetchedAt: snap.FetchedAt,
	}); err != nil {
		log.Error().Err(err).Msg("record market refresh")
	}
}

func (s *Scheduler) cleanupTask() {
	log.Info().Msg("running market cache cleanup")
	s.Market.Cleanup()
}
