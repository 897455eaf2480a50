package recorder

import (
	"time"

	"AssetSentinel/internal/model"
)

// EvaluationRecord is one stress evaluation as persisted for the dashboard
// history panel and audit trail.
type EvaluationRecord struct {
	ID            string                 `json:"id"`
	Scenario      string                 `json:"scenario"`
	Parameters    model.StressParameters `json:"parameters"`
	OriginalValue string                 `json:"original_portfolio_value"`
	StressedValue string                 `json:"stressed_portfolio_value"`
	MaxDrawdown   float64                `json:"maximum_drawdown"`
	Coverage      float64                `json:"reserve_coverage_ratio"`
	LiquidityDays float64                `json:"time_to_liquidity_days"`
	VolBreach     bool                   `json:"volatility_breach"`
	LiqBreach     bool                   `json:"liquidity_breach"`
	CreatedAt     time.Time              `json:"created_at"`
}

// MarketRefreshEvent records one reference-data refresh.
type MarketRefreshEvent struct {
	Source    string    `json:"source"`
	SoraRate  float64   `json:"sora_rate"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Recorder persists evaluation history.
type Recorder interface {
	RecordEvaluation(rec *EvaluationRecord) error
	RecordMarketRefresh(evt *MarketRefreshEvent) error
	RecentEvaluations(limit int) ([]EvaluationRecord, error)
	Close() error
}
