package model

import "github.com/shopspring/decimal"

// StressParameters holds one evaluation's shock set, either copied from a
// named preset or built from dashboard slider values. Fractions are signed:
// a -0.15 drawdown reduces affected holdings by 15%.
type StressParameters struct {
	InterestRateShock      float64 `json:"interest_rate_shock" yaml:"interest_rate_shock"`
	InflationSpike         float64 `json:"inflation_spike" yaml:"inflation_spike"`
	MultiAssetDrawdown     float64 `json:"multi_asset_drawdown" yaml:"multi_asset_drawdown"`
	RedemptionFreezeDays   int     `json:"redemption_freeze_days" yaml:"redemption_freeze_days"`
	EarlyWithdrawalPenalty float64 `json:"early_withdrawal_penalty" yaml:"early_withdrawal_penalty"`
	CounterpartyShock      float64 `json:"counterparty_risk_shock" yaml:"counterparty_risk_shock"`
}

// ClassBreakdown is the post-stress position of one asset class.
type ClassBreakdown struct {
	Amount     decimal.Decimal `json:"amount_sgd"`
	Percentage float64         `json:"percentage"`
	Count      int             `json:"count"`
}

// StressMetrics is the engine output for one evaluation. It is never mutated
// after creation; identical inputs produce identical metrics.
type StressMetrics struct {
	OriginalValue        decimal.Decimal              `json:"original_portfolio_value"`
	StressedValue        decimal.Decimal              `json:"stressed_portfolio_value"`
	MaxDrawdown          float64                      `json:"maximum_drawdown"`
	ReserveCoverageRatio float64                      `json:"reserve_coverage_ratio"`
	ReserveMonthsCovered float64                      `json:"reserve_months_covered"`
	TimeToLiquidityDays  float64                      `json:"time_to_liquidity_days"`
	VolatilityBreach     bool                         `json:"volatility_breach"`
	LiquidityBreach      bool                         `json:"liquidity_breach"`
	Allocation           map[AssetType]float64        `json:"post_stress_allocation"`
	Breakdown            map[AssetType]ClassBreakdown `json:"asset_breakdown"`
	Parameters           StressParameters             `json:"stress_parameters"`
}
