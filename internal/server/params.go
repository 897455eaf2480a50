package server

import "AssetSentinel/internal/model"

// paramRange bounds one dashboard slider.
type paramRange struct {
	Min, Max float64
}

// sliderRanges are the committee-approved bounds for custom scenarios.
// Preset scenarios all fall inside these.
var sliderRanges = map[string]paramRange{
	"interest_rate_shock":      {-0.02, 0.02},
	"inflation_spike":          {0.02, 0.08},
	"multi_asset_drawdown":     {-0.50, -0.10},
	"redemption_freeze_days":   {0, 30},
	"early_withdrawal_penalty": {-0.03, 0.0},
	"counterparty_risk_shock":  {0.0, 1.0},
}

func clamp(v float64, r paramRange) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// clampParameters forces custom slider values into their allowed ranges.
// A zero drawdown is left alone so "no shock" runs stay a true identity.
func clampParameters(p model.StressParameters) model.StressParameters {
	p.InterestRateShock = clamp(p.InterestRateShock, sliderRanges["interest_rate_shock"])
	if p.InflationSpike != 0 {
		p.InflationSpike = clamp(p.InflationSpike, sliderRanges["inflation_spike"])
	}
	if p.MultiAssetDrawdown != 0 {
		p.MultiAssetDrawdown = clamp(p.MultiAssetDrawdown, sliderRanges["multi_asset_drawdown"])
	}
	p.RedemptionFreezeDays = int(clamp(float64(p.RedemptionFreezeDays), sliderRanges["redemption_freeze_days"]))
	p.EarlyWithdrawalPenalty = clamp(p.EarlyWithdrawalPenalty, sliderRanges["early_withdrawal_penalty"])
	p.CounterpartyShock = clamp(p.CounterpartyShock, sliderRanges["counterparty_risk_shock"])
	return p
}
