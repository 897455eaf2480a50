package risk

import "AssetSentinel/internal/model"

// Presets are the built-in stress scenarios offered by the dashboard.
// Values mirror the scenarios the committee signed off on; custom slider
// runs construct their own StressParameters instead.
var Presets = map[string]model.StressParameters{
	"Conservative": {
		InterestRateShock:      -0.005,
		InflationSpike:         0.04,
		MultiAssetDrawdown:     -0.15,
		RedemptionFreezeDays:   5,
		EarlyWithdrawalPenalty: -0.005,
		CounterpartyShock:      0.0,
	},
	"Moderate Stress": {
		InterestRateShock:      -0.015,
		InflationSpike:         0.06,
		MultiAssetDrawdown:     -0.25,
		RedemptionFreezeDays:   15,
		EarlyWithdrawalPenalty: -0.015,
		CounterpartyShock:      0.0,
	},
	"Severe Crisis": {
		InterestRateShock:      -0.02,
		InflationSpike:         0.08,
		MultiAssetDrawdown:     -0.40,
		RedemptionFreezeDays:   30,
		EarlyWithdrawalPenalty: -0.025,
		CounterpartyShock:      0.05,
	},
	"2008 Financial Crisis": {
		InterestRateShock:      -0.02,
		InflationSpike:         0.035,
		MultiAssetDrawdown:     -0.37,
		RedemptionFreezeDays:   21,
		EarlyWithdrawalPenalty: -0.02,
		CounterpartyShock:      0.02,
	},
	"COVID-19 Scenario": {
		InterestRateShock:      -0.015,
		InflationSpike:         0.02,
		MultiAssetDrawdown:     -0.33,
		RedemptionFreezeDays:   14,
		EarlyWithdrawalPenalty: -0.01,
		CounterpartyShock:      0.0,
	},
}

// Preset returns a named preset by value, so callers cannot mutate the table.
func Preset(name string) (model.StressParameters, bool) {
	p, ok := Presets[name]
	return p, ok
}

// PresetNames returns the preset names in a stable display order.
func PresetNames() []string {
	return []string{
		"Conservative",
		"Moderate Stress",
		"Severe Crisis",
		"2008 Financial Crisis",
		"COVID-19 Scenario",
	}
}
