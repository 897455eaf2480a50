package risk

import "AssetSentinel/internal/model"

// Profile holds the static risk characteristics of one asset class.
// Volatility is informational (display ranges); it does not enter the
// stress arithmetic.
type Profile struct {
	Volatility              float64
	InterestRateSensitivity float64
	BaseLiquidityDays       int
	SubjectToDrawdown       bool
	EarlyWithdrawalEligible bool
}

// Profiles is the fixed per-class risk table. Time deposits carry zero rate
// sensitivity: their value is locked for the term, so rate moves do not
// reprice them before maturity.
var Profiles = map[model.AssetType]Profile{
	model.AssetCash: {
		Volatility:              0.001,
		InterestRateSensitivity: 0.5,
		BaseLiquidityDays:       0,
	},
	model.AssetTimeDeposit: {
		Volatility:              0.005,
		InterestRateSensitivity: 0.0,
		BaseLiquidityDays:       180,
		EarlyWithdrawalEligible: true,
	},
	model.AssetMoneyMarket: {
		Volatility:              0.02,
		InterestRateSensitivity: 0.9,
		BaseLiquidityDays:       2,
	},
	model.AssetBondFund: {
		Volatility:              0.08,
		InterestRateSensitivity: 1.2,
		BaseLiquidityDays:       5,
	},
	model.AssetMultiAsset: {
		Volatility:              0.15,
		InterestRateSensitivity: 0.3,
		BaseLiquidityDays:       30,
		SubjectToDrawdown:       true,
	},
}

// ProfileFor looks up the risk profile for an asset class.
func ProfileFor(t model.AssetType) (Profile, bool) {
	p, ok := Profiles[t]
	return p, ok
}
