package model

import "github.com/shopspring/decimal"

// AssetHolding is one portfolio line item. Amounts are SGD.
type AssetHolding struct {
	Type          AssetType       `json:"asset_type"`
	Amount        decimal.Decimal `json:"amount_sgd"`
	FundName      string          `json:"fund_name"`
	LiquidityDays int             `json:"liquidity_period_days"`
	Notes         string          `json:"notes,omitempty"`
}

// PortfolioValue sums the amounts of all holdings.
func PortfolioValue(holdings []AssetHolding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.Amount)
	}
	return total
}
