package model

import "time"

// IndexQuote is a market index observation used as an asset-class proxy.
type IndexQuote struct {
	Current    float64 `json:"current"`
	OneYearRet float64 `json:"1y_return"`
	Volatility float64 `json:"volatility"`
}

// MarketSnapshot is the read-only reference-data surface consumed by the
// dashboard and reports. The stress engine never depends on it.
type MarketSnapshot struct {
	Rates      map[string]float64    `json:"singapore_rates"`
	Indices    map[string]IndexQuote `json:"market_indices"`
	BondYields map[string]float64    `json:"bond_yields"`
	Source     string                `json:"data_source"`
	FetchedAt  time.Time             `json:"last_updated"`
}
