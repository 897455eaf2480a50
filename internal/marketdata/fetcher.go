package marketdata

import "AssetSentinel/internal/model"

// Fetcher defines the interface for retrieving market reference data.
type Fetcher interface {
	FetchRates() (map[string]float64, error)
	FetchIndices() (map[string]model.IndexQuote, error)
	FetchBondYields() (map[string]float64, error)
	Name() string
}
