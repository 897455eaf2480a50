package marketdata

import "AssetSentinel/internal/model"

// MockFetcher returns fixed reference values for development, testing, and
// as the last-resort fallback when no live source is reachable.
type MockFetcher struct {
	Rates      map[string]float64
	Indices    map[string]model.IndexQuote
	BondYields map[string]float64
	Err        error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRates() (map[string]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Rates != nil {
		return m.Rates, nil
	}
	return map[string]float64{
		"sora_rate":        0.035,
		"3m_treasury":      0.034,
		"6m_treasury":      0.036,
		"12m_treasury":     0.038,
		"fd_rates_average": 0.031,
	}, nil
}

func (m *MockFetcher) FetchIndices() (map[string]model.IndexQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Indices != nil {
		return m.Indices, nil
	}
	return map[string]model.IndexQuote{
		"STI":          {Current: 3250.0, OneYearRet: 0.085, Volatility: 0.18},
		"MSCI_World":   {Current: 2890.0, OneYearRet: 0.12, Volatility: 0.16},
		"MSCI_Asia":    {Current: 690.0, OneYearRet: 0.095, Volatility: 0.19},
		"Global_Bonds": {Current: 485.0, OneYearRet: 0.025, Volatility: 0.065},
	}, nil
}

func (m *MockFetcher) FetchBondYields() (map[string]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.BondYields != nil {
		return m.BondYields, nil
	}
	return map[string]float64{
		"2y_sgs":  0.032,
		"5y_sgs":  0.035,
		"10y_sgs": 0.039,
		"20y_sgs": 0.041,
	}, nil
}
