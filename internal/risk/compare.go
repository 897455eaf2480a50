package risk

import (
	"fmt"

	"AssetSentinel/internal/model"
)

// CompareScenarios evaluates each named parameter set against the same
// portfolio. Scenarios are fully independent point evaluations; no state is
// shared between them. The returned map preserves the input scenario names.
func CompareScenarios(holdings []model.AssetHolding, scenarios map[string]model.StressParameters, assume Assumptions) (map[string]*model.StressMetrics, error) {
	results := make(map[string]*model.StressMetrics, len(scenarios))
	for name, params := range scenarios {
		metrics, err := Evaluate(holdings, params, assume)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		results[name] = metrics
	}
	return results, nil
}
