package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssetSentinel/internal/model"
)

func TestCompareScenarios_AllPresets(t *testing.T) {
	results, err := CompareScenarios(samplePortfolio(), Presets, DefaultAssumptions())
	require.NoError(t, err)
	require.Len(t, results, len(Presets))

	for name := range Presets {
		require.Contains(t, results, name)
	}

	// Severity ordering: the severe preset must not end up better off than
	// the conservative one.
	conservative := results["Conservative"]
	severe := results["Severe Crisis"]
	assert.Greater(t, severe.MaxDrawdown, conservative.MaxDrawdown)
	assert.Less(t, severe.ReserveCoverageRatio, conservative.ReserveCoverageRatio)
}

func TestCompareScenarios_MatchesIndividualEvaluation(t *testing.T) {
	params, _ := Preset("COVID-19 Scenario")
	single, err := Evaluate(samplePortfolio(), params, DefaultAssumptions())
	require.NoError(t, err)

	batch, err := CompareScenarios(samplePortfolio(), map[string]model.StressParameters{"covid": params}, DefaultAssumptions())
	require.NoError(t, err)

	require.Equal(t, single, batch["covid"])
}

func TestCompareScenarios_PropagatesInvalidInput(t *testing.T) {
	bad := []model.AssetHolding{{Type: model.AssetCash, Amount: decimal.NewFromInt(-5)}}
	_, err := CompareScenarios(bad, map[string]model.StressParameters{"any": {}}, DefaultAssumptions())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestInsights(t *testing.T) {
	assume := DefaultAssumptions()

	t.Run("resilient portfolio", func(t *testing.T) {
		params, _ := Preset("Conservative")
		metrics, err := Evaluate(samplePortfolio(), params, assume)
		require.NoError(t, err)

		insights := Insights(metrics, assume)
		assert.Contains(t, insights, "Portfolio demonstrates resilience under current stress scenario")
	})

	t.Run("breach and shortfall", func(t *testing.T) {
		holdings := []model.AssetHolding{
			{Type: model.AssetMultiAsset, Amount: decimal.NewFromInt(2_000_000), FundName: "Equity Fund", LiquidityDays: 30},
		}
		metrics, err := Evaluate(holdings, model.StressParameters{MultiAssetDrawdown: -0.45}, assume)
		require.NoError(t, err)

		insights := Insights(metrics, assume)
		require.NotEmpty(t, insights)
		assert.Contains(t, insights[0], "Reserve shortfall")

		var sawBreach, sawConcentration bool
		for _, s := range insights {
			if len(s) >= 4 && s[:4] == "High" {
				switch {
				case s[5] == 'v':
					sawBreach = true
				case s[5] == 'c':
					sawConcentration = true
				}
			}
		}
		assert.True(t, sawBreach, "expected a volatility breach insight: %v", insights)
		assert.True(t, sawConcentration, "expected a concentration insight: %v", insights)
	})
}
