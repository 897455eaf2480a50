package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssetSentinel/internal/model"
	"AssetSentinel/internal/risk"
)

func sampleMetrics() *model.StressMetrics {
	return &model.StressMetrics{
		OriginalValue:        decimal.NewFromInt(3_400_000),
		StressedValue:        decimal.NewFromFloat(3_186_828.75),
		MaxDrawdown:          0.0627,
		ReserveCoverageRatio: 1.3278,
		ReserveMonthsCovered: 15.9,
		TimeToLiquidityDays:  49.4,
		Allocation: map[model.AssetType]float64{
			model.AssetCash:        0.0628,
			model.AssetMoneyMarket: 0.3087,
			model.AssetBondFund:    0.1076,
			model.AssetMultiAsset:  0.1131,
			model.AssetTimeDeposit: 0.4079,
		},
		Breakdown: map[model.AssetType]model.ClassBreakdown{
			model.AssetCash:        {Amount: decimal.NewFromInt(200_000), Percentage: 6.28, Count: 1},
			model.AssetMoneyMarket: {Amount: decimal.NewFromInt(983_750), Percentage: 30.87, Count: 2},
			model.AssetBondFund:    {Amount: decimal.NewFromFloat(342_781.25), Percentage: 10.76, Count: 1},
			model.AssetMultiAsset:  {Amount: decimal.NewFromFloat(360_297.5), Percentage: 11.31, Count: 1},
			model.AssetTimeDeposit: {Amount: decimal.NewFromInt(1_300_000), Percentage: 40.79, Count: 2},
		},
		Parameters: model.StressParameters{
			InterestRateShock:    -0.015,
			MultiAssetDrawdown:   -0.33,
			RedemptionFreezeDays: 14,
		},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "CPC_StressTest_2025-03-14_09-26.pdf", Filename("CPC", now))
}

func TestSGDFormatting(t *testing.T) {
	assert.Equal(t, "S$3,400,000", SGD(decimal.NewFromInt(3_400_000)))
	assert.Equal(t, "S$1,234.56", SGD(decimal.NewFromFloat(1234.56)))
}

func TestGenerate_ProducesPDF(t *testing.T) {
	g := NewGenerator("CPC Investment Portfolio - Stress Test Analysis")
	m := sampleMetrics()
	insights := risk.Insights(m, risk.DefaultAssumptions())

	pdf, err := g.Generate(m, insights, risk.DefaultAssumptions(), time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerate_WipedPortfolio(t *testing.T) {
	m := sampleMetrics()
	m.StressedValue = decimal.Zero
	m.Allocation = map[model.AssetType]float64{}
	m.Breakdown = map[model.AssetType]model.ClassBreakdown{}
	m.MaxDrawdown = 1.0
	m.ReserveCoverageRatio = 0

	g := NewGenerator("Stress Test")
	pdf, err := g.Generate(m, nil, risk.DefaultAssumptions(), time.Now())
	require.NoError(t, err, "missing chart data should not fail report generation")
	assert.NotEmpty(t, pdf)
}

func TestRenderAllocationChart(t *testing.T) {
	png, err := RenderAllocationChart(sampleMetrics().Allocation)
	require.NoError(t, err)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = RenderAllocationChart(nil)
	assert.Error(t, err)
}
