package risk

import (
	"fmt"
	"sort"

	"AssetSentinel/internal/model"
)

// concentrationLimit flags any single class holding more than half the
// post-stress portfolio.
const concentrationLimit = 50.0

// Insights turns one metrics record into the short actionable statements
// shown on the dashboard and in the report's recommendations section.
func Insights(metrics *model.StressMetrics, assume Assumptions) []string {
	var out []string

	months := float64(assume.ReserveMonths)
	switch {
	case metrics.ReserveCoverageRatio < 1.0:
		shortfall := (1.0 - metrics.ReserveCoverageRatio) * months
		out = append(out, fmt.Sprintf("Reserve shortfall: %.1f months below requirement under stress", shortfall))
	case metrics.ReserveCoverageRatio > 1.5:
		excess := (metrics.ReserveCoverageRatio - 1.0) * months
		out = append(out, fmt.Sprintf("Strong reserve position: %.1f months above requirement", excess))
	}

	if metrics.VolatilityBreach {
		out = append(out, fmt.Sprintf("High volatility risk: %.1f%% portfolio decline exceeds %.0f%% threshold",
			metrics.MaxDrawdown*100, assume.DrawdownBreachLimit*100))
	}
	if metrics.LiquidityBreach {
		out = append(out, fmt.Sprintf("Liquidity concern: %.0f days to access funds exceeds %.0f day threshold",
			metrics.TimeToLiquidityDays, assume.LiquidityBreachDays))
	}

	// Stable iteration so repeated runs emit insights in the same order.
	types := make([]model.AssetType, 0, len(metrics.Breakdown))
	for t := range metrics.Breakdown {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		if b := metrics.Breakdown[t]; b.Percentage > concentrationLimit {
			out = append(out, fmt.Sprintf("High concentration: %.1f%% in %s", b.Percentage, t.DisplayName()))
		}
	}

	if !metrics.VolatilityBreach && !metrics.LiquidityBreach {
		out = append(out, "Portfolio demonstrates resilience under current stress scenario")
	}
	return out
}
