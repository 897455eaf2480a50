package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"AssetSentinel/internal/model"
)

var classColors = map[model.AssetType]string{
	model.AssetCash:        "10b981", // emerald-500
	model.AssetTimeDeposit: "2563eb", // blue-600
	model.AssetMoneyMarket: "0ea5e9", // sky-500
	model.AssetBondFund:    "f59e0b", // amber-500
	model.AssetMultiAsset:  "8b5cf6", // violet-500
}

// RenderAllocationChart renders a PNG bar chart of the post-stress allocation.
// Returns raw PNG bytes.
func RenderAllocationChart(allocation map[model.AssetType]float64) ([]byte, error) {
	if len(allocation) == 0 {
		return nil, fmt.Errorf("allocation is empty")
	}

	bars := make([]chart.Value, 0, len(allocation))
	for _, t := range model.AllAssetTypes {
		pct, ok := allocation[t]
		if !ok {
			continue
		}
		bars = append(bars, chart.Value{
			Value: pct * 100,
			Label: t.DisplayName(),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(classColors[t]),
				StrokeColor: drawing.ColorFromHex(classColors[t]),
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Post-Stress Allocation",
		Width:    900,
		Height:   400,
		BarWidth: 90,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
