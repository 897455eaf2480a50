package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"

	"AssetSentinel/internal/model"
	"AssetSentinel/internal/risk"
)

// Generator renders stress test results into a committee-ready PDF.
type Generator struct {
	Title string
}

func NewGenerator(title string) *Generator {
	return &Generator{Title: title}
}

// Generate builds the full report and returns the PDF bytes.
func (g *Generator) Generate(metrics *model.StressMetrics, insights []string, assume risk.Assumptions, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(g.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.header(pdf, now)
	g.executiveSummary(pdf, metrics)
	g.insightsSection(pdf, insights)
	g.detailedMetrics(pdf, metrics, assume)
	g.breakdown(pdf, metrics)
	g.parameters(pdf, metrics.Parameters)
	g.riskAssessment(pdf, metrics)
	g.footer(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	log.Debug().Int("bytes", buf.Len()).Msg("report generated")
	return buf.Bytes(), nil
}

func (g *Generator) header(pdf *fpdf.Fpdf, now time.Time) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 128)
	pdf.MultiCell(0, 9, g.Title, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Report Generated: "+now.Format("02 January 2006 at 15:04 SGT"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Scenario: Custom Stress Test Parameters", "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (g *Generator) sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(139, 0, 0)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

func (g *Generator) tableHeader(pdf *fpdf.Fpdf, widths []float64, cols []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(64, 64, 64)
	pdf.SetTextColor(255, 255, 255)
	for i, c := range cols {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 220)
}

func (g *Generator) tableRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func (g *Generator) executiveSummary(pdf *fpdf.Fpdf, m *model.StressMetrics) {
	g.sectionTitle(pdf, "Executive Summary")

	status := func(breach bool, bad, good string) string {
		if breach {
			return bad
		}
		return good
	}

	widths := []float64{70, 50, 50}
	g.tableHeader(pdf, widths, []string{"Metric", "Value", "Status"})
	g.tableRow(pdf, widths, []string{"Original Portfolio Value", SGD(m.OriginalValue), ""})
	g.tableRow(pdf, widths, []string{"Stressed Portfolio Value", SGD(m.StressedValue), ""})
	g.tableRow(pdf, widths, []string{"Portfolio Decline", Percent(m.MaxDrawdown),
		status(m.VolatilityBreach, "HIGH RISK", "ACCEPTABLE")})
	g.tableRow(pdf, widths, []string{"Reserve Coverage", fmt.Sprintf("%.2fx", m.ReserveCoverageRatio),
		status(m.ReserveCoverageRatio < 1.0, "INSUFFICIENT", "ADEQUATE")})
	g.tableRow(pdf, widths, []string{"Months of Reserves", fmt.Sprintf("%.1f months", m.ReserveMonthsCovered), ""})
	g.tableRow(pdf, widths, []string{"Time to Liquidity", Days(m.TimeToLiquidityDays),
		status(m.LiquidityBreach, "SLOW ACCESS", "REASONABLE")})
	pdf.Ln(8)
}

func (g *Generator) insightsSection(pdf *fpdf.Fpdf, insights []string) {
	g.sectionTitle(pdf, "Key Insights & Recommendations")

	pdf.SetFont("Helvetica", "", 10)
	for _, ins := range insights {
		pdf.SetX(pdf.GetX() + 5)
		pdf.MultiCell(0, 6, "- "+ins, "", "L", false)
	}
	pdf.Ln(6)
}

func (g *Generator) detailedMetrics(pdf *fpdf.Fpdf, m *model.StressMetrics, assume risk.Assumptions) {
	g.sectionTitle(pdf, "Detailed Risk Metrics")

	widths := []float64{55, 40, 30, 45}
	g.tableHeader(pdf, widths, []string{"Risk Metric", "Current Value", "Threshold", "Assessment"})

	vol := "WITHIN LIMITS"
	if m.VolatilityBreach {
		vol = "BREACH"
	}
	cov := "ADEQUATE"
	if m.ReserveCoverageRatio < 1.0 {
		cov = "INSUFFICIENT"
	}
	liq := "ACCEPTABLE"
	if m.LiquidityBreach {
		liq = "CONCERNING"
	}

	g.tableRow(pdf, widths, []string{"Maximum Drawdown", Percent(m.MaxDrawdown),
		Percent(assume.DrawdownBreachLimit), vol})
	g.tableRow(pdf, widths, []string{"Reserve Coverage Ratio", fmt.Sprintf("%.3f", m.ReserveCoverageRatio),
		"1.000", cov})
	g.tableRow(pdf, widths, []string{"Liquidity Access Time", fmt.Sprintf("%.1f days", m.TimeToLiquidityDays),
		fmt.Sprintf("%.0f days", assume.LiquidityBreachDays), liq})
	g.tableRow(pdf, widths, []string{"Annual OPEX Coverage", SGD(assume.AnnualOpex),
		"Required", fmt.Sprintf("Covered %.1f months", m.ReserveMonthsCovered)})
	pdf.Ln(8)
}

func (g *Generator) breakdown(pdf *fpdf.Fpdf, m *model.StressMetrics) {
	g.sectionTitle(pdf, "Portfolio Composition (Post-Stress)")

	widths := []float64{60, 45, 35, 30}
	g.tableHeader(pdf, widths, []string{"Asset Type", "Amount (SGD)", "Percentage", "Count"})

	totalCount := 0
	for _, t := range model.AllAssetTypes {
		b, ok := m.Breakdown[t]
		if !ok {
			continue
		}
		g.tableRow(pdf, widths, []string{
			t.DisplayName(),
			SGD(b.Amount),
			fmt.Sprintf("%.1f%%", b.Percentage),
			fmt.Sprintf("%d", b.Count),
		})
		totalCount += b.Count
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(211, 211, 211)
	g.tableRow(pdf, widths, []string{"TOTAL", SGD(m.StressedValue), "100.0%", fmt.Sprintf("%d", totalCount)})
	pdf.Ln(6)

	png, err := RenderAllocationChart(m.Allocation)
	if err != nil {
		// A wiped-out portfolio has no allocation to chart.
		log.Warn().Err(err).Msg("skipping allocation chart")
		pdf.Ln(4)
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("allocation", opts, bytes.NewReader(png))
	pdf.ImageOptions("allocation", 20, pdf.GetY(), 170, 0, true, opts, 0, "")
	pdf.Ln(8)
}

func (g *Generator) parameters(pdf *fpdf.Fpdf, p model.StressParameters) {
	g.sectionTitle(pdf, "Stress Test Parameters Applied")

	widths := []float64{60, 40, 70}
	pdf.SetFillColor(0, 100, 0)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(255, 255, 255)
	for i, c := range []string{"Parameter", "Applied Value", "Impact"} {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 220)

	row := func(name, value, impact string) {
		pdf.CellFormat(widths[0], 7, name, "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[1], 7, value, "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[2], 7, impact, "1", 0, "L", true, 0, "")
		pdf.Ln(-1)
	}

	row("Interest Rate Shock", fmt.Sprintf("%+.1f%%", p.InterestRateShock*100), "Affects MMF and bond returns")
	row("Inflation Spike", fmt.Sprintf("%+.1f%%", p.InflationSpike*100), "Reduces real returns")
	row("Multi-Asset Fund Decline", fmt.Sprintf("%+.1f%%", p.MultiAssetDrawdown*100), "Market crash simulation")
	row("Redemption Freeze Extension", fmt.Sprintf("%+d days", p.RedemptionFreezeDays), "Delays fund access")
	row("Early Withdrawal Penalty", fmt.Sprintf("%+.1f%%", p.EarlyWithdrawalPenalty*100), "Deposit premature withdrawal cost")
	row("Counterparty Risk", fmt.Sprintf("%+.1f%% loss", p.CounterpartyShock*100), "Institution failure simulation")
	pdf.Ln(8)
}

func (g *Generator) riskAssessment(pdf *fpdf.Fpdf, m *model.StressMetrics) {
	g.sectionTitle(pdf, "Risk Assessment Summary")

	level := "LOW RISK"
	r, gr, b := 0, 128, 0
	switch {
	case m.VolatilityBreach || m.LiquidityBreach:
		level = "HIGH RISK"
		r, gr, b = 200, 0, 0
	case m.ReserveCoverageRatio < 1.2:
		level = "MODERATE RISK"
		r, gr, b = 230, 126, 0
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(r, gr, b)
	pdf.CellFormat(0, 7, "Overall Risk Level: "+level, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Recommendations:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	var recs []string
	if m.ReserveCoverageRatio < 1.0 {
		recs = append(recs, "Consider increasing cash reserves or reducing OPEX commitments")
	}
	if m.VolatilityBreach {
		recs = append(recs,
			"Review asset allocation to reduce portfolio volatility",
			"Consider increasing allocation to stable assets (deposits, MMFs)")
	}
	if m.LiquidityBreach {
		recs = append(recs,
			"Improve liquidity profile by reducing long-term deposit allocations",
			"Increase proportion of MMFs and cash equivalents")
	}
	if len(recs) == 0 {
		recs = append(recs,
			"Portfolio demonstrates good resilience under stress conditions",
			"Consider regular stress testing to monitor ongoing risk levels")
	}
	for _, rec := range recs {
		pdf.MultiCell(0, 6, "- "+rec, "", "L", false)
	}
	pdf.Ln(6)
}

func (g *Generator) footer(pdf *fpdf.Fpdf) {
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(96, 96, 96)
	pdf.MultiCell(0, 5, "This report is generated for internal investment committee review and planning purposes. "+
		"It is based on hypothetical stress scenarios and should not be considered as investment advice. "+
		"Consult with qualified financial advisors for investment decisions.", "", "L", false)
}
