package report

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// SGD formats a decimal amount as Singapore dollars with thousands separators.
func SGD(v decimal.Decimal) string {
	return "S$" + humanize.CommafWithDigits(v.InexactFloat64(), 2)
}

// Percent formats a fraction as a percentage for display.
func Percent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// Days formats a day count for display.
func Days(d float64) string {
	return fmt.Sprintf("%.0f days", d)
}

// Filename builds the standard report filename: {prefix}_StressTest_{date}_{time}.pdf
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_StressTest_%s.pdf", prefix, now.Format("2006-01-02_15-04"))
}
