package risk

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"AssetSentinel/internal/model"
)

// ErrInvalidInput marks evaluation inputs the engine refuses to compute on.
// Callers can match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Assumptions are the financial constants one evaluation runs against.
// They are passed per call so tests and what-if runs can vary them freely.
type Assumptions struct {
	AnnualOpex          decimal.Decimal
	ReserveMonths       int
	DrawdownBreachLimit float64
	LiquidityBreachDays float64
	LiquidityWindowDays int
}

// DefaultAssumptions returns the standing configuration: SGD 2.4M annual
// opex, 12 reserve months, 20% drawdown flag, 90-day liquidity flag, and a
// 30-day window for what counts as accessible liquidity.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		AnnualOpex:          decimal.NewFromInt(2_400_000),
		ReserveMonths:       12,
		DrawdownBreachLimit: 0.20,
		LiquidityBreachDays: 90,
		LiquidityWindowDays: 30,
	}
}

// stressedHolding carries one holding's post-shock value through the
// penalty and liquidity passes.
type stressedHolding struct {
	holding      model.AssetHolding
	profile      Profile
	value        decimal.Decimal
	adjustedDays int
}

// Evaluate applies one stress-parameter set to the portfolio and returns the
// resulting metrics. It is a pure function: no I/O, no retained state, and
// identical inputs always yield identical output.
func Evaluate(holdings []model.AssetHolding, params model.StressParameters, assume Assumptions) (*model.StressMetrics, error) {
	if assume.AnnualOpex.Sign() <= 0 {
		return nil, fmt.Errorf("%w: annual opex must be positive, got %s", ErrInvalidInput, assume.AnnualOpex)
	}

	stressed := make([]stressedHolding, 0, len(holdings))
	original := decimal.Zero
	for i, h := range holdings {
		if h.Amount.Sign() < 0 {
			return nil, fmt.Errorf("%w: holding %d (%s) has negative amount %s", ErrInvalidInput, i, h.FundName, h.Amount)
		}
		profile, ok := ProfileFor(h.Type)
		if !ok {
			return nil, fmt.Errorf("%w: holding %d has unknown asset type %q", ErrInvalidInput, i, h.Type)
		}
		original = original.Add(h.Amount)
		stressed = append(stressed, stressedHolding{
			holding:      h,
			profile:      profile,
			value:        applyShocks(h.Amount, profile, h.Type, params),
			adjustedDays: adjustedLiquidity(h, params),
		})
	}

	applyEarlyWithdrawalPenalty(stressed, params, assume)

	total := decimal.Zero
	for _, s := range stressed {
		total = total.Add(s.value)
	}

	metrics := &model.StressMetrics{
		OriginalValue: original,
		StressedValue: total,
		Allocation:    map[model.AssetType]float64{},
		Breakdown:     map[model.AssetType]model.ClassBreakdown{},
		Parameters:    params,
	}

	// A favorable rate shock can leave the book above its starting value;
	// drawdown measures the loss side only, so it floors at zero.
	if original.Sign() > 0 && total.LessThan(original) {
		metrics.MaxDrawdown = original.Sub(total).Div(original).InexactFloat64()
	}
	metrics.ReserveCoverageRatio = total.Div(assume.AnnualOpex).InexactFloat64()
	metrics.ReserveMonthsCovered = metrics.ReserveCoverageRatio * float64(assume.ReserveMonths)
	metrics.TimeToLiquidityDays = weightedLiquidityDays(stressed, total)
	metrics.VolatilityBreach = metrics.MaxDrawdown > assume.DrawdownBreachLimit
	metrics.LiquidityBreach = metrics.TimeToLiquidityDays > assume.LiquidityBreachDays

	// A fully wiped portfolio is a valid (if alarming) outcome: allocation is
	// undefined, so it stays empty instead of dividing by zero.
	if total.Sign() > 0 {
		fillBreakdown(metrics, stressed, total)
	}

	return metrics, nil
}

// applyShocks runs the per-holding shock pipeline in its fixed order:
// rate shock, drawdown, counterparty writedown, floor at zero.
func applyShocks(amount decimal.Decimal, profile Profile, t model.AssetType, params model.StressParameters) decimal.Decimal {
	v := amount

	// Time deposits are excluded even if a profile edit gave them sensitivity:
	// their value is fixed for the term.
	if profile.InterestRateSensitivity > 0 && t != model.AssetTimeDeposit {
		v = v.Mul(decimal.NewFromFloat(1 + params.InterestRateShock*profile.InterestRateSensitivity))
	}
	if profile.SubjectToDrawdown {
		v = v.Mul(decimal.NewFromFloat(1 + params.MultiAssetDrawdown))
	}
	if params.CounterpartyShock != 0 {
		v = v.Mul(decimal.NewFromFloat(1 - params.CounterpartyShock))
	}
	if v.Sign() < 0 {
		v = decimal.Zero
	}
	return v
}

// adjustedLiquidity returns days-to-cash under stress. Redemption freezes hit
// every class except time deposits, whose maturity date does not move.
func adjustedLiquidity(h model.AssetHolding, params model.StressParameters) int {
	if h.Type == model.AssetTimeDeposit {
		return h.LiquidityDays
	}
	return h.LiquidityDays + params.RedemptionFreezeDays
}

// applyEarlyWithdrawalPenalty runs the conditional penalty pass. The penalty
// only applies when liquidity accessible within the window cannot cover annual
// opex, and then only to the portion of time-deposit value notionally needed
// to close the gap, spread across eligible holdings in proportion to their
// stressed value.
func applyEarlyWithdrawalPenalty(stressed []stressedHolding, params model.StressParameters, assume Assumptions) {
	if params.EarlyWithdrawalPenalty == 0 {
		return
	}

	available := decimal.Zero
	eligibleTotal := decimal.Zero
	for _, s := range stressed {
		if s.adjustedDays <= assume.LiquidityWindowDays {
			available = available.Add(s.value)
		}
		if s.profile.EarlyWithdrawalEligible {
			eligibleTotal = eligibleTotal.Add(s.value)
		}
	}
	if available.GreaterThanOrEqual(assume.AnnualOpex) || eligibleTotal.Sign() <= 0 {
		return
	}

	gap := assume.AnnualOpex.Sub(available)
	needed := decimal.Min(gap, eligibleTotal)
	penalty := decimal.NewFromFloat(params.EarlyWithdrawalPenalty)

	for i := range stressed {
		if !stressed[i].profile.EarlyWithdrawalEligible {
			continue
		}
		portion := needed.Mul(stressed[i].value).Div(eligibleTotal)
		stressed[i].value = stressed[i].value.Add(portion.Mul(penalty))
		if stressed[i].value.Sign() < 0 {
			stressed[i].value = decimal.Zero
		}
	}
}

// weightedLiquidityDays averages adjusted liquidity weighted by post-stress
// value, so holdings that lost value under stress weigh less. Returns 0 for a
// zero-value portfolio.
func weightedLiquidityDays(stressed []stressedHolding, total decimal.Decimal) float64 {
	if total.Sign() <= 0 {
		return 0
	}
	totalF := total.InexactFloat64()
	var weighted float64
	for _, s := range stressed {
		weighted += s.value.InexactFloat64() / totalF * float64(s.adjustedDays)
	}
	return weighted
}

func fillBreakdown(metrics *model.StressMetrics, stressed []stressedHolding, total decimal.Decimal) {
	totals := map[model.AssetType]decimal.Decimal{}
	counts := map[model.AssetType]int{}
	for _, s := range stressed {
		totals[s.holding.Type] = totals[s.holding.Type].Add(s.value)
		counts[s.holding.Type]++
	}
	for t, v := range totals {
		fraction := v.Div(total).InexactFloat64()
		metrics.Allocation[t] = fraction
		metrics.Breakdown[t] = model.ClassBreakdown{
			Amount:     v,
			Percentage: fraction * 100,
			Count:      counts[t],
		}
	}
}
