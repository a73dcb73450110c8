package calculation

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// BandLine records how much of an amount fell inside one band and what it
// cost. Amount is unrounded.
type BandLine struct {
	Band   domain.RateBand
	Taxed  decimal.Decimal
	Amount decimal.Decimal
}

// MarginalResult is the unrounded output of ComputeMarginal.
type MarginalResult struct {
	Schedule  string
	Total     decimal.Decimal
	Breakdown []BandLine
}

// ComputeMarginal evaluates a marginal schedule: each band charges its rate
// only on the slice of amount that lies inside it. Nothing is rounded here.
func ComputeMarginal(amount decimal.Decimal, schedule *domain.RateSchedule) (MarginalResult, error) {
	if amount.IsNegative() {
		return MarginalResult{}, domain.NewValidationError("amount", "cannot be negative, got %s", amount.String())
	}
	if schedule == nil {
		return MarginalResult{}, &domain.ScheduleError{Message: "schedule is nil"}
	}

	result := MarginalResult{Schedule: schedule.Name, Total: decimal.Zero}
	for _, band := range schedule.Bands {
		if amount.LessThanOrEqual(band.Lower) {
			break
		}
		top := amount
		if !band.IsUnbounded() {
			top = decimal.Min(amount, *band.Upper)
		}
		taxed := top.Sub(band.Lower)
		if !taxed.IsPositive() {
			continue
		}
		owed := taxed.Mul(band.Rate)
		result.Total = result.Total.Add(owed)
		result.Breakdown = append(result.Breakdown, BandLine{Band: band, Taxed: taxed, Amount: owed})
	}
	return result, nil
}

// MarginalRateAt returns the rate of the band containing amount.
func MarginalRateAt(amount decimal.Decimal, schedule *domain.RateSchedule) decimal.Decimal {
	for _, band := range schedule.Bands {
		if band.Contains(amount) {
			return band.Rate
		}
	}
	return decimal.Zero
}
