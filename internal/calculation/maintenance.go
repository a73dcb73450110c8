package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateMaintenance runs the entitlement pipeline:
// validate -> weekly income -> dependents deduction -> classify ->
// regime amount -> shared care -> round.
// The dependents deduction must precede classification because the regime
// boundaries apply to adjusted income.
func (ce *CalculationEngine) CalculateMaintenance(_ context.Context, req domain.MaintenanceRequest) (*domain.MaintenanceResult, error) {
	if err := ValidateMaintenanceRequest(req); err != nil {
		return nil, err
	}
	req.IncomeFrequency, _ = domain.ParseIncomeFrequency(string(req.IncomeFrequency))

	weekly := ce.WeeklyIncome(req.GrossIncome, req.IncomeFrequency)
	breakdown := []string{fmt.Sprintf("Gross weekly income: %s", gbp(weekly))}

	adjusted := weekly
	if req.OtherDependentsCount > 0 {
		var deduction decimal.Decimal
		adjusted, deduction = ce.dependents.Adjust(weekly, req.OtherDependentsCount)
		breakdown = append(breakdown, dependentsLines(req.OtherDependentsCount, deduction, adjusted)...)
	}

	regime := ce.classifier.Compute(adjusted, req.ChildCount)
	breakdown = append(breakdown, regime.Lines...)

	amount := regime.Amount
	if req.SharedCareNights >= ce.sharedCare.Threshold() {
		care := ce.sharedCare.Reduce(amount, req.SharedCareNights, req.ChildCount)
		if care.Applied {
			breakdown = append(breakdown,
				fmt.Sprintf("Shared care reduction (%d nights): -%s", req.SharedCareNights, gbp(care.Reduction)),
				care.Description,
			)
			amount = care.Reduced
		}
	}
	breakdown = append(breakdown, fmt.Sprintf("Final weekly amount: %s", gbp(amount)))

	return &domain.MaintenanceResult{
		Request:        req,
		WeeklyAmount:   RoundMoney(amount),
		MonthlyAmount:  RoundMoney(amount.Mul(ce.weeks).Div(ce.months)),
		YearlyAmount:   RoundMoney(amount.Mul(ce.weeks)),
		Regime:         regime.Regime,
		RegimeLabel:    regime.Label(),
		Capped:         regime.Capped,
		WeeklyIncome:   RoundMoney(weekly),
		AdjustedIncome: RoundMoney(adjusted),
		Breakdown:      breakdown,
	}, nil
}

// WeeklyIncome normalises a gross income to a weekly figure. Monthly income
// uses ×12/52 exactly; no calendar averaging.
func (ce *CalculationEngine) WeeklyIncome(gross decimal.Decimal, freq domain.IncomeFrequency) decimal.Decimal {
	switch freq {
	case domain.FrequencyWeekly:
		return gross
	case domain.FrequencyMonthly:
		return gross.Mul(ce.months).Div(ce.weeks)
	default:
		return gross.Div(ce.weeks)
	}
}
