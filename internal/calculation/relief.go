package calculation

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SelectSchedule picks the relief schedule when amount is at or below the
// eligibility cap and the fallback schedule otherwise. This is all or
// nothing: one unit over the cap loses relief on the whole amount.
func SelectSchedule(amount decimal.Decimal, policy *domain.ReliefPolicy) (*domain.RateSchedule, bool) {
	if IsReliefEligible(amount, policy) {
		return policy.Discounted, true
	}
	return policy.Fallback, false
}

// IsReliefEligible reports whether amount qualifies for relief. The cap is
// inclusive.
func IsReliefEligible(amount decimal.Decimal, policy *domain.ReliefPolicy) bool {
	if policy == nil || policy.Discounted == nil {
		return false
	}
	return policy.EligibilityCap == nil || amount.LessThanOrEqual(*policy.EligibilityCap)
}
