package calculation

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplySurcharge adds the flat surcharge on the full amount to base. The
// surcharge is not folded into the marginal bands.
func ApplySurcharge(amount, base decimal.Decimal, policy *domain.SurchargePolicy) (total, surcharge decimal.Decimal) {
	surcharge = SurchargeOn(amount, policy)
	return base.Add(surcharge), surcharge
}

// SurchargeOn returns the surcharge alone. It applies from the first pound.
func SurchargeOn(amount decimal.Decimal, policy *domain.SurchargePolicy) decimal.Decimal {
	if policy == nil {
		return decimal.Zero
	}
	return amount.Mul(policy.FlatRate)
}
