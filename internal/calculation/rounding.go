package calculation

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places in a reported amount (pence).
const MoneyPlaces = 2

// RoundMoney rounds to the nearest penny, halves away from zero. The engine
// only reports non-negative figures, so in practice halves round up. Every
// reported figure is rounded exactly once, from the unrounded value.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

func gbp(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}

// gbpWhole drops the pence when there are none, matching "£7" and "£800" in
// the calculator text.
func gbpWhole(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "£" + d.StringFixed(0)
	}
	return gbp(d)
}

func pct(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// gbpGrouped renders an amount with thousands separators, e.g. "£500,000".
func gbpGrouped(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "£" + domain.GroupThousands(d.StringFixed(0))
	}
	return "£" + domain.GroupThousands(d.StringFixed(2))
}
