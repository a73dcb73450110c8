package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// RegimeClassifier maps adjusted weekly income onto the maintenance rate
// regimes and computes the weekly amount each regime yields.
//
// Boundaries, with L1..L5 taken from IncomeThresholds:
//
//	income <  L1        Nil
//	L1 <= income < L2   Flat
//	L2 <= income < L3   Reduced
//	L3 <= income <= L4  Basic
//	L4 <  income <= L5  BasicPlus
//	income >  L5        BasicPlus evaluated at L5
type RegimeClassifier struct {
	thresholds     domain.IncomeThresholds
	flatAmount     decimal.Decimal
	reducedRates   []decimal.Decimal
	basicRates     []decimal.Decimal
	basicPlusRates []decimal.Decimal
}

// RegimeAmount is the weekly amount a regime produces before shared care.
type RegimeAmount struct {
	Regime domain.IncomeRegime
	Capped bool
	Amount decimal.Decimal
	Lines  []string
}

// Label is the display name, flagging the capped BasicPlus case.
func (r RegimeAmount) Label() string {
	if r.Capped {
		return r.Regime.String() + " (Capped)"
	}
	return r.Regime.String()
}

// NewRegimeClassifier validates the maintenance tables and builds a classifier.
func NewRegimeClassifier(rules domain.MaintenanceRules) (*RegimeClassifier, error) {
	t := rules.Thresholds
	ordered := []decimal.Decimal{decimal.Zero, t.FlatFrom, t.ReducedFrom, t.BasicFrom, t.BasicUpTo, t.BasicPlusUpTo}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].LessThan(ordered[i-1]) {
			return nil, fmt.Errorf("income thresholds must be ascending (threshold %d)", i)
		}
	}
	tiers := len(rules.BasicRates)
	if tiers == 0 {
		return nil, fmt.Errorf("basic rates are required")
	}
	if len(rules.ReducedRates) != tiers || len(rules.BasicPlusRates) != tiers {
		return nil, fmt.Errorf("reduced, basic and basic plus rates must have the same number of tiers")
	}
	if rules.FlatAmount.IsNegative() {
		return nil, fmt.Errorf("flat amount cannot be negative")
	}
	return &RegimeClassifier{
		thresholds:     t,
		flatAmount:     rules.FlatAmount,
		reducedRates:   rules.ReducedRates,
		basicRates:     rules.BasicRates,
		basicPlusRates: rules.BasicPlusRates,
	}, nil
}

// Classify returns the regime for a weekly income.
func (c *RegimeClassifier) Classify(income decimal.Decimal) domain.IncomeRegime {
	t := c.thresholds
	switch {
	case income.LessThan(t.FlatFrom):
		return domain.RegimeNil
	case income.LessThan(t.ReducedFrom):
		return domain.RegimeFlat
	case income.LessThan(t.BasicFrom):
		return domain.RegimeReduced
	case income.LessThanOrEqual(t.BasicUpTo):
		return domain.RegimeBasic
	default:
		return domain.RegimeBasicPlus
	}
}

// Tier clamps a child count to a rate tier index: 1 child is tier 0 and
// everything at or past the last tier shares it.
func (c *RegimeClassifier) Tier(childCount int) int {
	tier := childCount - 1
	if tier < 0 {
		tier = 0
	}
	if top := len(c.basicRates) - 1; tier > top {
		tier = top
	}
	return tier
}

// Compute classifies income and applies the regime's rule.
func (c *RegimeClassifier) Compute(income decimal.Decimal, childCount int) RegimeAmount {
	t := c.thresholds
	tier := c.Tier(childCount)
	regime := c.Classify(income)

	switch regime {
	case domain.RegimeNil:
		return RegimeAmount{
			Regime: regime,
			Amount: decimal.Zero,
			Lines:  []string{fmt.Sprintf("Income below %s/week - Nil rate applies", gbpWhole(t.FlatFrom))},
		}

	case domain.RegimeFlat:
		return RegimeAmount{
			Regime: regime,
			Amount: c.flatAmount,
			Lines: []string{fmt.Sprintf("Income %s-%s/week - Flat rate of %s applies",
				gbpWhole(t.FlatFrom), gbpWhole(t.ReducedFrom), gbpWhole(c.flatAmount))},
		}

	case domain.RegimeReduced:
		rate := c.reducedRates[tier]
		excess := income.Sub(t.ReducedFrom)
		return RegimeAmount{
			Regime: regime,
			Amount: c.flatAmount.Add(excess.Mul(rate)),
			Lines: []string{fmt.Sprintf("Reduced rate: %s + %s of %s",
				gbpWhole(c.flatAmount), pct(rate), gbp(excess))},
		}

	case domain.RegimeBasic:
		rate := c.basicRates[tier]
		return RegimeAmount{
			Regime: regime,
			Amount: income.Mul(rate),
			Lines:  []string{fmt.Sprintf("Basic rate: %s of %s", pct(rate), gbp(income))},
		}
	}

	basicRate := c.basicRates[tier]
	plusRate := c.basicPlusRates[tier]
	capped := income.GreaterThan(t.BasicPlusUpTo)
	assessed := decimal.Min(income, t.BasicPlusUpTo)

	basicAmount := t.BasicUpTo.Mul(basicRate)
	plusIncome := assessed.Sub(t.BasicUpTo)
	plusAmount := plusIncome.Mul(plusRate)

	var lines []string
	if capped {
		lines = append(lines, fmt.Sprintf("Income over %s/week - calculation capped at %s",
			gbpWhole(t.BasicPlusUpTo), gbpWhole(t.BasicPlusUpTo)))
	}
	plusLine := fmt.Sprintf("Plus rate (%s) on %s: %s", pct(plusRate), gbp(plusIncome), gbp(plusAmount))
	if capped {
		plusLine = fmt.Sprintf("Plus rate on %s: %s", gbpWhole(plusIncome), gbp(plusAmount))
	}
	lines = append(lines,
		fmt.Sprintf("Basic rate on first %s: %s", gbpWhole(t.BasicUpTo), gbp(basicAmount)),
		plusLine,
	)
	return RegimeAmount{
		Regime: domain.RegimeBasicPlus,
		Capped: capped,
		Amount: basicAmount.Add(plusAmount),
		Lines:  lines,
	}
}
