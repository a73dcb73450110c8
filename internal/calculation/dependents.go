package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DependentsTable holds the income deduction for other children the paying
// parent supports. Index is the dependent count; counts past the end share
// the last entry.
type DependentsTable struct {
	fractions []decimal.Decimal
}

// NewDependentsTable validates the deduction fractions. Index 0 must be zero.
func NewDependentsTable(fractions []decimal.Decimal) (*DependentsTable, error) {
	if len(fractions) == 0 {
		return nil, fmt.Errorf("other dependents deductions are required")
	}
	if !fractions[0].IsZero() {
		return nil, fmt.Errorf("deduction for zero other dependents must be 0")
	}
	one := decimal.NewFromInt(1)
	for i, f := range fractions {
		if f.IsNegative() || f.GreaterThanOrEqual(one) {
			return nil, fmt.Errorf("deduction %d must be in [0, 1)", i)
		}
	}
	return &DependentsTable{fractions: fractions}, nil
}

// Fraction returns the deduction for count other dependents, clamped to the
// top tier.
func (d *DependentsTable) Fraction(count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	if count >= len(d.fractions) {
		return d.fractions[len(d.fractions)-1]
	}
	return d.fractions[count]
}

// Adjust reduces gross weekly income by the dependents deduction.
func (d *DependentsTable) Adjust(gross decimal.Decimal, count int) (adjusted, deduction decimal.Decimal) {
	deduction = gross.Mul(d.Fraction(count))
	return gross.Sub(deduction), deduction
}

// dependentsLines renders the deduction the way the calculator page shows it.
func dependentsLines(count int, deduction, adjusted decimal.Decimal) []string {
	noun := "child"
	if count > 1 {
		noun = "children"
	}
	return []string{
		fmt.Sprintf("Deduction for %d other %s: -%s", count, noun, gbp(deduction)),
		fmt.Sprintf("Adjusted weekly income: %s", gbp(adjusted)),
	}
}
