package transform

import (
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustIncome scales maintenance case incomes by a percentage.
type AdjustIncome struct {
	Selector
	Percent decimal.Decimal
}

func (t *AdjustIncome) Name() string { return "adjust_income" }

func (t *AdjustIncome) Description() string {
	return fmt.Sprintf("Change income by %s%%%s", t.Percent.String(), t.scope())
}

func (t *AdjustIncome) Validate(base *domain.Configuration) error {
	if t.Percent.LessThan(decimal.NewFromInt(-100)) {
		return NewTransformError(t.Name(), "validate", "income cannot fall below zero", nil)
	}
	return t.requireMaintenanceMatch(t.Name(), base)
}

func (t *AdjustIncome) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	factor := decimal.NewFromInt(1).Add(t.Percent.Div(decimal.NewFromInt(100)))
	modified := clone(base)
	for i := range modified.Maintenance {
		if t.matches(modified.Maintenance[i].Name) {
			modified.Maintenance[i].GrossIncome = modified.Maintenance[i].GrossIncome.Mul(factor)
		}
	}
	return modified, nil
}

// SetSharedCare sets the shared care nights of maintenance cases.
type SetSharedCare struct {
	Selector
	Nights int
}

func (t *SetSharedCare) Name() string { return "set_nights" }

func (t *SetSharedCare) Description() string {
	return fmt.Sprintf("%d shared care nights%s", t.Nights, t.scope())
}

func (t *SetSharedCare) Validate(base *domain.Configuration) error {
	if t.Nights < 0 || t.Nights > calculation.MaxSharedCareNights {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("nights must be between 0 and %d, got %d", calculation.MaxSharedCareNights, t.Nights), nil)
	}
	return t.requireMaintenanceMatch(t.Name(), base)
}

func (t *SetSharedCare) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := clone(base)
	for i := range modified.Maintenance {
		if t.matches(modified.Maintenance[i].Name) {
			modified.Maintenance[i].SharedCareNights = t.Nights
		}
	}
	return modified, nil
}

// SetChildren sets the qualifying child count of maintenance cases.
type SetChildren struct {
	Selector
	Count int
}

func (t *SetChildren) Name() string { return "set_children" }

func (t *SetChildren) Description() string {
	return fmt.Sprintf("%d qualifying children%s", t.Count, t.scope())
}

func (t *SetChildren) Validate(base *domain.Configuration) error {
	if t.Count < 1 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("count must be at least 1, got %d", t.Count), nil)
	}
	return t.requireMaintenanceMatch(t.Name(), base)
}

func (t *SetChildren) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := clone(base)
	for i := range modified.Maintenance {
		if t.matches(modified.Maintenance[i].Name) {
			modified.Maintenance[i].ChildCount = t.Count
		}
	}
	return modified, nil
}

// SetDependents sets the other-children count of maintenance cases.
type SetDependents struct {
	Selector
	Count int
}

func (t *SetDependents) Name() string { return "set_dependents" }

func (t *SetDependents) Description() string {
	return fmt.Sprintf("%d other children in the household%s", t.Count, t.scope())
}

func (t *SetDependents) Validate(base *domain.Configuration) error {
	if t.Count < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("count cannot be negative, got %d", t.Count), nil)
	}
	return t.requireMaintenanceMatch(t.Name(), base)
}

func (t *SetDependents) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := clone(base)
	for i := range modified.Maintenance {
		if t.matches(modified.Maintenance[i].Name) {
			modified.Maintenance[i].OtherDependentsCount = t.Count
		}
	}
	return modified, nil
}
