package transform

import (
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SetBuyerType reprices levy cases under another buyer type.
type SetBuyerType struct {
	Selector
	BuyerType domain.BuyerType
}

func (t *SetBuyerType) Name() string { return "set_buyer" }

func (t *SetBuyerType) Description() string {
	return fmt.Sprintf("Buy as %s%s", t.BuyerType, t.scope())
}

func (t *SetBuyerType) Validate(base *domain.Configuration) error {
	if _, err := domain.ParseBuyerType(string(t.BuyerType)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid buyer type", err)
	}
	return t.requireLevyMatch(t.Name(), base)
}

func (t *SetBuyerType) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	buyer, _ := domain.ParseBuyerType(string(t.BuyerType))
	modified := clone(base)
	for i := range modified.Levy {
		if t.matches(modified.Levy[i].Name) {
			modified.Levy[i].BuyerType = buyer
		}
	}
	return modified, nil
}

// SetRegion moves levy cases to another region.
type SetRegion struct {
	Selector
	Region domain.Region
}

func (t *SetRegion) Name() string { return "set_region" }

func (t *SetRegion) Description() string {
	return fmt.Sprintf("Buy in %s%s", t.Region, t.scope())
}

func (t *SetRegion) Validate(base *domain.Configuration) error {
	if _, err := domain.ParseRegion(string(t.Region)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid region", err)
	}
	return t.requireLevyMatch(t.Name(), base)
}

func (t *SetRegion) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	region, _ := domain.ParseRegion(string(t.Region))
	modified := clone(base)
	for i := range modified.Levy {
		if t.matches(modified.Levy[i].Name) {
			modified.Levy[i].Region = region
		}
	}
	return modified, nil
}

// AdjustPrice changes levy case prices by a fixed amount or a percentage.
// Exactly one of Delta and Percent is set.
type AdjustPrice struct {
	Selector
	Delta   *decimal.Decimal
	Percent *decimal.Decimal
}

func (t *AdjustPrice) Name() string { return "adjust_price" }

func (t *AdjustPrice) Description() string {
	if t.Percent != nil {
		return fmt.Sprintf("Change price by %s%%%s", t.Percent.String(), t.scope())
	}
	return fmt.Sprintf("Change price by £%s%s", t.Delta.String(), t.scope())
}

func (t *AdjustPrice) Validate(base *domain.Configuration) error {
	if (t.Delta == nil) == (t.Percent == nil) {
		return NewTransformError(t.Name(), "validate", "exactly one of amount and pct is required", nil)
	}
	if err := t.requireLevyMatch(t.Name(), base); err != nil {
		return err
	}
	for _, c := range base.Levy {
		if t.matches(c.Name) && t.adjust(c.Amount).IsNegative() {
			return NewTransformError(t.Name(), "validate", fmt.Sprintf("price for %q would be negative", c.Name), nil)
		}
	}
	return nil
}

func (t *AdjustPrice) adjust(amount decimal.Decimal) decimal.Decimal {
	if t.Percent != nil {
		return amount.Add(amount.Mul(*t.Percent).Div(decimal.NewFromInt(100)))
	}
	return amount.Add(*t.Delta)
}

func (t *AdjustPrice) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := clone(base)
	for i := range modified.Levy {
		if t.matches(modified.Levy[i].Name) {
			modified.Levy[i].Amount = t.adjust(modified.Levy[i].Amount)
		}
	}
	return modified, nil
}
