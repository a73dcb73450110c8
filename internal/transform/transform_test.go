package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

func createTestBatch() *domain.Configuration {
	return &domain.Configuration{
		Metadata: domain.InputMetadata{Description: "Test batch"},
		Levy: []domain.NamedLevyRequest{
			{Name: "flat", LevyRequest: domain.LevyRequest{
				Amount: decimal.NewFromInt(300000), BuyerType: domain.BuyerStandard, Region: domain.RegionEngland,
			}},
			{Name: "house", LevyRequest: domain.LevyRequest{
				Amount: decimal.NewFromInt(500000), BuyerType: domain.BuyerStandard, Region: domain.RegionEngland,
			}},
		},
		Maintenance: []domain.NamedMaintenanceCase{
			{Name: "alex", MaintenanceRequest: domain.MaintenanceRequest{
				GrossIncome: decimal.NewFromInt(26000), IncomeFrequency: domain.FrequencyYearly, ChildCount: 2,
			}},
		},
	}
}

func TestApplyTransforms_NilBase(t *testing.T) {
	_, err := ApplyTransforms(nil, []BatchTransform{&SetChildren{Count: 1}})
	if err == nil {
		t.Error("Expected error for nil base, got nil")
	}
}

func TestApplyTransforms_EmptyReturnsCopy(t *testing.T) {
	base := createTestBatch()
	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result == base {
		t.Error("Expected a copy, got same instance")
	}
	result.Levy[0].Amount = decimal.Zero
	if base.Levy[0].Amount.IsZero() {
		t.Error("Modifying the copy changed the base")
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestBatch()
	transforms := []BatchTransform{
		&SetBuyerType{BuyerType: domain.BuyerFirstTime},
		&SetRegion{Selector: Selector{Case: "house"}, Region: domain.RegionScotland},
		&SetSharedCare{Nights: 104},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, c := range result.Levy {
		if c.BuyerType != domain.BuyerFirstTime {
			t.Errorf("%s: expected first-time-buyer, got %s", c.Name, c.BuyerType)
		}
	}
	if result.Levy[0].Region != domain.RegionEngland {
		t.Errorf("flat: region should be unchanged, got %s", result.Levy[0].Region)
	}
	if result.Levy[1].Region != domain.RegionScotland {
		t.Errorf("house: expected scotland, got %s", result.Levy[1].Region)
	}
	if result.Maintenance[0].SharedCareNights != 104 {
		t.Errorf("Expected 104 nights, got %d", result.Maintenance[0].SharedCareNights)
	}

	if base.Levy[0].BuyerType != domain.BuyerStandard || base.Maintenance[0].SharedCareNights != 0 {
		t.Error("Base configuration was modified")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestBatch(), []BatchTransform{nil})
	if err == nil || !strings.Contains(err.Error(), "index 0 is nil") {
		t.Errorf("Expected nil transform error, got %v", err)
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(createTestBatch(), []BatchTransform{
		&SetSharedCare{Selector: Selector{Case: "nobody"}, Nights: 52},
	})
	if err == nil {
		t.Fatal("Expected error for unmatched case")
	}
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError, got %T", err)
	}
	if te.TransformName != "set_nights" {
		t.Errorf("Expected set_nights, got %s", te.TransformName)
	}
}

func TestAdjustPrice(t *testing.T) {
	base := createTestBatch()
	pct := decimal.NewFromInt(10)
	delta := decimal.NewFromInt(-25000)

	result, err := ApplyTransforms(base, []BatchTransform{
		&AdjustPrice{Percent: &pct},
		&AdjustPrice{Selector: Selector{Case: "flat"}, Delta: &delta},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := result.Levy[0].Amount.String(); got != "305000" {
		t.Errorf("flat: expected 305000, got %s", got)
	}
	if got := result.Levy[1].Amount.String(); got != "550000" {
		t.Errorf("house: expected 550000, got %s", got)
	}
}

func TestAdjustPrice_Validate(t *testing.T) {
	base := createTestBatch()
	delta := decimal.NewFromInt(-400000)
	pct := decimal.NewFromInt(5)

	if err := (&AdjustPrice{Delta: &delta}).Validate(base); err == nil {
		t.Error("Expected error for negative resulting price")
	}
	if err := (&AdjustPrice{}).Validate(base); err == nil {
		t.Error("Expected error with neither amount nor pct")
	}
	if err := (&AdjustPrice{Delta: &delta, Percent: &pct}).Validate(base); err == nil {
		t.Error("Expected error with both amount and pct")
	}
}

func TestAdjustIncome(t *testing.T) {
	result, err := ApplyTransforms(createTestBatch(), []BatchTransform{
		&AdjustIncome{Percent: decimal.NewFromInt(-50)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := result.Maintenance[0].GrossIncome.String(); got != "13000" {
		t.Errorf("Expected 13000, got %s", got)
	}

	if err := (&AdjustIncome{Percent: decimal.NewFromInt(-101)}).Validate(createTestBatch()); err == nil {
		t.Error("Expected error for income below zero")
	}
}

func TestMaintenanceCountValidation(t *testing.T) {
	base := createTestBatch()
	tests := []struct {
		name      string
		transform BatchTransform
		wantErr   bool
	}{
		{"one child", &SetChildren{Count: 1}, false},
		{"zero children", &SetChildren{Count: 0}, true},
		{"no dependents", &SetDependents{Count: 0}, false},
		{"negative dependents", &SetDependents{Count: -1}, true},
		{"full year", &SetSharedCare{Nights: 365}, false},
		{"too many nights", &SetSharedCare{Nights: 366}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevyTransformsNeedLevyCases(t *testing.T) {
	base := createTestBatch()
	base.Levy = nil
	if err := (&SetRegion{Region: domain.RegionWales}).Validate(base); err == nil {
		t.Error("Expected error for batch without levy cases")
	}
}

func TestDescribe(t *testing.T) {
	got := Describe([]BatchTransform{
		&SetBuyerType{BuyerType: domain.BuyerFirstTime},
		&SetSharedCare{Selector: Selector{Case: "alex"}, Nights: 104},
	})
	want := `Buy as first-time-buyer; 104 shared care nights for "alex"`
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
