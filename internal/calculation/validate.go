package calculation

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// MaxSharedCareNights is the number of nights in a year.
const MaxSharedCareNights = 365

// ValidateLevyRequest rejects bad input before any stage runs.
func ValidateLevyRequest(req domain.LevyRequest) error {
	if req.Amount.IsNegative() {
		return domain.NewValidationError("amount", "cannot be negative, got %s", req.Amount.String())
	}
	if _, err := domain.ParseBuyerType(string(req.BuyerType)); err != nil {
		return err
	}
	if _, err := domain.ParseRegion(string(req.Region)); err != nil {
		return err
	}
	return nil
}

// ValidateMaintenanceRequest rejects bad input before any stage runs.
func ValidateMaintenanceRequest(req domain.MaintenanceRequest) error {
	if req.GrossIncome.IsNegative() {
		return domain.NewValidationError("gross_income", "cannot be negative, got %s", req.GrossIncome.String())
	}
	if _, err := domain.ParseIncomeFrequency(string(req.IncomeFrequency)); err != nil {
		return err
	}
	if req.ChildCount < 1 {
		return domain.NewValidationError("child_count", "must be at least 1, got %d", req.ChildCount)
	}
	if req.OtherDependentsCount < 0 {
		return domain.NewValidationError("other_dependents_count", "cannot be negative, got %d", req.OtherDependentsCount)
	}
	if req.SharedCareNights < 0 || req.SharedCareNights > MaxSharedCareNights {
		return domain.NewValidationError("shared_care_nights", "must be between 0 and %d, got %d", MaxSharedCareNights, req.SharedCareNights)
	}
	return nil
}
