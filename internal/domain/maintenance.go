package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeFrequency is the period a gross income figure covers.
type IncomeFrequency string

const (
	FrequencyWeekly  IncomeFrequency = "weekly"
	FrequencyMonthly IncomeFrequency = "monthly"
	FrequencyYearly  IncomeFrequency = "yearly"
)

// ParseIncomeFrequency parses a frequency name.
func ParseIncomeFrequency(s string) (IncomeFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "week":
		return FrequencyWeekly, nil
	case "monthly", "month":
		return FrequencyMonthly, nil
	case "yearly", "annual", "annually", "year", "":
		return FrequencyYearly, nil
	}
	return "", NewValidationError("income_frequency", "unknown income frequency %q", s)
}

// IncomeRegime is the named income band that decides how maintenance is
// computed.
type IncomeRegime int

const (
	RegimeNil IncomeRegime = iota
	RegimeFlat
	RegimeReduced
	RegimeBasic
	RegimeBasicPlus
)

func (r IncomeRegime) String() string {
	switch r {
	case RegimeNil:
		return "Nil Rate"
	case RegimeFlat:
		return "Flat Rate"
	case RegimeReduced:
		return "Reduced Rate"
	case RegimeBasic:
		return "Basic Rate"
	case RegimeBasicPlus:
		return "Basic Plus Rate"
	}
	return "Unknown"
}

// MaintenanceRequest is the boundary input for a child maintenance estimate.
type MaintenanceRequest struct {
	GrossIncome          decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	IncomeFrequency      IncomeFrequency `yaml:"income_frequency" json:"incomeFrequency"`
	ChildCount           int             `yaml:"child_count" json:"childCount"`
	OtherDependentsCount int             `yaml:"other_dependents_count" json:"otherDependentsCount"`
	SharedCareNights     int             `yaml:"shared_care_nights" json:"sharedCareNights"`
}

// MaintenanceResult is the rounded output of the entitlement pipeline.
type MaintenanceResult struct {
	Request        MaintenanceRequest `json:"request"`
	WeeklyAmount   decimal.Decimal    `json:"weeklyAmount"`
	MonthlyAmount  decimal.Decimal    `json:"monthlyAmount"`
	YearlyAmount   decimal.Decimal    `json:"yearlyAmount"`
	Regime         IncomeRegime       `json:"-"`
	RegimeLabel    string             `json:"regimeLabel"`
	Capped         bool               `json:"capped"`
	WeeklyIncome   decimal.Decimal    `json:"weeklyIncome"`
	AdjustedIncome decimal.Decimal    `json:"adjustedIncome"`
	Breakdown      []string           `json:"breakdown"`
}
