package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains the rate tables both calculators run on.
// It is loaded from rates.yaml or built from the compiled-in defaults, then
// turned into immutable schedules once at startup.
type RegulatoryConfig struct {
	Metadata    RegulatoryMetadata         `yaml:"metadata" json:"metadata"`
	Levy        map[Region]RegionLevyRules `yaml:"levy" json:"levy"`
	Maintenance MaintenanceRules           `yaml:"child_maintenance" json:"child_maintenance"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	TaxYear     string `yaml:"tax_year" json:"tax_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// RegionLevyRules holds one region's transaction tax tables.
type RegionLevyRules struct {
	Standard           []RateBand      `yaml:"standard" json:"standard"`
	FirstTimeBuyer     *ReliefRules    `yaml:"first_time_buyer,omitempty" json:"first_time_buyer,omitempty"`
	AdditionalProperty *SurchargeRules `yaml:"additional_property,omitempty" json:"additional_property,omitempty"`
	Commercial         []RateBand      `yaml:"commercial" json:"commercial"`
}

// ReliefRules describes first-time-buyer relief. Without a cap the relief
// schedule applies at every price.
type ReliefRules struct {
	EligibilityCap *decimal.Decimal `yaml:"eligibility_cap,omitempty" json:"eligibility_cap,omitempty"`
	Bands          []RateBand       `yaml:"bands" json:"bands"`
}

// SurchargeRules describes the flat higher-rate surcharge on additional
// dwellings.
type SurchargeRules struct {
	FlatRate decimal.Decimal `yaml:"flat_rate" json:"flat_rate"`
}

// MaintenanceRules contains the child maintenance formula tables. Rate
// slices are indexed by child tier (1, 2, 3+ children).
type MaintenanceRules struct {
	Thresholds      IncomeThresholds  `yaml:"thresholds" json:"thresholds"`
	FlatAmount      decimal.Decimal   `yaml:"flat_amount" json:"flat_amount"`
	ReducedRates    []decimal.Decimal `yaml:"reduced_rates" json:"reduced_rates"`
	BasicRates      []decimal.Decimal `yaml:"basic_rates" json:"basic_rates"`
	BasicPlusRates  []decimal.Decimal `yaml:"basic_plus_rates" json:"basic_plus_rates"`
	OtherDependents []decimal.Decimal `yaml:"other_dependents_deductions" json:"other_dependents_deductions"`
	SharedCare      []SharedCareBand  `yaml:"shared_care" json:"shared_care"`
	WeeksPerYear    int64             `yaml:"weeks_per_year" json:"weeks_per_year"`
	MonthsPerYear   int64             `yaml:"months_per_year" json:"months_per_year"`
}

// IncomeThresholds are the weekly income boundaries L1..L5.
type IncomeThresholds struct {
	FlatFrom      decimal.Decimal `yaml:"flat_from" json:"flat_from"`
	ReducedFrom   decimal.Decimal `yaml:"reduced_from" json:"reduced_from"`
	BasicFrom     decimal.Decimal `yaml:"basic_from" json:"basic_from"`
	BasicUpTo     decimal.Decimal `yaml:"basic_up_to" json:"basic_up_to"`
	BasicPlusUpTo decimal.Decimal `yaml:"basic_plus_up_to" json:"basic_plus_up_to"`
}

// SharedCareBand is one row of the shared-care reduction table. MaxNights of
// zero leaves the band open above. A non-nil PerChild makes the band
// composite: Fraction of the amount plus PerChild for every qualifying child.
type SharedCareBand struct {
	MinNights int              `yaml:"min_nights" json:"min_nights"`
	MaxNights int              `yaml:"max_nights,omitempty" json:"max_nights,omitempty"`
	Fraction  Ratio            `yaml:"fraction" json:"fraction"`
	PerChild  *decimal.Decimal `yaml:"per_child,omitempty" json:"per_child,omitempty"`
}

// IsComposite reports whether the band adds a flat per-child amount.
func (b SharedCareBand) IsComposite() bool {
	return b.PerChild != nil
}

// Contains reports whether nights falls inside the band.
func (b SharedCareBand) Contains(nights int) bool {
	if nights < b.MinNights {
		return false
	}
	return b.MaxNights == 0 || nights <= b.MaxNights
}
