package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BuyerType selects which schedule and policies a levy calculation uses.
type BuyerType string

const (
	BuyerStandard           BuyerType = "standard"
	BuyerFirstTime          BuyerType = "first-time-buyer"
	BuyerAdditionalProperty BuyerType = "additional-property"
	BuyerCommercial         BuyerType = "commercial"
)

// BuyerTypes lists the buyer types in display order.
var BuyerTypes = []BuyerType{BuyerStandard, BuyerFirstTime, BuyerAdditionalProperty, BuyerCommercial}

// ParseBuyerType accepts the canonical names plus a few aliases used by forms.
func ParseBuyerType(s string) (BuyerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return BuyerStandard, nil
	case "first-time-buyer", "first_time_buyer", "ftb", "first-time":
		return BuyerFirstTime, nil
	case "additional-property", "additional_property", "additional", "second-home", "buy-to-let":
		return BuyerAdditionalProperty, nil
	case "commercial", "non-residential", "non_residential":
		return BuyerCommercial, nil
	}
	return "", NewValidationError("buyer_type", "unknown buyer type %q", s)
}

// Region is the UK jurisdiction whose transaction tax applies.
type Region string

const (
	RegionEngland         Region = "england"
	RegionNorthernIreland Region = "northern-ireland"
	RegionScotland        Region = "scotland"
	RegionWales           Region = "wales"
)

// Regions lists the supported regions in display order.
var Regions = []Region{RegionEngland, RegionNorthernIreland, RegionScotland, RegionWales}

// ParseRegion parses a region name.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "england", "":
		return RegionEngland, nil
	case "northern-ireland", "northern_ireland", "ni":
		return RegionNorthernIreland, nil
	case "scotland":
		return RegionScotland, nil
	case "wales":
		return RegionWales, nil
	}
	return "", NewValidationError("region", "unknown region %q", s)
}

// TaxName is the local name of the levy in a region.
func (r Region) TaxName() string {
	switch r {
	case RegionScotland:
		return "LBTT"
	case RegionWales:
		return "LTT"
	default:
		return "SDLT"
	}
}

// ReliefPolicy swaps in a discounted schedule for amounts at or below the
// eligibility cap. Above the cap the whole amount falls back; there is no
// partial relief. A nil cap means every amount is eligible.
type ReliefPolicy struct {
	EligibilityCap *decimal.Decimal
	Discounted     *RateSchedule
	Fallback       *RateSchedule
}

// SurchargePolicy adds FlatRate × amount on top of a schedule result.
type SurchargePolicy struct {
	FlatRate decimal.Decimal
}

// LevyProfile is the fully resolved configuration for one region and buyer
// type: either a direct schedule or a relief policy, optionally a surcharge.
type LevyProfile struct {
	Region    Region
	BuyerType BuyerType
	Schedule  *RateSchedule
	Relief    *ReliefPolicy
	Surcharge *SurchargePolicy
}

// LevyRequest is the boundary input for a property transaction levy.
type LevyRequest struct {
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	BuyerType BuyerType       `yaml:"buyer_type" json:"buyerType"`
	Region    Region          `yaml:"region" json:"region"`
}

// BreakdownLine is one labelled component of a total.
type BreakdownLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// LevyResult is the rounded output of the levy pipeline.
type LevyResult struct {
	Request       LevyRequest     `json:"request"`
	Total         decimal.Decimal `json:"total"`
	Breakdown     []BreakdownLine `json:"breakdown"`
	ScheduleName  string          `json:"scheduleName"`
	ReliefApplied bool            `json:"reliefApplied"`
	Surcharge     decimal.Decimal `json:"surcharge"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
}

func (r LevyResult) String() string {
	return fmt.Sprintf("%s %s %s: %s", r.Request.Region.TaxName(), r.Request.BuyerType, r.Request.Amount.StringFixed(0), r.Total.StringFixed(2))
}
