package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Profile names a region and buyer type to price.
type Profile struct {
	Name      string           `json:"name"`
	Region    domain.Region    `json:"region"`
	BuyerType domain.BuyerType `json:"buyerType"`
}

// ParseProfile accepts "region:buyer-type", "buyer-type" (England) or
// "region" (standard buyer).
func ParseProfile(s string) (Profile, error) {
	regionPart, buyerPart, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		if _, err := domain.ParseBuyerType(regionPart); err == nil && regionPart != "" {
			regionPart, buyerPart = "", regionPart
		}
	}
	region, err := domain.ParseRegion(regionPart)
	if err != nil {
		return Profile{}, err
	}
	buyer, err := domain.ParseBuyerType(buyerPart)
	if err != nil {
		return Profile{}, err
	}
	return NewProfile(region, buyer), nil
}

// NewProfile builds a profile with a display name such as "LBTT first-time-buyer".
func NewProfile(region domain.Region, buyer domain.BuyerType) Profile {
	name := fmt.Sprintf("%s %s", region.TaxName(), buyer)
	if region == domain.RegionNorthernIreland {
		name = "NI " + name
	}
	return Profile{Name: name, Region: region, BuyerType: buyer}
}

// RegionProfiles returns one profile per buyer type in a region.
func RegionProfiles(region domain.Region) []Profile {
	return lo.Map(domain.BuyerTypes, func(b domain.BuyerType, _ int) Profile {
		return NewProfile(region, b)
	})
}

// ComparisonResult is the levy for one profile plus its difference from the base
type ComparisonResult struct {
	Profile       Profile         `json:"profile"`
	Total         decimal.Decimal `json:"total"`
	Surcharge     decimal.Decimal `json:"surcharge"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	ReliefApplied bool            `json:"reliefApplied"`
	ScheduleName  string          `json:"scheduleName"`

	// Comparison to Base
	DiffFromBase decimal.Decimal `json:"diffFromBase"`
	PctFromBase  decimal.Decimal `json:"pctFromBase"`
}

// ComparisonSet holds every profile priced at one amount
type ComparisonSet struct {
	Amount             decimal.Decimal    `json:"amount"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// All returns the base followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// CalculateComparison fills in the differences between a result and the base
func CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.DiffFromBase = result.Total.Sub(base.Total)
	if !base.Total.IsZero() {
		result.PctFromBase = result.DiffFromBase.
			Div(base.Total).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return result
}

// GenerateRecommendations summarises the cheapest and dearest alternatives
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	cheapest := lo.MinBy(compSet.All(), func(a, b ComparisonResult) bool {
		return a.Total.LessThan(b.Total)
	})
	if cheapest.Profile != base.Profile && cheapest.Total.LessThan(base.Total) {
		recommendations = append(recommendations,
			"Lowest Levy: "+cheapest.Profile.Name+" saves £"+base.Total.Sub(cheapest.Total).StringFixed(2)+
				" against "+base.Profile.Name)
	}

	dearest := lo.MaxBy(compSet.AlternativeResults, func(a, b ComparisonResult) bool {
		return a.Total.GreaterThan(b.Total)
	})
	if dearest.Total.GreaterThan(base.Total) {
		recommendations = append(recommendations,
			"Highest Levy: "+dearest.Profile.Name+" costs £"+dearest.DiffFromBase.StringFixed(2)+" more")
	}

	for _, alt := range compSet.All() {
		if alt.Surcharge.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("Refund: %s includes a £%s surcharge that may be reclaimable if a previous main residence is sold",
					alt.Profile.Name, alt.Surcharge.StringFixed(2)))
		}
	}

	return recommendations
}
