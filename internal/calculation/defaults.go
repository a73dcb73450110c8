package calculation

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// RATE TABLE ASSUMPTIONS:
//
// 1. Levy rates are those in force from 1 April 2025:
//    - England and Northern Ireland SDLT, first-time-buyer relief capped at £625,000
//    - Scotland LBTT, first-time-buyer relief raises the nil band to £175,000 at any price
//    - Wales LTT, no first-time-buyer relief
//
// 2. Additional dwelling surcharges are flat on the whole price from the
//    first pound: England/NI 5%, Scotland 6%, Wales 4%
//
// 3. Child maintenance uses the CMS 2024/25 weekly formula. Monthly income is
//    converted with ×12/52 and weekly amounts are annualised over 52 weeks.

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func englandStandardBands() []domain.RateBand {
	return []domain.RateBand{
		domain.Band(0, 250000, "0"),
		domain.Band(250000, 925000, "0.05"),
		domain.Band(925000, 1500000, "0.10"),
		domain.TopBand(1500000, "0.12"),
	}
}

func englandCommercialBands() []domain.RateBand {
	return []domain.RateBand{
		domain.Band(0, 150000, "0"),
		domain.Band(150000, 250000, "0.02"),
		domain.TopBand(250000, "0.05"),
	}
}

func englandRules() domain.RegionLevyRules {
	return domain.RegionLevyRules{
		Standard: englandStandardBands(),
		FirstTimeBuyer: &domain.ReliefRules{
			EligibilityCap: decPtr("625000"),
			Bands: []domain.RateBand{
				domain.Band(0, 425000, "0"),
				domain.TopBand(425000, "0.05"),
			},
		},
		AdditionalProperty: &domain.SurchargeRules{FlatRate: dec("0.05")},
		Commercial:         englandCommercialBands(),
	}
}

// DefaultRegulatoryConfig returns the compiled-in rate tables.
func DefaultRegulatoryConfig() *domain.RegulatoryConfig {
	return &domain.RegulatoryConfig{
		Metadata: domain.RegulatoryMetadata{
			TaxYear:     "2025/26",
			LastUpdated: "2025-04-01",
			Description: "UK property transaction tax and CMS child maintenance tables",
		},
		Levy: map[domain.Region]domain.RegionLevyRules{
			domain.RegionEngland:         englandRules(),
			domain.RegionNorthernIreland: englandRules(),
			domain.RegionScotland: {
				Standard: []domain.RateBand{
					domain.Band(0, 145000, "0"),
					domain.Band(145000, 250000, "0.02"),
					domain.Band(250000, 325000, "0.05"),
					domain.Band(325000, 750000, "0.10"),
					domain.TopBand(750000, "0.12"),
				},
				FirstTimeBuyer: &domain.ReliefRules{
					Bands: []domain.RateBand{
						domain.Band(0, 175000, "0"),
						domain.Band(175000, 250000, "0.02"),
						domain.Band(250000, 325000, "0.05"),
						domain.Band(325000, 750000, "0.10"),
						domain.TopBand(750000, "0.12"),
					},
				},
				AdditionalProperty: &domain.SurchargeRules{FlatRate: dec("0.06")},
				Commercial: []domain.RateBand{
					domain.Band(0, 150000, "0"),
					domain.Band(150000, 250000, "0.01"),
					domain.TopBand(250000, "0.05"),
				},
			},
			domain.RegionWales: {
				Standard: []domain.RateBand{
					domain.Band(0, 225000, "0"),
					domain.Band(225000, 400000, "0.06"),
					domain.Band(400000, 750000, "0.075"),
					domain.Band(750000, 1500000, "0.10"),
					domain.TopBand(1500000, "0.12"),
				},
				AdditionalProperty: &domain.SurchargeRules{FlatRate: dec("0.04")},
				Commercial: []domain.RateBand{
					domain.Band(0, 225000, "0"),
					domain.Band(225000, 250000, "0.01"),
					domain.Band(250000, 1000000, "0.05"),
					domain.TopBand(1000000, "0.06"),
				},
			},
		},
		Maintenance: domain.MaintenanceRules{
			Thresholds: domain.IncomeThresholds{
				FlatFrom:      dec("7"),
				ReducedFrom:   dec("100"),
				BasicFrom:     dec("200"),
				BasicUpTo:     dec("800"),
				BasicPlusUpTo: dec("3000"),
			},
			FlatAmount:      dec("7"),
			ReducedRates:    []decimal.Decimal{dec("0.17"), dec("0.25"), dec("0.31")},
			BasicRates:      []decimal.Decimal{dec("0.12"), dec("0.16"), dec("0.19")},
			BasicPlusRates:  []decimal.Decimal{dec("0.09"), dec("0.12"), dec("0.15")},
			OtherDependents: []decimal.Decimal{dec("0"), dec("0.11"), dec("0.14"), dec("0.16")},
			SharedCare: []domain.SharedCareBand{
				{MinNights: 52, MaxNights: 103, Fraction: domain.NewRatio(1, 7)},
				{MinNights: 104, MaxNights: 155, Fraction: domain.NewRatio(2, 7)},
				{MinNights: 156, MaxNights: 174, Fraction: domain.NewRatio(3, 7)},
				{MinNights: 175, Fraction: domain.NewRatio(1, 2), PerChild: decPtr("7")},
			},
			WeeksPerYear:  52,
			MonthsPerYear: 12,
		},
	}
}
