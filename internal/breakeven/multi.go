package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxPriceAcrossBuyers solves the same budget for every buyer type in a
// region and compares the answers.
func (s *Solver) MaxPriceAcrossBuyers(ctx context.Context, budget decimal.Decimal, region domain.Region) (*MultiProfileResult, error) {
	var results []MaxPriceResult
	var lastErr error

	for _, buyer := range domain.BuyerTypes {
		req := MaxPriceRequest{Budget: budget, Region: region, BuyerType: buyer}
		result, err := s.MaxPrice(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A buyer type with no maximum is skipped; the others still compare
			lastErr = err
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "max_price_across_buyers",
			Message:   "no buyer type produced a maximum price",
			Cause:     lastErr,
		}
	}

	mp := &MultiProfileResult{
		Budget:  budget,
		Region:  results[0].Request.Region,
		Results: results,
	}

	for i := range results {
		if mp.Highest == nil || results[i].MaxPrice.GreaterThan(mp.Highest.MaxPrice) {
			mp.Highest = &results[i]
		}
	}
	for i := range results {
		if mp.Lowest == nil || results[i].MaxPrice.LessThan(mp.Lowest.MaxPrice) {
			mp.Lowest = &results[i]
		}
	}

	mp.Recommendations = s.generateRecommendations(mp)
	return mp, nil
}

func (s *Solver) generateRecommendations(result *MultiProfileResult) []string {
	var recommendations []string

	if result.Highest != nil && result.Lowest != nil && result.Highest != result.Lowest {
		gap := result.Highest.MaxPrice.Sub(result.Lowest.MaxPrice)
		recommendations = append(recommendations,
			fmt.Sprintf("Most purchasing power: %s (£%s more than %s)",
				result.Highest.Request.BuyerType,
				domain.GroupThousands(gap.StringFixed(0)),
				result.Lowest.Request.BuyerType))
	}

	for _, r := range result.Results {
		if r.CliffLimited {
			recommendations = append(recommendations,
				fmt.Sprintf("%s is held at the relief cap of £%s; one pound more costs £%s",
					r.Request.BuyerType,
					domain.GroupThousands(r.MaxPrice.StringFixed(0)),
					domain.GroupThousands(r.NextLevy.StringFixed(2))))
		}
	}

	return recommendations
}
