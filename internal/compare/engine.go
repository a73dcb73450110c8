package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CompareEngine prices one amount under several levy profiles
type CompareEngine struct {
	CalcEngine *calculation.CalculationEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{CalcEngine: calcEngine}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Amount       decimal.Decimal
	Base         Profile   // Profile every other result is measured against
	Alternatives []Profile // Duplicates of the base or of each other are dropped
}

// Compare runs the base and every alternative at the same amount
func (ce *CompareEngine) Compare(ctx context.Context, options CompareOptions) (*ComparisonSet, error) {
	base, err := ce.evaluate(ctx, options.Amount, options.Base)
	if err != nil {
		return nil, fmt.Errorf("base profile %s: %w", options.Base.Name, err)
	}

	compSet := &ComparisonSet{
		Amount:     options.Amount,
		BaseResult: &base,
	}

	alternatives := lo.UniqBy(options.Alternatives, profileKey)
	alternatives = lo.Reject(alternatives, func(p Profile, _ int) bool {
		return profileKey(p) == profileKey(options.Base)
	})
	for _, p := range alternatives {
		result, err := ce.evaluate(ctx, options.Amount, p)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}
		compSet.AlternativeResults = append(compSet.AlternativeResults, CalculateComparison(result, base))
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) evaluate(ctx context.Context, amount decimal.Decimal, p Profile) (ComparisonResult, error) {
	r, err := ce.CalcEngine.CalculateLevy(ctx, domain.LevyRequest{
		Amount:    amount,
		BuyerType: p.BuyerType,
		Region:    p.Region,
	})
	if err != nil {
		return ComparisonResult{}, err
	}
	return ComparisonResult{
		Profile:       p,
		Total:         r.Total,
		Surcharge:     r.Surcharge,
		EffectiveRate: r.EffectiveRate,
		ReliefApplied: r.ReliefApplied,
		ScheduleName:  r.ScheduleName,
	}, nil
}

func profileKey(p Profile) string {
	return string(p.Region) + "/" + string(p.BuyerType)
}
