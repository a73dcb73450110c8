package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateLevy runs the levy pipeline:
// validate -> select schedule -> marginal bands -> surcharge -> round.
// ctx is accepted for symmetry with callers; the calculation never blocks.
func (ce *CalculationEngine) CalculateLevy(_ context.Context, req domain.LevyRequest) (*domain.LevyResult, error) {
	if err := ValidateLevyRequest(req); err != nil {
		return nil, err
	}
	req.BuyerType, _ = domain.ParseBuyerType(string(req.BuyerType))
	req.Region, _ = domain.ParseRegion(string(req.Region))

	profile, err := ce.Profile(req.Region, req.BuyerType)
	if err != nil {
		return nil, err
	}

	unrounded, err := EvaluateProfile(req.Amount, profile)
	if err != nil {
		return nil, err
	}

	result := &domain.LevyResult{
		Request:       req,
		Total:         RoundMoney(unrounded.Total),
		ScheduleName:  unrounded.Marginal.Schedule,
		ReliefApplied: unrounded.ReliefApplied,
		Surcharge:     RoundMoney(unrounded.Surcharge),
		EffectiveRate: decimal.Zero,
	}
	for _, line := range unrounded.Marginal.Breakdown {
		result.Breakdown = append(result.Breakdown, domain.BreakdownLine{
			Label:  line.Band.Label(),
			Amount: RoundMoney(line.Amount),
		})
	}
	if unrounded.Surcharge.IsPositive() {
		result.Breakdown = append(result.Breakdown, domain.BreakdownLine{
			Label:  fmt.Sprintf("Surcharge %s on %s", pctExact(profile.Surcharge.FlatRate), gbpGrouped(req.Amount)),
			Amount: result.Surcharge,
		})
	}
	if req.Amount.IsPositive() {
		result.EffectiveRate = unrounded.Total.Div(req.Amount).Round(6)
	}
	return result, nil
}

// ProfileEvaluation is the unrounded outcome of one levy profile.
type ProfileEvaluation struct {
	Marginal      MarginalResult
	ReliefApplied bool
	Surcharge     decimal.Decimal
	Total         decimal.Decimal
}

// EvaluateProfile applies relief selection, the marginal schedule and any
// surcharge for amount. Nothing is rounded.
func EvaluateProfile(amount decimal.Decimal, profile *domain.LevyProfile) (ProfileEvaluation, error) {
	schedule := profile.Schedule
	relieved := false
	if profile.Relief != nil {
		schedule, relieved = SelectSchedule(amount, profile.Relief)
	}

	marginal, err := ComputeMarginal(amount, schedule)
	if err != nil {
		return ProfileEvaluation{}, err
	}

	total, surcharge := marginal.Total, decimal.Zero
	if profile.Surcharge != nil {
		total, surcharge = ApplySurcharge(amount, marginal.Total, profile.Surcharge)
	}
	return ProfileEvaluation{
		Marginal:      marginal,
		ReliefApplied: relieved,
		Surcharge:     surcharge,
		Total:         total,
	}, nil
}

func pctExact(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
