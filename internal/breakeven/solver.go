package breakeven

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver inverts the levy pipeline: given a budget it finds the largest price
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new max-price solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

var one = decimal.NewFromInt(1)

// segment is a stretch of prices where levy is linear: base at start, rising
// by slope per pound. A nil end means the segment is unbounded.
type segment struct {
	start decimal.Decimal
	end   *decimal.Decimal
	base  decimal.Decimal
	slope decimal.Decimal
}

// MaxPrice solves a request. Levy is non-decreasing in price, so the answer
// is the top of the set of prices whose rounded levy is within budget.
//
// The relief cliff splits the price line into two regimes: the discounted
// schedule up to and including the cap and the fallback schedule above it.
// Each regime is solved analytically band by band, then the answer is
// verified in whole pounds against the real pipeline.
func (s *Solver) MaxPrice(ctx context.Context, req MaxPriceRequest) (*MaxPriceResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Region, _ = domain.ParseRegion(string(req.Region))
	req.BuyerType, _ = domain.ParseBuyerType(string(req.BuyerType))

	profile, err := s.CalcEngine.Profile(req.Region, req.BuyerType)
	if err != nil {
		return nil, &BreakEvenError{Operation: "max_price", Message: "no levy profile", Cause: err}
	}

	type regime struct {
		schedule *domain.RateSchedule
		lo       decimal.Decimal
		hi       *decimal.Decimal
	}
	var regimes []regime
	if p := profile.Relief; p != nil && p.Discounted != nil {
		regimes = append(regimes, regime{schedule: p.Discounted, lo: decimal.Zero, hi: p.EligibilityCap})
		if p.EligibilityCap != nil {
			regimes = append(regimes, regime{schedule: p.Fallback, lo: p.EligibilityCap.Add(one)})
		}
	} else {
		regimes = append(regimes, regime{schedule: profile.Schedule, lo: decimal.Zero})
	}

	result := &MaxPriceResult{Request: req}
	found := false
	for _, rg := range regimes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		price, ok, err := s.solveRegime(rg.schedule, profile.Surcharge, req.Budget, rg.lo, rg.hi)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		price, steps, ok, err := s.verify(profile, req.Budget, price, rg.lo, rg.hi)
		if err != nil {
			return nil, err
		}
		if ok && (!found || price.GreaterThan(result.MaxPrice)) {
			found = true
			result.MaxPrice = price
			result.Adjustments = steps
			result.CliffLimited = rg.hi != nil && price.Equal(*rg.hi)
		}
	}
	if !found {
		return nil, &BreakEvenError{
			Operation: "max_price",
			Message:   fmt.Sprintf("no price has a levy within £%s", req.Budget.StringFixed(2)),
		}
	}

	at, err := calculation.EvaluateProfile(result.MaxPrice, profile)
	if err != nil {
		return nil, err
	}
	next, err := calculation.EvaluateProfile(result.MaxPrice.Add(one), profile)
	if err != nil {
		return nil, err
	}
	result.Levy = calculation.RoundMoney(at.Total)
	result.NextLevy = calculation.RoundMoney(next.Total)
	result.ReliefApplied = at.ReliefApplied
	return result, nil
}

// solveRegime returns the largest price in [lo, hi] whose unrounded levy under
// schedule plus surcharge is at most budget.
func (s *Solver) solveRegime(schedule *domain.RateSchedule, surcharge *domain.SurchargePolicy, budget, lo decimal.Decimal, hi *decimal.Decimal) (decimal.Decimal, bool, error) {
	segments, err := buildSegments(schedule, surcharge, lo, hi)
	if err != nil {
		return decimal.Zero, false, err
	}

	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg.base.GreaterThan(budget) {
			continue
		}
		if !seg.slope.IsPositive() {
			if seg.end == nil {
				return decimal.Zero, false, &BreakEvenError{
					Operation: "max_price",
					Message:   "levy never exceeds the budget; there is no maximum price",
				}
			}
			return *seg.end, true, nil
		}
		price := seg.start.Add(budget.Sub(seg.base).Div(seg.slope))
		if seg.end != nil && price.GreaterThan(*seg.end) {
			price = *seg.end
		}
		return price, true, nil
	}
	return decimal.Zero, false, nil
}

// buildSegments splits [lo, hi] at every band edge. A surcharge adds its flat
// rate to every segment's slope.
func buildSegments(schedule *domain.RateSchedule, surcharge *domain.SurchargePolicy, lo decimal.Decimal, hi *decimal.Decimal) ([]segment, error) {
	inRange := func(d decimal.Decimal) bool {
		return d.GreaterThan(lo) && (hi == nil || d.LessThan(*hi))
	}

	points := []decimal.Decimal{lo}
	for _, b := range schedule.Bands {
		if inRange(b.Lower) {
			points = append(points, b.Lower)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].LessThan(points[j]) })

	segments := make([]segment, 0, len(points))
	for i, start := range points {
		if i > 0 && start.Equal(points[i-1]) {
			continue
		}
		marginal, err := calculation.ComputeMarginal(start, schedule)
		if err != nil {
			return nil, err
		}
		slope := calculation.MarginalRateAt(start, schedule)
		base := marginal.Total
		if surcharge != nil {
			base = base.Add(calculation.SurchargeOn(start, surcharge))
			slope = slope.Add(surcharge.FlatRate)
		}

		var end *decimal.Decimal
		if i+1 < len(points) {
			e := points[i+1]
			end = &e
		} else if hi != nil {
			e := *hi
			end = &e
		}
		segments = append(segments, segment{start: start, end: end, base: base, slope: slope})
	}
	return segments, nil
}

// verify floors price to whole pounds and walks it until the rounded levy of
// the full profile fits at price and not at price+1, staying within [lo, hi].
func (s *Solver) verify(profile *domain.LevyProfile, budget, price, lo decimal.Decimal, hi *decimal.Decimal) (decimal.Decimal, int, bool, error) {
	fits := func(p decimal.Decimal) (bool, error) {
		eval, err := calculation.EvaluateProfile(p, profile)
		if err != nil {
			return false, err
		}
		return calculation.RoundMoney(eval.Total).LessThanOrEqual(budget), nil
	}

	price = price.Floor()
	steps := 0
	for {
		if price.LessThan(lo) {
			return decimal.Zero, steps, false, nil
		}
		ok, err := fits(price)
		if err != nil {
			return decimal.Zero, steps, false, err
		}
		if ok {
			break
		}
		if steps >= s.Options.MaxAdjustments {
			return decimal.Zero, steps, false, &BreakEvenError{Operation: "verify", Message: "analytic price did not converge"}
		}
		price = price.Sub(one)
		steps++
	}
	for steps < s.Options.MaxAdjustments {
		up := price.Add(one)
		if hi != nil && up.GreaterThan(*hi) {
			break
		}
		ok, err := fits(up)
		if err != nil {
			return decimal.Zero, steps, false, err
		}
		if !ok {
			break
		}
		price = up
		steps++
	}
	return price, steps, true, nil
}
