package compare

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MaxSweepRows bounds the number of prices a sweep may evaluate.
const MaxSweepRows = 10000

// SweepOptions describes a price range evaluated under several profiles.
type SweepOptions struct {
	From     decimal.Decimal
	To       decimal.Decimal
	Step     decimal.Decimal
	Profiles []Profile
}

// SweepRow is one price with the levy under each profile, in profile order.
type SweepRow struct {
	Amount decimal.Decimal   `json:"amount"`
	Totals []decimal.Decimal `json:"totals"`
}

// SweepResult is a table of levies across a price range.
type SweepResult struct {
	Profiles []Profile  `json:"profiles"`
	Rows     []SweepRow `json:"rows"`
}

// ProfileNames returns the column headings.
func (s *SweepResult) ProfileNames() []string {
	return lo.Map(s.Profiles, func(p Profile, _ int) string { return p.Name })
}

// Sweep evaluates every profile from From to To inclusive in Step increments.
func (ce *CompareEngine) Sweep(ctx context.Context, options SweepOptions) (*SweepResult, error) {
	if !options.Step.IsPositive() {
		return nil, fmt.Errorf("sweep step must be positive")
	}
	if options.From.IsNegative() || options.To.LessThan(options.From) {
		return nil, fmt.Errorf("sweep range %s to %s is invalid", options.From, options.To)
	}
	if len(options.Profiles) == 0 {
		return nil, fmt.Errorf("at least one profile is required")
	}
	rows := options.To.Sub(options.From).Div(options.Step).Floor().IntPart() + 1
	if rows > MaxSweepRows {
		return nil, fmt.Errorf("sweep would evaluate %d prices, limit is %d", rows, MaxSweepRows)
	}

	profiles := lo.UniqBy(options.Profiles, profileKey)
	result := &SweepResult{Profiles: profiles}
	for amount := options.From; amount.LessThanOrEqual(options.To); amount = amount.Add(options.Step) {
		row := SweepRow{Amount: amount}
		for _, p := range profiles {
			r, err := ce.evaluate(ctx, amount, p)
			if err != nil {
				return nil, fmt.Errorf("profile %s at %s: %w", p.Name, amount, err)
			}
			row.Totals = append(row.Totals, r.Total)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}
