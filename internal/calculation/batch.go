package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// RunBatch runs every calculation in a configuration, in file order. The
// first failure stops the batch.
func (ce *CalculationEngine) RunBatch(ctx context.Context, config *domain.Configuration) (*domain.BatchResults, error) {
	results := &domain.BatchResults{Description: config.Metadata.Description}

	for _, c := range config.Levy {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := ce.CalculateLevy(ctx, c.LevyRequest)
		if err != nil {
			return nil, fmt.Errorf("levy %s: %w", c.Name, err)
		}
		results.Levy = append(results.Levy, domain.NamedLevyResult{Name: c.Name, Result: *r})
	}
	for _, c := range config.Maintenance {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := ce.CalculateMaintenance(ctx, c.MaintenanceRequest)
		if err != nil {
			return nil, fmt.Errorf("maintenance %s: %w", c.Name, err)
		}
		results.Maintenance = append(results.Maintenance, domain.NamedMaintenanceResult{Name: c.Name, Result: *r})
	}
	return results, nil
}
