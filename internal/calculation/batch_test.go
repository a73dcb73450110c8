package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationEngine_RunBatch(t *testing.T) {
	engine := NewCalculationEngine()
	config := &domain.Configuration{
		Metadata: domain.InputMetadata{Description: "batch"},
		Levy: []domain.NamedLevyRequest{
			{Name: "scot", LevyRequest: domain.LevyRequest{Amount: dec("300000"), Region: domain.RegionScotland}},
		},
		Maintenance: []domain.NamedMaintenanceCase{
			{Name: "one", MaintenanceRequest: domain.MaintenanceRequest{GrossIncome: dec("26000"), ChildCount: 1}},
		},
	}

	results, err := engine.RunBatch(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, "batch", results.Description)
	require.Len(t, results.Levy, 1)
	require.Len(t, results.Maintenance, 1)
	assert.Equal(t, "scot", results.Levy[0].Name)
	assert.True(t, results.Levy[0].Result.Total.Equal(dec("4600")))
	assert.True(t, results.Maintenance[0].Result.WeeklyAmount.Equal(dec("60")))
}

func TestCalculationEngine_RunBatch_Errors(t *testing.T) {
	engine := NewCalculationEngine()

	bad := &domain.Configuration{
		Levy: []domain.NamedLevyRequest{{Name: "broken", LevyRequest: domain.LevyRequest{Amount: dec("-5")}}},
	}
	_, err := engine.RunBatch(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "levy broken")
	assert.ErrorIs(t, err, domain.ErrValidation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := &domain.Configuration{
		Levy: []domain.NamedLevyRequest{{Name: "fine", LevyRequest: domain.LevyRequest{Amount: dec("1")}}},
	}
	_, err = engine.RunBatch(ctx, ok)
	assert.ErrorIs(t, err, context.Canceled)
}
