package integration

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rgehrsitz/bandcalc/internal/breakeven"
	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/config"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	batchFile = "../testdata/batch.yaml"
	ratesFile = "../testdata/rates.yaml"
)

func loadBatch(t *testing.T) (*calculation.CalculationEngine, *domain.BatchResults) {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(batchFile)
	require.NoError(t, err)
	engine, err := parser.LoadEngine(ratesFile)
	require.NoError(t, err)
	results, err := engine.RunBatch(t.Context(), cfg)
	require.NoError(t, err)
	return engine, results
}

func TestEndToEndCalculation(t *testing.T) {
	_, results := loadBatch(t)

	assert.Equal(t, "Household moving from Cardiff to Edinburgh", results.Description)
	require.Len(t, results.Levy, 3)
	require.Len(t, results.Maintenance, 2)

	levy := map[string]string{
		"Edinburgh flat, first-time": "4000",
		"Cardiff flat":               "4500",
		"London buy-to-let":          "37500",
	}
	for _, r := range results.Levy {
		assert.Equal(t, levy[r.Name], r.Result.Total.String(), r.Name)
	}

	assert.Equal(t, "60", results.Maintenance[0].Result.WeeklyAmount.String())
	assert.Equal(t, "51.43", results.Maintenance[1].Result.WeeklyAmount.String())
}

func TestRatesFileMatchesBuiltInTables(t *testing.T) {
	fromFile, err := config.NewInputParser().LoadEngine(ratesFile)
	require.NoError(t, err)
	builtIn := calculation.NewCalculationEngine()

	amounts := []string{"0", "40000", "145000", "250000", "300000", "425000", "625000", "625001", "925000", "1500001", "2000000"}
	for _, region := range domain.Regions {
		for _, buyer := range domain.BuyerTypes {
			for _, a := range amounts {
				req := domain.LevyRequest{Amount: decimal.RequireFromString(a), BuyerType: buyer, Region: region}
				want, err := builtIn.CalculateLevy(t.Context(), req)
				require.NoError(t, err)
				got, err := fromFile.CalculateLevy(t.Context(), req)
				require.NoError(t, err)
				assert.True(t, want.Total.Equal(got.Total), "%s %s %s: built-in %s, file %s", region, buyer, a, want.Total, got.Total)
			}
		}
	}
}

func TestEveryFormatterRendersBatch(t *testing.T) {
	_, results := loadBatch(t)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			data, err := f.Format(results)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			if !output.IsBinary(name) {
				assert.Contains(t, string(data), "Cardiff flat")
			}
		})
	}
}

func TestLevyMonotoneAcrossProfiles(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	step := decimal.NewFromInt(2500)
	top := decimal.NewFromInt(2000000)

	for _, region := range domain.Regions {
		for _, buyer := range domain.BuyerTypes {
			profile, err := engine.Profile(region, buyer)
			require.NoError(t, err)

			prev := decimal.Zero
			for a := decimal.Zero; a.LessThanOrEqual(top); a = a.Add(step) {
				eval, err := calculation.EvaluateProfile(a, profile)
				require.NoError(t, err)
				// The relief cliff is the only place the levy may jump; it never falls.
				assert.False(t, eval.Total.LessThan(prev), "%s %s decreased at %s", region, buyer, a)
				prev = eval.Total
			}
		}
	}
}

func TestReliefCliffJumpIsExact(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	ctx := context.Background()

	at, err := engine.CalculateLevy(ctx, domain.LevyRequest{Amount: decimal.NewFromInt(625000), BuyerType: domain.BuyerFirstTime})
	require.NoError(t, err)
	above, err := engine.CalculateLevy(ctx, domain.LevyRequest{Amount: decimal.NewFromInt(625001), BuyerType: domain.BuyerFirstTime})
	require.NoError(t, err)
	standard, err := engine.CalculateLevy(ctx, domain.LevyRequest{Amount: decimal.NewFromInt(625001)})
	require.NoError(t, err)

	assert.True(t, at.ReliefApplied)
	assert.False(t, above.ReliefApplied)
	assert.True(t, above.Total.Equal(standard.Total))
	assert.Equal(t, "8750.05", above.Total.Sub(at.Total).String())
}

func TestMaxPriceAgreesWithBatchEngine(t *testing.T) {
	engine, results := loadBatch(t)
	solver := breakeven.NewDefaultSolver(engine)

	// Spending exactly a batch levy must buy at least that batch price.
	for _, r := range results.Levy {
		mp, err := solver.MaxPrice(t.Context(), breakeven.MaxPriceRequest{
			Budget:    r.Result.Total,
			Region:    r.Result.Request.Region,
			BuyerType: r.Result.Request.BuyerType,
		})
		require.NoError(t, err, r.Name)
		assert.True(t, mp.MaxPrice.GreaterThanOrEqual(r.Result.Request.Amount), "%s: max price %s below %s", r.Name, mp.MaxPrice, r.Result.Request.Amount)
	}
}

func TestEngineSharedAcrossGoroutines(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	req := domain.MaintenanceRequest{
		GrossIncome:      decimal.NewFromInt(500),
		IncomeFrequency:  domain.FrequencyWeekly,
		ChildCount:       1,
		SharedCareNights: 80,
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := engine.CalculateMaintenance(context.Background(), req)
			if err != nil {
				errs <- err
				return
			}
			if r.WeeklyAmount.String() != "51.43" {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	_, err := parser.LoadFromFile("../testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to read file"))

	_, err = parser.LoadEngine("../testdata/does-not-exist.yaml")
	assert.Error(t, err)
}
