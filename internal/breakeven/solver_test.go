package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

func newTestSolver() *Solver {
	return NewDefaultSolver(calculation.NewCalculationEngine())
}

func TestMaxPrice(t *testing.T) {
	tests := []struct {
		name      string
		region    domain.Region
		buyer     domain.BuyerType
		budget    string
		wantPrice string
		wantLevy  string
		wantCliff bool
	}{
		{"england nil band", domain.RegionEngland, domain.BuyerStandard, "0", "250000", "0", false},
		{"england standard", domain.RegionEngland, domain.BuyerStandard, "12500", "500000", "12500", false},
		{"surcharge from the first pound", domain.RegionEngland, domain.BuyerAdditionalProperty, "2000", "40000", "2000", false},
		{"surcharge inside nil band", domain.RegionEngland, domain.BuyerAdditionalProperty, "1999", "39980", "1999", false},
		{"surcharge on a low price", domain.RegionEngland, domain.BuyerAdditionalProperty, "1500", "30000", "1500", false},
		{"ftb within relief", domain.RegionEngland, domain.BuyerFirstTime, "3750", "500000", "3750", false},
		{"ftb at cap", domain.RegionEngland, domain.BuyerFirstTime, "10000", "625000", "10000", true},
		{"ftb held by cliff", domain.RegionEngland, domain.BuyerFirstTime, "18750", "625000", "10000", true},
		{"ftb past cliff", domain.RegionEngland, domain.BuyerFirstTime, "20000", "650000", "20000", false},
		{"scotland ftb uncapped", domain.RegionScotland, domain.BuyerFirstTime, "4000", "300000", "4000", false},
		{"wales standard", domain.RegionWales, domain.BuyerStandard, "4500", "300000", "4500", false},
		{"commercial", domain.RegionEngland, domain.BuyerCommercial, "4500", "300000", "4500", false},
	}

	solver := newTestSolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.MaxPrice(context.Background(), MaxPriceRequest{
				Budget:    decimal.RequireFromString(tt.budget),
				Region:    tt.region,
				BuyerType: tt.buyer,
			})
			if err != nil {
				t.Fatalf("MaxPrice failed: %v", err)
			}
			if !result.MaxPrice.Equal(decimal.RequireFromString(tt.wantPrice)) {
				t.Errorf("Expected max price %s, got %s", tt.wantPrice, result.MaxPrice)
			}
			if !result.Levy.Equal(decimal.RequireFromString(tt.wantLevy)) {
				t.Errorf("Expected levy %s, got %s", tt.wantLevy, result.Levy)
			}
			if result.CliffLimited != tt.wantCliff {
				t.Errorf("Expected cliff limited %v, got %v", tt.wantCliff, result.CliffLimited)
			}
			if result.Levy.GreaterThan(result.Request.Budget) {
				t.Errorf("Levy %s exceeds budget %s", result.Levy, result.Request.Budget)
			}
			if !result.NextLevy.GreaterThan(result.Request.Budget) {
				t.Errorf("Levy one pound above max price (%s) should exceed budget %s", result.NextLevy, result.Request.Budget)
			}
		})
	}
}

func TestMaxPriceAgreesWithLevyPipeline(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)

	for _, budget := range []string{"1234.56", "7777", "45000", "150000"} {
		result, err := solver.MaxPrice(context.Background(), MaxPriceRequest{
			Budget:    decimal.RequireFromString(budget),
			Region:    domain.RegionWales,
			BuyerType: domain.BuyerAdditionalProperty,
		})
		if err != nil {
			t.Fatalf("budget %s: %v", budget, err)
		}
		levy, err := engine.CalculateLevy(context.Background(), domain.LevyRequest{
			Amount:    result.MaxPrice,
			BuyerType: domain.BuyerAdditionalProperty,
			Region:    domain.RegionWales,
		})
		if err != nil {
			t.Fatalf("CalculateLevy failed: %v", err)
		}
		if !levy.Total.Equal(result.Levy) {
			t.Errorf("budget %s: solver levy %s, pipeline levy %s", budget, result.Levy, levy.Total)
		}
	}
}

func TestMaxPriceHeadroom(t *testing.T) {
	result, err := newTestSolver().MaxPrice(context.Background(), MaxPriceRequest{
		Budget:    decimal.NewFromInt(18750),
		Region:    domain.RegionEngland,
		BuyerType: domain.BuyerFirstTime,
	})
	if err != nil {
		t.Fatalf("MaxPrice failed: %v", err)
	}
	if !result.Headroom().Equal(decimal.NewFromInt(8750)) {
		t.Errorf("Expected headroom 8750, got %s", result.Headroom())
	}
	if !result.NextLevy.Equal(decimal.RequireFromString("18750.05")) {
		t.Errorf("Expected next levy 18750.05, got %s", result.NextLevy)
	}
}

func TestMaxPriceAcceptsAliases(t *testing.T) {
	result, err := newTestSolver().MaxPrice(context.Background(), MaxPriceRequest{
		Budget:    decimal.NewFromInt(10000),
		Region:    "England",
		BuyerType: "ftb",
	})
	if err != nil {
		t.Fatalf("MaxPrice failed: %v", err)
	}
	if result.Request.BuyerType != domain.BuyerFirstTime {
		t.Errorf("Expected canonical buyer type, got %s", result.Request.BuyerType)
	}
}

func TestMaxPriceErrors(t *testing.T) {
	solver := newTestSolver()

	t.Run("negative budget", func(t *testing.T) {
		_, err := solver.MaxPrice(context.Background(), MaxPriceRequest{Budget: decimal.NewFromInt(-1)})
		var be *BreakEvenError
		if !errors.As(err, &be) {
			t.Fatalf("Expected BreakEvenError, got %v", err)
		}
		if be.Operation != "validate_request" {
			t.Errorf("Expected validate_request, got %s", be.Operation)
		}
	})

	t.Run("unknown region", func(t *testing.T) {
		_, err := solver.MaxPrice(context.Background(), MaxPriceRequest{Budget: decimal.NewFromInt(1), Region: "mars"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Expected validation error in chain, got %v", err)
		}
	})

	t.Run("untaxed schedule", func(t *testing.T) {
		cfg := calculation.DefaultRegulatoryConfig()
		rules := cfg.Levy[domain.RegionEngland]
		rules.Commercial = []domain.RateBand{domain.TopBand(0, "0")}
		cfg.Levy[domain.RegionEngland] = rules
		engine, err := calculation.NewCalculationEngineWithConfig(cfg)
		if err != nil {
			t.Fatalf("engine: %v", err)
		}
		_, err = NewDefaultSolver(engine).MaxPrice(context.Background(), MaxPriceRequest{
			Budget:    decimal.NewFromInt(100),
			Region:    domain.RegionEngland,
			BuyerType: domain.BuyerCommercial,
		})
		if err == nil || !strings.Contains(err.Error(), "no maximum price") {
			t.Errorf("Expected unbounded error, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := solver.MaxPrice(ctx, MaxPriceRequest{Budget: decimal.NewFromInt(100)})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestMaxPriceAcrossBuyers(t *testing.T) {
	result, err := newTestSolver().MaxPriceAcrossBuyers(context.Background(), decimal.NewFromInt(18750), domain.RegionEngland)
	if err != nil {
		t.Fatalf("MaxPriceAcrossBuyers failed: %v", err)
	}
	if len(result.Results) != len(domain.BuyerTypes) {
		t.Fatalf("Expected %d results, got %d", len(domain.BuyerTypes), len(result.Results))
	}
	if result.Highest.Request.BuyerType != domain.BuyerStandard {
		t.Errorf("Expected standard to reach highest price, got %s", result.Highest.Request.BuyerType)
	}
	if result.Lowest.Request.BuyerType != domain.BuyerAdditionalProperty {
		t.Errorf("Expected additional property to reach lowest price, got %s", result.Lowest.Request.BuyerType)
	}

	var cliff bool
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "relief cap of £625,000") {
			cliff = true
		}
	}
	if !cliff {
		t.Errorf("Expected a relief cap recommendation, got %v", result.Recommendations)
	}
}
