package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

type profileKey struct {
	region domain.Region
	buyer  domain.BuyerType
}

// CalculationEngine orchestrates both calculators. All tables are resolved
// once at construction and never mutated, so an engine may be shared across
// goroutines without locking.
type CalculationEngine struct {
	Regulatory *domain.RegulatoryConfig

	profiles   map[profileKey]*domain.LevyProfile
	classifier *RegimeClassifier
	dependents *DependentsTable
	sharedCare *SharedCareTable
	weeks      decimal.Decimal
	months     decimal.Decimal
}

// NewCalculationEngine creates an engine over the compiled-in tables.
func NewCalculationEngine() *CalculationEngine {
	engine, err := NewCalculationEngineWithConfig(DefaultRegulatoryConfig())
	if err != nil {
		panic(fmt.Sprintf("default rate tables are invalid: %v", err))
	}
	return engine
}

// NewCalculationEngineWithConfig builds an engine from loaded tables,
// validating every schedule.
func NewCalculationEngineWithConfig(cfg *domain.RegulatoryConfig) (*CalculationEngine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("regulatory config is required")
	}
	engine := &CalculationEngine{
		Regulatory: cfg,
		profiles:   make(map[profileKey]*domain.LevyProfile),
	}
	for region, rules := range cfg.Levy {
		if err := engine.addRegion(region, rules); err != nil {
			return nil, fmt.Errorf("levy rules for %s: %w", region, err)
		}
	}

	var err error
	m := cfg.Maintenance
	if engine.classifier, err = NewRegimeClassifier(m); err != nil {
		return nil, fmt.Errorf("child maintenance: %w", err)
	}
	if engine.dependents, err = NewDependentsTable(m.OtherDependents); err != nil {
		return nil, fmt.Errorf("child maintenance: %w", err)
	}
	if engine.sharedCare, err = NewSharedCareTable(m.SharedCare); err != nil {
		return nil, fmt.Errorf("child maintenance: %w", err)
	}
	if m.WeeksPerYear <= 0 || m.MonthsPerYear <= 0 {
		return nil, fmt.Errorf("child maintenance: weeks and months per year must be positive")
	}
	engine.weeks = decimal.NewFromInt(m.WeeksPerYear)
	engine.months = decimal.NewFromInt(m.MonthsPerYear)
	return engine, nil
}

func (ce *CalculationEngine) addRegion(region domain.Region, rules domain.RegionLevyRules) error {
	tax := region.TaxName()
	standard, err := domain.NewRateSchedule(tax+" standard", rules.Standard)
	if err != nil {
		return err
	}
	commercial, err := domain.NewRateSchedule(tax+" non-residential", rules.Commercial)
	if err != nil {
		return err
	}

	ce.profiles[profileKey{region, domain.BuyerStandard}] = &domain.LevyProfile{
		Region: region, BuyerType: domain.BuyerStandard, Schedule: standard,
	}
	ce.profiles[profileKey{region, domain.BuyerCommercial}] = &domain.LevyProfile{
		Region: region, BuyerType: domain.BuyerCommercial, Schedule: commercial,
	}

	ftb := &domain.LevyProfile{Region: region, BuyerType: domain.BuyerFirstTime, Schedule: standard}
	if rules.FirstTimeBuyer != nil {
		relief, err := domain.NewRateSchedule(tax+" first-time-buyer", rules.FirstTimeBuyer.Bands)
		if err != nil {
			return err
		}
		ftb.Relief = &domain.ReliefPolicy{
			EligibilityCap: rules.FirstTimeBuyer.EligibilityCap,
			Discounted:     relief,
			Fallback:       standard,
		}
	}
	ce.profiles[profileKey{region, domain.BuyerFirstTime}] = ftb

	additional := &domain.LevyProfile{Region: region, BuyerType: domain.BuyerAdditionalProperty, Schedule: standard}
	if s := rules.AdditionalProperty; s != nil {
		if s.FlatRate.IsNegative() {
			return fmt.Errorf("surcharge rate cannot be negative")
		}
		additional.Surcharge = &domain.SurchargePolicy{FlatRate: s.FlatRate}
	}
	ce.profiles[profileKey{region, domain.BuyerAdditionalProperty}] = additional
	return nil
}

// Profile returns the resolved levy configuration for a region and buyer type.
func (ce *CalculationEngine) Profile(region domain.Region, buyer domain.BuyerType) (*domain.LevyProfile, error) {
	p, ok := ce.profiles[profileKey{region, buyer}]
	if !ok {
		return nil, domain.NewValidationError("region", "no %s rates configured for %s", buyer, region)
	}
	return p, nil
}

// Schedules lists every distinct schedule the engine holds, for display.
// Regions sharing a tax name share schedules, so only the first is listed.
func (ce *CalculationEngine) Schedules() []*domain.RateSchedule {
	seen := make(map[string]bool)
	var out []*domain.RateSchedule
	add := func(s *domain.RateSchedule) {
		if s != nil && !seen[s.Name] {
			seen[s.Name] = true
			out = append(out, s)
		}
	}
	for _, region := range domain.Regions {
		for _, buyer := range domain.BuyerTypes {
			p, ok := ce.profiles[profileKey{region, buyer}]
			if !ok {
				continue
			}
			add(p.Schedule)
			if p.Relief != nil {
				add(p.Relief.Discounted)
			}
		}
	}
	return out
}

// Classifier exposes the maintenance regime classifier.
func (ce *CalculationEngine) Classifier() *RegimeClassifier {
	return ce.classifier
}
