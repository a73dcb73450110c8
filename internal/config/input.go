package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of batch input and rate table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a batch configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if isJSON(filename) {
		if err := decodeJSON(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates every calculation in a batch before any runs
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Levy) == 0 && len(config.Maintenance) == 0 {
		return fmt.Errorf("no calculations provided")
	}

	names := make(map[string]bool)
	checkName := func(kind string, i int, name string) error {
		if name == "" {
			return fmt.Errorf("%s %d: name is required", kind, i)
		}
		if names[name] {
			return fmt.Errorf("%s %d: duplicate name %q", kind, i, name)
		}
		names[name] = true
		return nil
	}

	for i, c := range config.Levy {
		if err := checkName("levy", i, c.Name); err != nil {
			return err
		}
		if err := calculation.ValidateLevyRequest(c.LevyRequest); err != nil {
			return fmt.Errorf("levy %s validation failed: %w", c.Name, err)
		}
	}
	for i, c := range config.Maintenance {
		if err := checkName("maintenance", i, c.Name); err != nil {
			return err
		}
		if err := calculation.ValidateMaintenanceRequest(c.MaintenanceRequest); err != nil {
			return fmt.Errorf("maintenance %s validation failed: %w", c.Name, err)
		}
	}
	return nil
}

// LoadRegulatoryConfig loads rate tables from a YAML or JSON file
func (ip *InputParser) LoadRegulatoryConfig(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory config file %s: %w", filename, err)
	}

	var config domain.RegulatoryConfig
	if isJSON(filename) {
		if err := decodeJSON(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse regulatory JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}

	if err := ip.validateRegulatoryConfig(&config); err != nil {
		return nil, fmt.Errorf("regulatory config validation failed: %w", err)
	}

	return &config, nil
}

// validateRegulatoryConfig checks the shape of a rate file. Band partitions
// and maintenance tables are checked when the engine is built.
func (ip *InputParser) validateRegulatoryConfig(config *domain.RegulatoryConfig) error {
	if config.Metadata.TaxYear == "" {
		return fmt.Errorf("metadata tax_year is required")
	}
	if len(config.Levy) == 0 {
		return fmt.Errorf("at least one region's levy rules are required")
	}
	for region, rules := range config.Levy {
		if _, err := domain.ParseRegion(string(region)); err != nil {
			return err
		}
		if len(rules.Standard) == 0 {
			return fmt.Errorf("%s: standard bands are required", region)
		}
		if len(rules.Commercial) == 0 {
			return fmt.Errorf("%s: commercial bands are required", region)
		}
	}
	m := config.Maintenance
	if len(m.BasicRates) == 0 {
		return fmt.Errorf("child_maintenance basic_rates are required")
	}
	if len(m.SharedCare) == 0 {
		return fmt.Errorf("child_maintenance shared_care bands are required")
	}
	return nil
}

// LoadEngine builds a calculation engine from a rate file, or from the
// compiled-in tables when ratesFile is empty.
func (ip *InputParser) LoadEngine(ratesFile string) (*calculation.CalculationEngine, error) {
	if ratesFile == "" {
		return calculation.NewCalculationEngine(), nil
	}
	regulatory, err := ip.LoadRegulatoryConfig(ratesFile)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewCalculationEngineWithConfig(regulatory)
	if err != nil {
		return nil, fmt.Errorf("invalid rate tables in %s: %w", ratesFile, err)
	}
	return engine, nil
}

func isJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
