package transform

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TransformFactory creates a transform from string parameters.
type TransformFactory func(params map[string]string) (BatchTransform, error)

// TransformRegistry maps transform names to their factories.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// NewTransformRegistry creates a registry with the built-in transforms.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{factories: make(map[string]TransformFactory)}

	registry.Register("set_buyer", createSetBuyerType)
	registry.Register("set_region", createSetRegion)
	registry.Register("adjust_price", createAdjustPrice)
	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("set_nights", createSetSharedCare)
	registry.Register("set_children", createSetChildren)
	registry.Register("set_dependents", createSetDependents)

	return registry
}

// Register adds a transform factory to the registry.
func (tr *TransformRegistry) Register(name string, factory TransformFactory) {
	tr.factories[name] = factory
}

// Create builds a transform by name.
func (tr *TransformRegistry) Create(name string, params map[string]string) (BatchTransform, error) {
	factory, exists := tr.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s (available: %s)", name, strings.Join(tr.List(), ", "))
	}
	return factory(params)
}

// List returns the registered transform names, sorted.
func (tr *TransformRegistry) List() []string {
	names := lo.Keys(tr.factories)
	slices.Sort(names)
	return names
}

// ParseTransformSpec parses "name:key1=value1,key2=value2" into a name and
// parameters. A bare name has no parameters.
func ParseTransformSpec(spec string) (string, map[string]string, error) {
	name, rest, found := strings.Cut(strings.TrimSpace(spec), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("invalid transform spec %q: missing name", spec)
	}

	params := make(map[string]string)
	if !found || strings.TrimSpace(rest) == "" {
		return name, params, nil
	}

	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return "", nil, fmt.Errorf("invalid parameter %q in transform spec (expected key=value)", pair)
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return name, params, nil
}

// Parse builds a transform from a spec string.
func (tr *TransformRegistry) Parse(spec string) (BatchTransform, error) {
	name, params, err := ParseTransformSpec(spec)
	if err != nil {
		return nil, err
	}
	return tr.Create(name, params)
}

// Factory functions

func selector(params map[string]string) Selector {
	return Selector{Case: params["case"]}
}

func requireParam(transform, key string, params map[string]string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func intParam(transform, key string, params map[string]string) (int, error) {
	s, err := requireParam(transform, key, params)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func decimalParam(key, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func createSetBuyerType(params map[string]string) (BatchTransform, error) {
	s, err := requireParam("set_buyer", "type", params)
	if err != nil {
		return nil, err
	}
	buyer, err := domain.ParseBuyerType(s)
	if err != nil {
		return nil, err
	}
	return &SetBuyerType{Selector: selector(params), BuyerType: buyer}, nil
}

func createSetRegion(params map[string]string) (BatchTransform, error) {
	s, err := requireParam("set_region", "region", params)
	if err != nil {
		return nil, err
	}
	region, err := domain.ParseRegion(s)
	if err != nil {
		return nil, err
	}
	return &SetRegion{Selector: selector(params), Region: region}, nil
}

func createAdjustPrice(params map[string]string) (BatchTransform, error) {
	t := &AdjustPrice{Selector: selector(params)}
	if s, ok := params["amount"]; ok {
		d, err := decimalParam("amount", s)
		if err != nil {
			return nil, err
		}
		t.Delta = &d
	}
	if s, ok := params["pct"]; ok {
		d, err := decimalParam("pct", s)
		if err != nil {
			return nil, err
		}
		t.Percent = &d
	}
	if (t.Delta == nil) == (t.Percent == nil) {
		return nil, fmt.Errorf("adjust_price requires exactly one of 'amount' and 'pct' parameters")
	}
	return t, nil
}

func createAdjustIncome(params map[string]string) (BatchTransform, error) {
	s, err := requireParam("adjust_income", "pct", params)
	if err != nil {
		return nil, err
	}
	pct, err := decimalParam("pct", s)
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Selector: selector(params), Percent: pct}, nil
}

func createSetSharedCare(params map[string]string) (BatchTransform, error) {
	n, err := intParam("set_nights", "nights", params)
	if err != nil {
		return nil, err
	}
	return &SetSharedCare{Selector: selector(params), Nights: n}, nil
}

func createSetChildren(params map[string]string) (BatchTransform, error) {
	n, err := intParam("set_children", "count", params)
	if err != nil {
		return nil, err
	}
	return &SetChildren{Selector: selector(params), Count: n}, nil
}

func createSetDependents(params map[string]string) (BatchTransform, error) {
	n, err := intParam("set_dependents", "count", params)
	if err != nil {
		return nil, err
	}
	return &SetDependents{Selector: selector(params), Count: n}, nil
}
