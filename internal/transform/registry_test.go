package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/bandcalc/internal/domain"
)

func TestParseTransformSpec(t *testing.T) {
	tests := []struct {
		spec       string
		wantName   string
		wantParams map[string]string
		wantErr    bool
	}{
		{"set_buyer:type=first-time-buyer", "set_buyer", map[string]string{"type": "first-time-buyer"}, false},
		{"set_nights: nights=104 , case=alex", "set_nights", map[string]string{"nights": "104", "case": "alex"}, false},
		{"set_region", "set_region", map[string]string{}, false},
		{":type=x", "", nil, true},
		{"set_buyer:type", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			name, params, err := ParseTransformSpec(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTransformSpec() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(params) != len(tt.wantParams) {
				t.Fatalf("params = %v, want %v", params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if params[k] != v {
					t.Errorf("params[%q] = %q, want %q", k, params[k], v)
				}
			}
		})
	}
}

func TestRegistryParse(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.Parse("set_buyer:type=ftb,case=house")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	buyer, ok := tr.(*SetBuyerType)
	if !ok {
		t.Fatalf("Expected *SetBuyerType, got %T", tr)
	}
	if buyer.BuyerType != domain.BuyerFirstTime || buyer.Case != "house" {
		t.Errorf("Unexpected transform: %+v", buyer)
	}

	tr, err = registry.Parse("adjust_price:amount=+25000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if price := tr.(*AdjustPrice); price.Delta == nil || price.Delta.String() != "25000" {
		t.Errorf("Expected delta 25000, got %+v", price)
	}
}

func TestRegistryErrors(t *testing.T) {
	registry := NewTransformRegistry()
	tests := []struct {
		spec string
		want string
	}{
		{"retire_early:months=6", "unknown transform"},
		{"set_buyer", "requires 'type' parameter"},
		{"set_region:region=mars", "region"},
		{"set_nights:nights=many", "invalid nights"},
		{"adjust_price:amount=1,pct=2", "exactly one"},
		{"adjust_income:pct=abc", "invalid pct"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := registry.Parse(tt.spec)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestRegistryList(t *testing.T) {
	names := NewTransformRegistry().List()
	if len(names) != 7 {
		t.Fatalf("Expected 7 transforms, got %d: %v", len(names), names)
	}
	if names[0] != "adjust_income" {
		t.Errorf("Expected sorted names, first is %s", names[0])
	}
}
