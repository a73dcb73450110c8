package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// JSONFormatter renders results as JSON. Decimals are emitted as strings so
// pence survive a round trip.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.BatchResults) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(results, "", "  ")
	}
	return json.Marshal(results)
}
