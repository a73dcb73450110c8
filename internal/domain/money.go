package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses a user-typed amount such as "£1,250,000" or "26000.50".
func ParseMoney(field, s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("£", "", ",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, NewValidationError(field, "is required")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, NewValidationError(field, "%q is not a number", s)
	}
	return d, nil
}
