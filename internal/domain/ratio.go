package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Ratio is an exact fraction such as 1/7. Decimal fractions of sevenths
// would otherwise be truncated before they are applied.
type Ratio struct {
	Num int64
	Den int64
}

// NewRatio returns num/den; den must be positive.
func NewRatio(num, den int64) Ratio {
	return Ratio{Num: num, Den: den}
}

// Of returns x × Num / Den, multiplying first so the single division is the
// only place precision is lost.
func (r Ratio) Of(x decimal.Decimal) decimal.Decimal {
	if r.Den == 0 || r.Num == 0 {
		return decimal.Zero
	}
	return x.Mul(decimal.NewFromInt(r.Num)).Div(decimal.NewFromInt(r.Den))
}

// Decimal returns the ratio as a decimal value.
func (r Ratio) Decimal() decimal.Decimal {
	return r.Of(decimal.NewFromInt(1))
}

// Percent renders the ratio as a whole percentage, e.g. 1/7 -> "14%".
func (r Ratio) Percent() string {
	return r.Decimal().Mul(decimal.NewFromInt(100)).Round(0).String() + "%"
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// MarshalText implements encoding.TextMarshaler.
func (r Ratio) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts "n/d" or a plain integer.
func (r *Ratio) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	d := int64(1)
	if found {
		d, err = strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ratio %q: %w", s, err)
		}
	}
	if d <= 0 {
		return fmt.Errorf("invalid ratio %q: denominator must be positive", s)
	}
	if n < 0 {
		return fmt.Errorf("invalid ratio %q: numerator cannot be negative", s)
	}
	r.Num, r.Den = n, d
	return nil
}
