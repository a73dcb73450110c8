package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateBand is one tier of a marginal rate curve. A nil Upper means the band
// is unbounded above.
type RateBand struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the band extends to infinity.
func (b RateBand) IsUnbounded() bool {
	return b.Upper == nil
}

// Contains reports whether amount falls inside the band's [Lower, Upper) span.
func (b RateBand) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.Lower) {
		return false
	}
	return b.IsUnbounded() || amount.LessThan(*b.Upper)
}

// Label renders the band the way the calculators print it,
// e.g. "£250,001 to £925,000 @ 5%" or "Over £1,500,000 @ 12%".
func (b RateBand) Label() string {
	rate := b.Rate.Mul(decimal.NewFromInt(100)).String() + "%"
	switch {
	case b.IsUnbounded() && b.Lower.IsZero():
		return "All @ " + rate
	case b.IsUnbounded():
		return fmt.Sprintf("Over %s @ %s", pounds(b.Lower), rate)
	case b.Lower.IsZero():
		return fmt.Sprintf("Up to %s @ %s", pounds(*b.Upper), rate)
	default:
		return fmt.Sprintf("%s to %s @ %s", pounds(b.Lower.Add(decimal.NewFromInt(1))), pounds(*b.Upper), rate)
	}
}

// RateSchedule is an ordered, immutable partition of [0, ∞) into bands.
// Schedules are built once at startup and shared by reference.
type RateSchedule struct {
	Name  string     `yaml:"name" json:"name"`
	Bands []RateBand `yaml:"bands" json:"bands"`
}

// NewRateSchedule validates bands and returns a schedule. Bands must start at
// zero, be sorted and contiguous, carry non-negative rates and end with
// exactly one unbounded band.
func NewRateSchedule(name string, bands []RateBand) (*RateSchedule, error) {
	s := &RateSchedule{Name: name, Bands: append([]RateBand(nil), bands...)}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the partition invariant.
func (s *RateSchedule) Validate() error {
	if s == nil {
		return &ScheduleError{Message: "schedule is nil"}
	}
	if len(s.Bands) == 0 {
		return &ScheduleError{Schedule: s.Name, Message: "schedule has no bands"}
	}
	if !s.Bands[0].Lower.IsZero() {
		return &ScheduleError{Schedule: s.Name, Band: 0, Message: "first band must start at zero"}
	}
	for i, b := range s.Bands {
		if b.Rate.IsNegative() {
			return &ScheduleError{Schedule: s.Name, Band: i, Message: "rate cannot be negative"}
		}
		last := i == len(s.Bands)-1
		if b.IsUnbounded() {
			if !last {
				return &ScheduleError{Schedule: s.Name, Band: i, Message: "only the last band may be unbounded"}
			}
			continue
		}
		if last {
			return &ScheduleError{Schedule: s.Name, Band: i, Message: "last band must be unbounded"}
		}
		if !b.Upper.GreaterThan(b.Lower) {
			return &ScheduleError{Schedule: s.Name, Band: i, Message: "upper bound must exceed lower bound"}
		}
		if !s.Bands[i+1].Lower.Equal(*b.Upper) {
			return &ScheduleError{Schedule: s.Name, Band: i + 1, Message: "bands must be contiguous"}
		}
	}
	return nil
}

// Band creates a bounded band. Used by static tables.
func Band(lower, upper int64, rate string) RateBand {
	u := decimal.NewFromInt(upper)
	return RateBand{Lower: decimal.NewFromInt(lower), Upper: &u, Rate: decimal.RequireFromString(rate)}
}

// TopBand creates the unbounded band starting at lower.
func TopBand(lower int64, rate string) RateBand {
	return RateBand{Lower: decimal.NewFromInt(lower), Rate: decimal.RequireFromString(rate)}
}

func pounds(d decimal.Decimal) string {
	return "£" + groupThousands(d.StringFixed(0))
}

func groupThousands(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	var out []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	if neg {
		return "-" + string(out) + frac
	}
	return string(out) + frac
}

// GroupThousands inserts thousands separators into a plain decimal string.
func GroupThousands(s string) string {
	return groupThousands(s)
}
