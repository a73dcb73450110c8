package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SharedCareTable is the stepped reduction applied when the receiving
// parent's children stay overnight with the paying parent.
type SharedCareTable struct {
	bands []domain.SharedCareBand
}

// SharedCareResult describes the reduction applied to a weekly amount.
type SharedCareResult struct {
	Reduced     decimal.Decimal
	Reduction   decimal.Decimal
	Applied     bool
	Band        domain.SharedCareBand
	Description string
}

// NewSharedCareTable validates that bands are ordered and do not overlap.
// Only the last band may be open above.
func NewSharedCareTable(bands []domain.SharedCareBand) (*SharedCareTable, error) {
	sorted := append([]domain.SharedCareBand(nil), bands...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinNights < sorted[j].MinNights })
	for i, b := range sorted {
		if b.MinNights < 0 {
			return nil, fmt.Errorf("shared care band %d: min nights cannot be negative", i)
		}
		if b.MaxNights != 0 && b.MaxNights < b.MinNights {
			return nil, fmt.Errorf("shared care band %d: max nights below min nights", i)
		}
		if b.Fraction.Den <= 0 || b.Fraction.Num > b.Fraction.Den {
			return nil, fmt.Errorf("shared care band %d: fraction must be in [0, 1]", i)
		}
		if b.PerChild != nil && b.PerChild.IsNegative() {
			return nil, fmt.Errorf("shared care band %d: per child amount cannot be negative", i)
		}
		if i == len(sorted)-1 {
			break
		}
		if b.MaxNights == 0 {
			return nil, fmt.Errorf("shared care band %d: only the last band may be open", i)
		}
		if sorted[i+1].MinNights <= b.MaxNights {
			return nil, fmt.Errorf("shared care band %d overlaps band %d", i, i+1)
		}
	}
	return &SharedCareTable{bands: sorted}, nil
}

// Threshold is the fewest nights that earn any reduction.
func (t *SharedCareTable) Threshold() int {
	if len(t.bands) == 0 {
		return 0
	}
	return t.bands[0].MinNights
}

// BandFor returns the band containing nights.
func (t *SharedCareTable) BandFor(nights int) (domain.SharedCareBand, bool) {
	for _, b := range t.bands {
		if b.Contains(nights) {
			return b, true
		}
	}
	return domain.SharedCareBand{}, false
}

// Reduce applies the shared-care reduction. The result never drops below
// zero; the composite top band can otherwise overshoot on small amounts.
func (t *SharedCareTable) Reduce(base decimal.Decimal, nights, childCount int) SharedCareResult {
	band, ok := t.BandFor(nights)
	if !ok || !base.IsPositive() {
		return SharedCareResult{Reduced: base, Reduction: decimal.Zero}
	}

	reduction := band.Fraction.Of(base)
	if band.IsComposite() {
		reduction = reduction.Add(band.PerChild.Mul(decimal.NewFromInt(int64(childCount))))
	}
	reduced := base.Sub(reduction)
	if reduced.IsNegative() {
		reduced = decimal.Zero
	}
	return SharedCareResult{
		Reduced:     reduced,
		Reduction:   reduction,
		Applied:     true,
		Band:        band,
		Description: describeSharedCareBand(band),
	}
}

func describeSharedCareBand(b domain.SharedCareBand) string {
	span := fmt.Sprintf("%d-%d nights", b.MinNights, b.MaxNights)
	if b.MaxNights == 0 {
		span = fmt.Sprintf("%d+ nights", b.MinNights)
	}
	if b.IsComposite() {
		return fmt.Sprintf("%s: %s reduction + %s per child", span, b.Fraction.Percent(), gbpWhole(*b.PerChild))
	}
	return fmt.Sprintf("%s: %s (%s) reduction", span, b.Fraction, b.Fraction.Percent())
}
