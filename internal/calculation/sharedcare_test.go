package calculation

import (
	"testing"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSharedCare(t *testing.T) *SharedCareTable {
	t.Helper()
	table, err := NewSharedCareTable(DefaultRegulatoryConfig().Maintenance.SharedCare)
	require.NoError(t, err)
	return table
}

func TestSharedCareTable_Reduce(t *testing.T) {
	table := defaultSharedCare(t)

	tests := []struct {
		name        string
		base        string
		nights      int
		children    int
		reduced     string
		applied     bool
		description string
	}{
		{"below threshold", "60", 51, 1, "60", false, ""},
		{"first band", "60", 80, 1, "51.43", true, "52-103 nights: 1/7 (14%) reduction"},
		{"first band lower edge", "60", 52, 1, "51.43", true, "52-103 nights: 1/7 (14%) reduction"},
		{"second band", "60", 104, 1, "42.86", true, "104-155 nights: 2/7 (29%) reduction"},
		{"third band", "60", 174, 1, "34.29", true, "156-174 nights: 3/7 (43%) reduction"},
		{"composite one child", "60", 175, 1, "23", true, "175+ nights: 50% reduction + £7 per child"},
		{"composite two children", "80", 365, 2, "26", true, "175+ nights: 50% reduction + £7 per child"},
		{"composite floors at zero", "7", 200, 1, "0", true, "175+ nights: 50% reduction + £7 per child"},
		{"nothing to reduce", "0", 200, 1, "0", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Reduce(dec(tt.base), tt.nights, tt.children)
			assert.True(t, RoundMoney(got.Reduced).Equal(dec(tt.reduced)), "reduced = %s, expected %s", got.Reduced, tt.reduced)
			assert.Equal(t, tt.applied, got.Applied)
			assert.Equal(t, tt.description, got.Description)
			assert.False(t, got.Reduced.IsNegative())
		})
	}
}

func TestSharedCareTable_Threshold(t *testing.T) {
	assert.Equal(t, 52, defaultSharedCare(t).Threshold())
}

func TestNewSharedCareTable_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		bands []domain.SharedCareBand
	}{
		{"overlap", []domain.SharedCareBand{
			{MinNights: 52, MaxNights: 110, Fraction: domain.NewRatio(1, 7)},
			{MinNights: 104, Fraction: domain.NewRatio(2, 7)},
		}},
		{"open band not last", []domain.SharedCareBand{
			{MinNights: 52, Fraction: domain.NewRatio(1, 7)},
			{MinNights: 104, Fraction: domain.NewRatio(2, 7)},
		}},
		{"fraction above one", []domain.SharedCareBand{
			{MinNights: 52, Fraction: domain.NewRatio(8, 7)},
		}},
		{"zero denominator", []domain.SharedCareBand{
			{MinNights: 52, Fraction: domain.Ratio{Num: 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSharedCareTable(tt.bands)
			assert.Error(t, err)
		})
	}
}
