package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuyerType(t *testing.T) {
	tests := map[string]BuyerType{
		"":                    BuyerStandard,
		"Standard":            BuyerStandard,
		"ftb":                 BuyerFirstTime,
		"first_time_buyer":    BuyerFirstTime,
		"buy-to-let":          BuyerAdditionalProperty,
		"additional-property": BuyerAdditionalProperty,
		"non-residential":     BuyerCommercial,
	}
	for in, want := range tests {
		got, err := ParseBuyerType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBuyerType("landlord")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseRegion(t *testing.T) {
	for in, want := range map[string]Region{
		"":         RegionEngland,
		"NI":       RegionNorthernIreland,
		" wales ":  RegionWales,
		"Scotland": RegionScotland,
	} {
		got, err := ParseRegion(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRegion("mars")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, "SDLT", RegionNorthernIreland.TaxName())
	assert.Equal(t, "LBTT", RegionScotland.TaxName())
	assert.Equal(t, "LTT", RegionWales.TaxName())
}

func TestParseIncomeFrequency(t *testing.T) {
	for in, want := range map[string]IncomeFrequency{
		"":       FrequencyYearly,
		"annual": FrequencyYearly,
		"Month":  FrequencyMonthly,
		"weekly": FrequencyWeekly,
	} {
		got, err := ParseIncomeFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseIncomeFrequency("fortnightly")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney("amount", "£1,250,000.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1250000.5")))

	d, err = ParseMoney("amount", " 26_000 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(26000)))

	_, err = ParseMoney("amount", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseMoney("amount", "lots")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}


func TestValidationError(t *testing.T) {
	err := NewValidationError("child_count", "must be at least %d", 1)
	assert.Equal(t, "child_count: must be at least 1", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))

	bare := &ValidationError{Message: "bad input"}
	assert.Equal(t, "bad input", bare.Error())

	assert.Equal(t, "schedule: schedule is nil", (&ScheduleError{Message: "schedule is nil"}).Error())
	assert.Equal(t, "schedule x band 2: gap", (&ScheduleError{Schedule: "x", Band: 2, Message: "gap"}).Error())
}

func TestIncomeRegime_String(t *testing.T) {
	assert.Equal(t, "Nil Rate", RegimeNil.String())
	assert.Equal(t, "Basic Plus Rate", RegimeBasicPlus.String())
	assert.Equal(t, "Unknown", IncomeRegime(42).String())
}
