package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Profile",
		"Type",
		"Region",
		"Buyer Type",
		"Amount",
		"Levy",
		"Surcharge",
		"Effective Rate",
		"Relief Applied",
		"Diff from Base",
		"% Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.Amount, compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(compSet.Amount, &alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(amount decimal.Decimal, result *ComparisonResult, kind string) []string {
	return []string{
		result.Profile.Name,
		kind,
		string(result.Profile.Region),
		string(result.Profile.BuyerType),
		amount.StringFixed(2),
		result.Total.StringFixed(2),
		result.Surcharge.StringFixed(2),
		result.EffectiveRate.StringFixed(6),
		strconv.FormatBool(result.ReliefApplied),
		result.DiffFromBase.StringFixed(2),
		result.PctFromBase.StringFixed(2),
	}
}

// FormatSweep generates CSV output for a price sweep, one column per profile
func (cf *CSVFormatter) FormatSweep(sweep *SweepResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write(append([]string{"Amount"}, sweep.ProfileNames()...)); err != nil {
		return "", err
	}
	for _, row := range sweep.Rows {
		record := append([]string{row.Amount.StringFixed(2)}, lo.Map(row.Totals, func(d decimal.Decimal, _ int) string {
			return d.StringFixed(2)
		})...)
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
