package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// CSVFormatter writes one row per calculation. Columns that do not apply to
// a calculation kind are left empty.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Kind", "Name",
	"Region", "BuyerType", "Amount", "Schedule", "ReliefApplied", "Surcharge", "Total", "EffectiveRate",
	"WeeklyIncome", "AdjustedIncome", "Regime", "WeeklyAmount", "MonthlyAmount", "YearlyAmount",
}

func (c CSVFormatter) Format(results *domain.BatchResults) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, named := range results.Levy {
		r := named.Result
		row := []string{
			"levy", named.Name,
			string(r.Request.Region), string(r.Request.BuyerType), r.Request.Amount.StringFixed(2),
			r.ScheduleName, strconv.FormatBool(r.ReliefApplied), r.Surcharge.StringFixed(2),
			r.Total.StringFixed(2), r.EffectiveRate.StringFixed(6),
			"", "", "", "", "", "",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, named := range results.Maintenance {
		r := named.Result
		row := []string{
			"maintenance", named.Name,
			"", "", "", "", "", "", "", "",
			r.WeeklyIncome.StringFixed(2), r.AdjustedIncome.StringFixed(2), r.RegimeLabel,
			r.WeeklyAmount.StringFixed(2), r.MonthlyAmount.StringFixed(2), r.YearlyAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
