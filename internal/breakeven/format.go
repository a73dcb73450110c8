package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats max-price results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single max-price result
func (tf *TableFormatter) Format(result *MaxPriceResult) string {
	var sb strings.Builder

	sb.WriteString("MAXIMUM PRICE FOR LEVY BUDGET\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Budget:          £%s\n", tf.formatCurrency(result.Request.Budget)))
	sb.WriteString(fmt.Sprintf("Region:          %s (%s)\n", result.Request.Region, result.Request.Region.TaxName()))
	sb.WriteString(fmt.Sprintf("Buyer Type:      %s\n", result.Request.BuyerType))
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Maximum Price:   £%s\n", tf.formatWhole(result.MaxPrice)))
	sb.WriteString(fmt.Sprintf("Levy:            £%s\n", tf.formatCurrency(result.Levy)))
	sb.WriteString(fmt.Sprintf("Headroom:        £%s\n", tf.formatCurrency(result.Headroom())))
	sb.WriteString(fmt.Sprintf("Next Pound Levy: £%s\n", tf.formatCurrency(result.NextLevy)))
	sb.WriteString(fmt.Sprintf("Relief:          %s\n", tf.formatRelief(result)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti formats results across buyer types
func (tf *TableFormatter) FormatMulti(result *MultiProfileResult) string {
	var sb strings.Builder

	sb.WriteString("MAXIMUM PRICE BY BUYER TYPE\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Budget: £%s   Region: %s\n\n", tf.formatCurrency(result.Budget), result.Region))

	sb.WriteString(fmt.Sprintf("%-22s %14s %12s %12s %8s\n", "Buyer Type", "Max Price", "Levy", "Next Levy", "Relief"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range result.Results {
		sb.WriteString(fmt.Sprintf("%-22s %14s %12s %12s %8s\n",
			tf.truncate(string(r.Request.BuyerType), 22),
			"£"+tf.formatShort(r.MaxPrice),
			"£"+tf.formatShort(r.Levy),
			"£"+tf.formatShort(r.NextLevy),
			tf.formatStatus(r.ReliefApplied)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *MaxPriceResult) (string, error) {
	return jf.marshal(result)
}

// FormatMulti formats multi-buyer results as JSON
func (jf *JSONFormatter) FormatMulti(result *MultiProfileResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatRelief(r *MaxPriceResult) string {
	switch {
	case r.CliffLimited:
		return "applied, limited by eligibility cap"
	case r.ReliefApplied:
		return "applied"
	}
	return "not applied"
}

func (tf *TableFormatter) formatStatus(applied bool) string {
	if applied {
		return "✓"
	}
	return "-"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return domain.GroupThousands(d.StringFixed(2))
}

func (tf *TableFormatter) formatWhole(d decimal.Decimal) string {
	return domain.GroupThousands(d.StringFixed(0))
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
