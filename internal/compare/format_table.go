package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing profiles
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("LEVY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Price: £%s\n", tf.formatDecimal(compSet.Amount)))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base Profile: %s\n", compSet.BaseResult.Profile.Name))
	}
	sb.WriteString("\n")

	nameWidth := 32
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Profile",
		numWidth, "Levy",
		numWidth, "Effective",
		numWidth, "vs Base"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single profile row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Profile.Name
	if isBase {
		name += " (base)"
	} else if result.ReliefApplied {
		name += " *"
	}

	delta := "-"
	if !isBase {
		delta = tf.deltaSymbol(result.DiffFromBase) + "£" + tf.formatDecimal(result.DiffFromBase.Abs())
	}

	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "£"+tf.formatDecimal(result.Total),
		numWidth, result.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%",
		numWidth, delta)
}

// formatDecimal formats a decimal for display, abbreviating large amounts
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	}
	return d.StringFixed(2)
}

// deltaSymbol returns the sign shown before a difference
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base: %s £%s | ", compSet.BaseResult.Profile.Name, compSet.BaseResult.Total.StringFixed(2)))
	}
	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.DiffFromBase.IsPositive() {
			change = "+£" + alt.DiffFromBase.StringFixed(2)
		} else if alt.DiffFromBase.IsNegative() {
			change = "-£" + alt.DiffFromBase.Abs().StringFixed(2)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Profile.Name, change))
	}

	return sb.String()
}

// FormatSweep renders a sweep as a fixed-width table
func (tf *TableFormatter) FormatSweep(sweep *SweepResult) string {
	var sb strings.Builder
	colWidth := 24

	sb.WriteString(fmt.Sprintf("%*s", 14, "Price"))
	for _, name := range sweep.ProfileNames() {
		sb.WriteString(fmt.Sprintf(" %*s", colWidth, tf.truncate(name, colWidth)))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 14+len(sweep.Profiles)*(colWidth+1)) + "\n")
	for _, row := range sweep.Rows {
		sb.WriteString(fmt.Sprintf("%*s", 14, "£"+row.Amount.StringFixed(0)))
		for _, total := range row.Totals {
			sb.WriteString(fmt.Sprintf(" %*s", colWidth, "£"+total.StringFixed(2)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
