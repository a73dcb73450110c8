package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/bandcalc/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorAccent  = lipgloss.Color("#F25D94")
	colorMuted   = lipgloss.Color("#626262")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	totalStyle   = lipgloss.NewStyle().Bold(true)
)

// ConsoleFormatter renders results for a terminal. Plain disables styling for
// pipes and tests.
type ConsoleFormatter struct {
	Plain bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) style(s lipgloss.Style, text string) string {
	if c.Plain {
		return text
	}
	return s.Render(text)
}

func (c ConsoleFormatter) Format(results *domain.BatchResults) ([]byte, error) {
	var b strings.Builder

	if results.Description != "" {
		b.WriteString(c.style(titleStyle, results.Description))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", len(results.Description)))
		b.WriteString("\n\n")
	}

	for _, r := range results.Levy {
		c.writeLevy(&b, r)
	}
	for _, r := range results.Maintenance {
		c.writeMaintenance(&b, r)
	}
	return []byte(b.String()), nil
}

func (c ConsoleFormatter) writeLevy(b *strings.Builder, named domain.NamedLevyResult) {
	r := named.Result
	heading := fmt.Sprintf("%s on %s", r.Request.Region.TaxName(), FormatCurrency(r.Request.Amount))
	if named.Name != "" {
		heading = named.Name + ": " + heading
	}
	b.WriteString(c.style(headingStyle, heading))
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s (%s)\n", c.style(labelStyle, "Buyer:"), r.Request.BuyerType, r.Request.Region)
	fmt.Fprintf(b, "  %s %s\n", c.style(labelStyle, "Schedule:"), r.ScheduleName)
	if r.ReliefApplied {
		fmt.Fprintf(b, "  %s first-time buyer relief applied\n", c.style(labelStyle, "Relief:"))
	}
	for _, line := range r.Breakdown {
		fmt.Fprintf(b, "    %-38s %14s\n", line.Label, FormatCurrency(line.Amount))
	}
	fmt.Fprintf(b, "  %s %s\n", c.style(totalStyle, "Total:"), c.style(totalStyle, FormatCurrency(r.Total)))
	fmt.Fprintf(b, "  %s %s\n\n", c.style(labelStyle, "Effective rate:"), FormatPercentage(r.EffectiveRate))
}

func (c ConsoleFormatter) writeMaintenance(b *strings.Builder, named domain.NamedMaintenanceResult) {
	r := named.Result
	heading := "Child maintenance"
	if named.Name != "" {
		heading = named.Name + ": " + heading
	}
	b.WriteString(c.style(headingStyle, heading))
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n", c.style(labelStyle, "Rate:"), r.RegimeLabel)
	for _, line := range r.Breakdown {
		fmt.Fprintf(b, "    %s\n", line)
	}
	fmt.Fprintf(b, "  %s %s\n", c.style(totalStyle, "Weekly:"), c.style(totalStyle, FormatCurrency(r.WeeklyAmount)))
	fmt.Fprintf(b, "  %s %s\n", c.style(labelStyle, "Monthly:"), FormatCurrency(r.MonthlyAmount))
	fmt.Fprintf(b, "  %s %s\n\n", c.style(labelStyle, "Yearly:"), FormatCurrency(r.YearlyAmount))
}
