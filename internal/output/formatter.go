package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a set of calculation results as bytes.
type Formatter interface {
	Name() string
	Format(results *domain.BatchResults) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(results *domain.BatchResults) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.BatchResults) ([]byte, error) {
	return f.F(results)
}

// AvailableFormatterNames lists the accepted --format values.
func AvailableFormatterNames() []string {
	return []string{"console", "console-plain", "json", "csv", "html", "pdf"}
}

// GetFormatterByName returns the formatter registered under name.
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "console", "":
		return ConsoleFormatter{}
	case "console-plain", "plain":
		return ConsoleFormatter{Plain: true}
	case "json":
		return JSONFormatter{Pretty: true}
	case "csv":
		return CSVFormatter{}
	case "html":
		return HTMLFormatter{}
	case "pdf":
		return PDFFormatter{}
	}
	return nil
}

// IsBinary reports whether a format must be written to a file rather than a
// terminal.
func IsBinary(name string) bool {
	return strings.EqualFold(name, "pdf")
}

// WriteFormatted renders results and writes them to a timestamped file in the
// working directory, returning the filename.
func WriteFormatted(f Formatter, results *domain.BatchResults, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bandcalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats an amount in pounds with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-£" + domain.GroupThousands(amount.Neg().StringFixed(2))
	}
	return "£" + domain.GroupThousands(amount.StringFixed(2))
}

// FormatPercentage formats a fraction such as 0.025 as "2.50%".
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
