package output

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestResults(t *testing.T) *domain.BatchResults {
	t.Helper()
	engine := calculation.NewCalculationEngine()
	results, err := engine.RunBatch(t.Context(), &domain.Configuration{
		Metadata: domain.InputMetadata{Description: "Test Household"},
		Levy: []domain.NamedLevyRequest{
			{Name: "London flat", LevyRequest: domain.LevyRequest{Amount: decimal.NewFromInt(500000), BuyerType: domain.BuyerAdditionalProperty}},
		},
		Maintenance: []domain.NamedMaintenanceCase{
			{Name: "Shared care", MaintenanceRequest: domain.MaintenanceRequest{
				GrossIncome: decimal.NewFromInt(500), IncomeFrequency: domain.FrequencyWeekly, ChildCount: 1, SharedCareNights: 80,
			}},
		},
	})
	require.NoError(t, err)
	return results
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var receivedResults *domain.BatchResults

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(results *domain.BatchResults) ([]byte, error) {
			called = true
			receivedResults = results
			return []byte("test output"), nil
		},
	}

	testResults := buildTestResults(t)
	output, err := formatter.Format(testResults)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, testResults, receivedResults, "Should pass the results")
	assert.Equal(t, []byte("test output"), output, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(results *domain.BatchResults) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestResults(t), "txt")

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, filename, "bandcalc_report_", "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".txt"), "Should have correct extension")

	content, err := os.ReadFile(filename)
	assert.NoError(t, err, "Should be able to read the file")
	assert.Equal(t, "test output content", string(content), "Should have correct content")
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(results *domain.BatchResults) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestResults(t), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestConsoleFormatter_Format(t *testing.T) {
	formatter := ConsoleFormatter{Plain: true}
	assert.Equal(t, "console", formatter.Name())

	output, err := formatter.Format(buildTestResults(t))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "Test Household", "Should have header")
	assert.Contains(t, content, "London flat: SDLT on £500,000.00")
	assert.Contains(t, content, "£250,001 to £925,000 @ 5%")
	assert.Contains(t, content, "Surcharge 5% on £500,000")
	assert.Contains(t, content, "Total: £37,500.00")
	assert.Contains(t, content, "Effective rate: 7.50%")
	assert.Contains(t, content, "52-103 nights: 1/7 (14%) reduction")
	assert.Contains(t, content, "Weekly: £51.43")
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := CSVFormatter{}
	assert.Equal(t, "csv", formatter.Name())

	output, err := formatter.Format(buildTestResults(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Kind,Name,Region"), "Should have CSV header")
	assert.Contains(t, lines[1], "levy,London flat,england,additional-property,500000.00")
	assert.Contains(t, lines[1], "37500.00")
	assert.Contains(t, lines[2], "maintenance,Shared care")
	assert.Contains(t, lines[2], "Basic Rate,51.43,222.86,2674.29")
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := JSONFormatter{Pretty: true}
	assert.Equal(t, "json", formatter.Name())

	output, err := formatter.Format(buildTestResults(t))
	require.NoError(t, err)

	var decoded struct {
		Description string `json:"description"`
		Levy        []struct {
			Name   string `json:"name"`
			Result struct {
				Total string `json:"total"`
			} `json:"result"`
		} `json:"levy"`
		Maintenance []struct {
			Result struct {
				WeeklyAmount string `json:"weeklyAmount"`
				RegimeLabel  string `json:"regimeLabel"`
			} `json:"result"`
		} `json:"maintenance"`
	}
	require.NoError(t, json.Unmarshal(output, &decoded))
	assert.Equal(t, "Test Household", decoded.Description)
	assert.Equal(t, "London flat", decoded.Levy[0].Name)
	assert.Equal(t, "37500", decoded.Levy[0].Result.Total)
	assert.Equal(t, "51.43", decoded.Maintenance[0].Result.WeeklyAmount)
	assert.Equal(t, "Basic Rate", decoded.Maintenance[0].Result.RegimeLabel)
	assert.NotContains(t, string(output), `"Regime"`, "Regime enum is internal")

	compact, err := JSONFormatter{}.Format(buildTestResults(t))
	require.NoError(t, err)
	assert.False(t, bytes.Contains(compact, []byte("\n  ")))
}

func TestHTMLFormatter_Format(t *testing.T) {
	formatter := HTMLFormatter{}
	assert.Equal(t, "html", formatter.Name())

	output, err := formatter.Format(buildTestResults(t))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "<!DOCTYPE html>", "Should have HTML structure")
	assert.Contains(t, content, "<title>Test Household</title>", "Should have title")
	assert.Contains(t, content, "£37,500.00")
	assert.Contains(t, content, "Final weekly amount: £51.43")
}

func TestPDFFormatter_Format(t *testing.T) {
	formatter := PDFFormatter{}
	assert.Equal(t, "pdf", formatter.Name())

	output, err := formatter.Format(buildTestResults(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(output, []byte("%PDF-")), "Should be a PDF document")

	empty, err := formatter.Format(&domain.BatchResults{})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}

func TestAvailableFormatterNames(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		formatter := GetFormatterByName(name)
		assert.NotNil(t, formatter, name)
	}
	assert.True(t, IsBinary("pdf"))
	assert.False(t, IsBinary("html"))
}

func TestGetFormatterByName_NonExistentFormatter(t *testing.T) {
	formatter := GetFormatterByName("non-existent")

	assert.Nil(t, formatter, "Should return nil formatter for non-existent name")
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "£0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "£18,750.05", FormatCurrency(decimal.RequireFromString("18750.05")))
	assert.Equal(t, "-£1,200.50", FormatCurrency(decimal.RequireFromString("-1200.5")))
	assert.Equal(t, "2.50%", FormatPercentage(decimal.RequireFromString("0.025")))
}
