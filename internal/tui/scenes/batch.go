package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/output"
	"github.com/rgehrsitz/bandcalc/internal/tui/tuistyles"
)

// BatchModel lists the results of a batch file with a selectable detail view
type BatchModel struct {
	results *domain.BatchResults
	cursor  int
	width   int
	height  int
}

// NewBatchModel creates a new batch scene model
func NewBatchModel() *BatchModel {
	return &BatchModel{}
}

// SetResults replaces the displayed results
func (m *BatchModel) SetResults(results *domain.BatchResults) {
	m.results = results
	m.cursor = 0
}

// SetSize updates the model dimensions
func (m *BatchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Len is the number of selectable rows
func (m *BatchModel) Len() int {
	if m.results == nil {
		return 0
	}
	return len(m.results.Levy) + len(m.results.Maintenance)
}

// Cursor is the selected row index
func (m *BatchModel) Cursor() int {
	return m.cursor
}

// Update handles messages for the batch scene
func (m *BatchModel) Update(msg tea.Msg) (*BatchModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Len() == 0 {
		return m, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.Len()-1 {
			m.cursor++
		}
	}
	return m, nil
}

// View renders the batch list and the selected calculation
func (m *BatchModel) View() string {
	var content strings.Builder
	content.WriteString(tuistyles.SectionStyle.Render("Batch Results"))
	content.WriteString("\n\n")

	if m.Len() == 0 {
		content.WriteString(tuistyles.SubtitleStyle.Render("No batch file loaded. Start with: bandcalc-tui --input <file>"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	row := 0
	var detail []string
	for _, l := range m.results.Levy {
		text := fmt.Sprintf("%-32s %-6s %14s", l.Name, l.Result.Request.Region.TaxName(), output.FormatCurrency(l.Result.Total))
		content.WriteString(m.renderRow(row, text))
		if row == m.cursor {
			for _, line := range l.Result.Breakdown {
				detail = append(detail, fmt.Sprintf("%-40s %14s", line.Label, output.FormatCurrency(line.Amount)))
			}
		}
		row++
	}
	for _, c := range m.results.Maintenance {
		text := fmt.Sprintf("%-32s %-6s %14s", c.Name, "CMS", output.FormatCurrency(c.Result.WeeklyAmount)+"/wk")
		content.WriteString(m.renderRow(row, text))
		if row == m.cursor {
			detail = append(detail, c.Result.Breakdown...)
		}
		row++
	}

	content.WriteString("\n")
	for _, line := range detail {
		content.WriteString("  " + tuistyles.InfoStyle.Render(line) + "\n")
	}
	content.WriteString("\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("↑/↓: select"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *BatchModel) renderRow(i int, text string) string {
	if i == m.cursor {
		return tuistyles.SelectedItemStyle.Render("▸ "+text) + "\n"
	}
	return tuistyles.UnselectedItemStyle.Render("  "+text) + "\n"
}
