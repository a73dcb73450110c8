package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/output"
	"github.com/rgehrsitz/bandcalc/internal/tui/components"
	"github.com/rgehrsitz/bandcalc/internal/tui/tuistyles"
)

const (
	maintFieldIncome = iota
	maintFieldFrequency
	maintFieldChildren
	maintFieldDependents
	maintFieldNights
	maintFieldCount
)

var frequencies = []domain.IncomeFrequency{domain.FrequencyYearly, domain.FrequencyMonthly, domain.FrequencyWeekly}

// MaintenanceModel is the child maintenance form and its last result
type MaintenanceModel struct {
	income     textinput.Model
	children   textinput.Model
	dependents textinput.Model
	nights     textinput.Model
	freqIdx    int
	focus      int

	result *domain.MaintenanceResult
	err    error

	width  int
	height int
}

func numberInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit
	return ti
}

// NewMaintenanceModel creates a new maintenance scene model
func NewMaintenanceModel() *MaintenanceModel {
	m := &MaintenanceModel{
		income:     numberInput("26,000", 14),
		children:   numberInput("1", 2),
		dependents: numberInput("0", 2),
		nights:     numberInput("0", 3),
	}
	m.income.Prompt = "£"
	m.children.SetValue("1")
	m.dependents.SetValue("0")
	m.nights.SetValue("0")
	m.setFocus(maintFieldIncome)
	return m
}

// SetSize updates the model dimensions
func (m *MaintenanceModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResult stores the outcome of a submitted form
func (m *MaintenanceModel) SetResult(result *domain.MaintenanceResult, err error) {
	m.result, m.err = result, err
}

// Request builds a maintenance request from the form fields
func (m *MaintenanceModel) Request() (domain.MaintenanceRequest, error) {
	income, err := domain.ParseMoney("gross_income", m.income.Value())
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}
	children, err := parseCount("child_count", m.children.Value())
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}
	dependents, err := parseCount("other_dependents_count", m.dependents.Value())
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}
	nights, err := parseCount("shared_care_nights", m.nights.Value())
	if err != nil {
		return domain.MaintenanceRequest{}, err
	}
	return domain.MaintenanceRequest{
		GrossIncome:          income,
		IncomeFrequency:      frequencies[m.freqIdx],
		ChildCount:           children,
		OtherDependentsCount: dependents,
		SharedCareNights:     nights,
	}, nil
}

func parseCount(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewValidationError(field, "%q is not a whole number", s)
	}
	return n, nil
}

// Update handles messages for the maintenance scene
func (m *MaintenanceModel) Update(msg tea.Msg) (*MaintenanceModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % maintFieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + maintFieldCount - 1) % maintFieldCount)
			return m, nil
		case "left", "right":
			if m.focus == maintFieldFrequency {
				step := 1
				if keyMsg.String() == "left" {
					step = -1
				}
				m.freqIdx = wrap(m.freqIdx+step, len(frequencies))
				return m, nil
			}
		case "enter":
			req, err := m.Request()
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, submitMaintenance(req)
		}
	}

	input := m.focusedInput()
	if input == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m *MaintenanceModel) focusedInput() *textinput.Model {
	switch m.focus {
	case maintFieldIncome:
		return &m.income
	case maintFieldChildren:
		return &m.children
	case maintFieldDependents:
		return &m.dependents
	case maintFieldNights:
		return &m.nights
	}
	return nil
}

func (m *MaintenanceModel) setFocus(field int) {
	m.focus = field
	for _, ti := range []*textinput.Model{&m.income, &m.children, &m.dependents, &m.nights} {
		ti.Blur()
	}
	if ti := m.focusedInput(); ti != nil {
		ti.Focus()
	}
}

// View renders the maintenance form and result
func (m *MaintenanceModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.SectionStyle.Render("Child Maintenance Estimate"))
	content.WriteString("\n\n")

	content.WriteString(field("Gross income", m.income.View(), m.focus == maintFieldIncome))
	content.WriteString(field("Income is", choice(string(frequencies[m.freqIdx])), m.focus == maintFieldFrequency))
	content.WriteString(field("Children", m.children.View(), m.focus == maintFieldChildren))
	content.WriteString(field("Other children at home", m.dependents.View(), m.focus == maintFieldDependents))
	content.WriteString(field("Shared care nights", m.nights.View(), m.focus == maintFieldNights))
	content.WriteString("\n")

	if m.err != nil {
		content.WriteString(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
		content.WriteString("\n")
	} else if m.result != nil {
		content.WriteString(m.renderResult())
	}

	content.WriteString("\n")
	content.WriteString(tuistyles.HelpDescStyle.Render("tab: next field • ←/→: change • enter: calculate"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *MaintenanceModel) renderResult() string {
	r := m.result
	var content strings.Builder

	cards := []*components.MetricCard{
		components.NewMetricCard("Weekly", output.FormatCurrency(r.WeeklyAmount)).WithDescription(r.RegimeLabel),
		components.NewMetricCard("Monthly", output.FormatCurrency(r.MonthlyAmount)),
		components.NewMetricCard("Yearly", output.FormatCurrency(r.YearlyAmount)),
	}
	content.WriteString(components.MetricGrid(cards, 3))
	content.WriteString("\n")

	for _, line := range r.Breakdown {
		content.WriteString(fmt.Sprintf("  %s\n", line))
	}
	return content.String()
}
