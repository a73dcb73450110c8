package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/output"
	"github.com/rgehrsitz/bandcalc/internal/tui/components"
	"github.com/rgehrsitz/bandcalc/internal/tui/tuistyles"
)

const (
	levyFieldAmount = iota
	levyFieldRegion
	levyFieldBuyer
	levyFieldCount
)

// LevyModel is the property levy form and its last result
type LevyModel struct {
	amount    textinput.Model
	regionIdx int
	buyerIdx  int
	focus     int

	result *domain.LevyResult
	err    error

	width  int
	height int
}

// NewLevyModel creates a new levy scene model
func NewLevyModel() *LevyModel {
	amount := textinput.New()
	amount.Placeholder = "500,000"
	amount.Prompt = "£"
	amount.CharLimit = 16
	amount.Width = 16
	amount.Focus()

	return &LevyModel{amount: amount}
}

// SetSize updates the model dimensions
func (m *LevyModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResult stores the outcome of a submitted form
func (m *LevyModel) SetResult(result *domain.LevyResult, err error) {
	m.result, m.err = result, err
}

// Request builds a levy request from the form fields
func (m *LevyModel) Request() (domain.LevyRequest, error) {
	amount, err := domain.ParseMoney("amount", m.amount.Value())
	if err != nil {
		return domain.LevyRequest{}, err
	}
	return domain.LevyRequest{
		Amount:    amount,
		Region:    domain.Regions[m.regionIdx],
		BuyerType: domain.BuyerTypes[m.buyerIdx],
	}, nil
}

// Update handles messages for the levy scene
func (m *LevyModel) Update(msg tea.Msg) (*LevyModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.setFocus((m.focus + 1) % levyFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + levyFieldCount - 1) % levyFieldCount)
		return m, nil
	case "left", "right":
		if m.focus != levyFieldAmount {
			step := 1
			if keyMsg.String() == "left" {
				step = -1
			}
			m.cycle(step)
			return m, nil
		}
	case "enter":
		req, err := m.Request()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, submitLevy(req)
	}

	if m.focus == levyFieldAmount {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *LevyModel) setFocus(field int) {
	m.focus = field
	if field == levyFieldAmount {
		m.amount.Focus()
	} else {
		m.amount.Blur()
	}
}

func (m *LevyModel) cycle(step int) {
	switch m.focus {
	case levyFieldRegion:
		m.regionIdx = wrap(m.regionIdx+step, len(domain.Regions))
	case levyFieldBuyer:
		m.buyerIdx = wrap(m.buyerIdx+step, len(domain.BuyerTypes))
	}
}

// View renders the levy form and result
func (m *LevyModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.SectionStyle.Render("Property Transaction Levy"))
	content.WriteString("\n\n")

	region := domain.Regions[m.regionIdx]
	content.WriteString(field("Price", m.amount.View(), m.focus == levyFieldAmount))
	content.WriteString(field("Region", choice(fmt.Sprintf("%s (%s)", region, region.TaxName())), m.focus == levyFieldRegion))
	content.WriteString(field("Buyer", choice(string(domain.BuyerTypes[m.buyerIdx])), m.focus == levyFieldBuyer))
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

func (m *LevyModel) renderResult() string {
	r := m.result
	var content strings.Builder

	relief := "no"
	if r.ReliefApplied {
		relief = "yes"
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Total", output.FormatCurrency(r.Total)),
		components.NewMetricCard("Effective rate", r.EffectiveRate.Mul(hundred).StringFixed(2)+"%"),
		components.NewMetricCard("Relief applied", relief).WithDescription(r.ScheduleName),
	}
	content.WriteString(components.MetricGrid(cards, 3))
	content.WriteString("\n")

	for _, line := range r.Breakdown {
		content.WriteString(fmt.Sprintf("  %-40s %14s\n", line.Label, output.FormatCurrency(line.Amount)))
	}
	return content.String()
}
