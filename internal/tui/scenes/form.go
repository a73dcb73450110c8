package scenes

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/bandcalc/internal/tui/tuistyles"
)

var hundred = decimal.NewFromInt(100)

func field(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = tuistyles.SelectedItemStyle.Render("▸ ")
	}
	return marker + tuistyles.LabelStyle.Render(label) + value + "\n"
}

func choice(value string) string {
	return tuistyles.ValueStyle.Render("◂ " + value + " ▸")
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func submitLevy(req domain.LevyRequest) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.LevySubmittedMsg{Request: req}
	}
}

func submitMaintenance(req domain.MaintenanceRequest) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.MaintenanceSubmittedMsg{Request: req}
	}
}
