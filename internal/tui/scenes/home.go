package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	regulatory *domain.RegulatoryConfig
	batch      *domain.BatchResults
	width      int
	height     int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetConfig records the loaded rate tables and any batch results
func (m *HomeModel) SetConfig(regulatory *domain.RegulatoryConfig, batch *domain.BatchResults) {
	m.regulatory = regulatory
	m.batch = batch
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Home scene is passive - navigation handled by parent
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render("bandcalc - UK property levy and child maintenance"))
	content.WriteString("\n\n")

	if m.regulatory == nil {
		content.WriteString(tuistyles.SubtitleStyle.Render("Loading rate tables..."))
		return tuistyles.BorderStyle.Render(content.String())
	}

	content.WriteString(tuistyles.SectionStyle.Render("Rate tables"))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("  Tax year:     %s\n", m.regulatory.Metadata.TaxYear))
	if m.regulatory.Metadata.Description != "" {
		content.WriteString(fmt.Sprintf("  Description:  %s\n", m.regulatory.Metadata.Description))
	}
	regions := make([]string, 0, len(domain.Regions))
	for _, r := range domain.Regions {
		if _, ok := m.regulatory.Levy[r]; ok {
			regions = append(regions, fmt.Sprintf("%s (%s)", r, r.TaxName()))
		}
	}
	content.WriteString(fmt.Sprintf("  Regions:      %s\n", strings.Join(regions, ", ")))
	content.WriteString("\n")

	if m.batch != nil {
		content.WriteString(tuistyles.SectionStyle.Render("Batch file"))
		content.WriteString("\n")
		if m.batch.Description != "" {
			content.WriteString(fmt.Sprintf("  %s\n", m.batch.Description))
		}
		content.WriteString(fmt.Sprintf("  %d levy and %d maintenance calculations (press b)\n\n",
			len(m.batch.Levy), len(m.batch.Maintenance)))
	}

	content.WriteString(tuistyles.SectionStyle.Render("Quick actions"))
	content.WriteString("\n")
	for _, action := range [][2]string{
		{"l", "price a property purchase"},
		{"m", "estimate child maintenance"},
		{"?", "keyboard help"},
	} {
		content.WriteString("  " + tuistyles.HelpKeyStyle.Render(action[0]) + "  " + tuistyles.HelpDescStyle.Render(action[1]) + "\n")
	}

	return tuistyles.BorderStyle.Render(content.String())
}
