package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/bandcalc/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneLevy:
		content = m.levyModel.View()
	case SceneMaintenance:
		content = m.maintenanceModel.View()
	case SceneBatch:
		content = m.batchModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("bandcalc"),
		tuistyles.SubtitleStyle.Render(m.currentScene.String()),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("l", "levy"),
		formatShortcut("m", "maintenance"),
		formatShortcut("b", "batch"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")

	if m.engine != nil {
		taxYear := tuistyles.SubtitleStyle.Render("Tax year " + m.engine.Regulatory.Metadata.TaxYear)
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(taxYear) - 2
		statusText = statusText + strings.Repeat(" ", max(0, width)) + taxYear
	}

	return tuistyles.StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := tuistyles.BorderStyle.Render(fmt.Sprintf("⠋ %s", message))
	return m.renderApp(content)
}

// renderError renders an error message
func (m Model) renderError() string {
	content := tuistyles.ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
bandcalc - UK property levy and child maintenance

KEYBOARD SHORTCUTS:
  h        Navigate to Home
  l        Property levy form
  m        Child maintenance form
  b        Batch file results
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

FORMS:
  Tab / ↑↓ move between fields
  ←/→      change a choice field
  Enter    calculate

BATCH:
  ↑/↓      select a calculation to see its breakdown
`

	return tuistyles.BorderStyle.Render(helpText)
}
