// Package tuistyles holds the shared palette so scenes and components can
// style themselves without importing the tui package.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#43BF6D")
	ColorAccent    = lipgloss.Color("#F0B429")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorDanger    = lipgloss.Color("#E84855")
	ColorInfo      = lipgloss.Color("#3A86FF")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#767676")
	ColorBorder     = lipgloss.Color("#444444")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(22)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
