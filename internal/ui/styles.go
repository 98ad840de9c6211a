// Package ui holds the lipgloss palette shared by the viewer and the CLI.
package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Colors used throughout the TUI.
var (
	ColorSnow    = lipgloss.Color("#29B5E8")
	ColorRed     = lipgloss.Color("#FF5F5F")
	ColorYellow  = lipgloss.Color("#FFD75F")
	ColorGray    = lipgloss.Color("#808080")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorNavy    = lipgloss.Color("#11567F")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSnow)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	CaptionStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LabelActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSnow).
				Bold(true)

	SelectorStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	SelectorActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSnow).
				Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(ColorSnow).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorSnow).
			Underline(true)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(ColorDimGray).
			PaddingRight(1)

	DetailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimGray).
			Padding(0, 1)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)

// TableStyles returns the result table styles.
func TableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorDimGray).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorSnow)
	s.Selected = s.Selected.
		Foreground(ColorWhite).
		Bold(false)
	if focused {
		s.Selected = s.Selected.Background(ColorNavy)
	}
	return s
}
