// Package ui provides the live event viewer for the mousekit CLI
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorText    = lipgloss.Color("252") // Light gray
	ColorMuted   = lipgloss.Color("241") // Medium gray
)

// Shared styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ScrollStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
