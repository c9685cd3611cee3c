package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	// Headers and titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// CaretStyle highlights the notification caret inside a context snippet
	CaretStyle = lipgloss.NewStyle().
			Foreground(AttentionColor).
			Bold(true)

	// Command text, before and after correction
	CommandStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	RemovedStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Strikethrough(true)

	AddedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	LocationStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(SurfaceColor).
			Padding(0, 1)
)
