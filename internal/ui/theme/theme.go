package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Muted background with a teal primary so long question text
// stays readable.
var (
	Primary   = lipgloss.Color("#2DD4BF") // Teal
	Secondary = lipgloss.Color("#60A5FA") // Sky
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#4ADE80") // Green
	Error     = lipgloss.Color("#F87171") // Red
	Text      = lipgloss.Color("#E2E8F0") // Off white
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Answer = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Containers
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// Meter segments
var (
	MeterFilled = lipgloss.NewStyle().
			Foreground(Accent)

	MeterEmpty = lipgloss.NewStyle().
			Foreground(Border)
)
