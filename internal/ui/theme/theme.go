package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/challenge"
)

// Color palette, terminal-editor dark.
var (
	Primary     = lipgloss.Color("#A78BFA") // Lavender
	Secondary   = lipgloss.Color("#2DD4BF") // Teal
	Accent      = lipgloss.Color("#FB923C") // Orange
	Success     = lipgloss.Color("#4ADE80") // Green
	Error       = lipgloss.Color("#FB7185") // Rose
	Warning     = lipgloss.Color("#FACC15") // Yellow
	Text        = lipgloss.Color("#E2E8F0")
	TextDim     = lipgloss.Color("#94A3B8")
	BgDark      = lipgloss.Color("#0B1120")
	BgCard      = lipgloss.Color("#1E293B")
	Border      = lipgloss.Color("#334155")
	ArenaYellow = lipgloss.Color("#FDE047")
	ArenaCyan   = lipgloss.Color("#22D3EE")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(Secondary)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// DifficultyStyle colors a difficulty label from green to red.
func DifficultyStyle(d challenge.Difficulty) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch d {
	case challenge.Easy:
		return s.Foreground(Success)
	case challenge.Medium:
		return s.Foreground(Warning)
	case challenge.Hard:
		return s.Foreground(Accent)
	default:
		return s.Foreground(Error)
	}
}
