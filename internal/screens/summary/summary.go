package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/ui/layout"
	"github.com/abhisek/codearena/internal/ui/theme"
)

// Data is what the summary shows about one completion.
type Data struct {
	Challenge  *challenge.Challenge
	Completion engine.Completion
	Result     challenge.Result
	SaveErr    error
}

// SummaryScreen congratulates the player after a scored completion.
type SummaryScreen struct {
	data Data
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(data Data) *SummaryScreen {
	return &SummaryScreen{data: data}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Challenge Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "More challenges"},
		{Key: "H", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Pop
		case "h", "H":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	d := s.data
	c := d.Completion
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(theme.Correct, "SUCCESS! "+d.Challenge.Title))
	b.WriteString("\n")
	if d.Result.Message != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), d.Result.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArenaYellow).Bold(true),
		fmt.Sprintf("Score earned: %d points!", c.Score)))
	b.WriteString("\n\n")

	elapsed := d.Challenge.Elapsed()
	stats := fmt.Sprintf("Time: %d:%02d        Attempts: %d        Hints: %d        Total: %d",
		int(elapsed.Minutes()), int(elapsed.Seconds())%60,
		d.Challenge.Attempts(), d.Challenge.HintsUsed(), c.TotalScore)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n")

	if d.Result.Unverified {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint, "No test cases are registered for this challenge, so it was accepted without running it."))
		b.WriteString("\n")
	}

	if c.LeveledUp() {
		b.WriteString("\n")
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArenaCyan).Bold(true),
			fmt.Sprintf("You're now level %d! Keep up the great work!", c.Level)))
		b.WriteString("\n")
		for _, cat := range c.Unlocked {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary),
				fmt.Sprintf("Unlocked: %s. %s", cat.DisplayName(), cat.Blurb())))
			b.WriteString("\n")
		}
	}

	if d.SaveErr != nil {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error),
			"Progress could not be saved: "+d.SaveErr.Error()))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
