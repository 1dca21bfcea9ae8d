// Package progress renders the player's stats.
package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/ui/components"
	"github.com/abhisek/codearena/internal/ui/layout"
	"github.com/abhisek/codearena/internal/ui/theme"
)

// ProgressScreen shows level, score and unlocked categories.
type ProgressScreen struct {
	eng   *engine.Engine
	stats engine.Stats
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(eng *engine.Engine) *ProgressScreen {
	return &ProgressScreen{eng: eng}
}

func (s *ProgressScreen) Init() tea.Cmd {
	s.stats = s.eng.Stats()
	return nil
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *ProgressScreen) Title() string {
	return "Your Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

// levelProgress is how far the player is into the current level.
func levelProgress(completed int) (done, total int) {
	return completed % engine.ChallengesPerLevel, engine.ChallengesPerLevel
}

func (s *ProgressScreen) View(width, height int) string {
	st := s.stats
	cw := min(width-8, 56)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your Progress"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("═", 30)))
	b.WriteString("\n")
	b.WriteString(dim.Render("Level:                ") + val.Render(fmt.Sprint(st.Level)) + "\n")
	b.WriteString(dim.Render("Total Score:          ") + val.Render(fmt.Sprint(st.Score)) + "\n")
	b.WriteString(dim.Render("Challenges Completed: ") + val.Render(fmt.Sprintf("%d of %d", st.Completed, st.Total)) + "\n\n")

	done, total := levelProgress(st.Completed)
	b.WriteString(components.ProgressBar{
		Label: fmt.Sprintf("To level %d", st.Level+1),
		Done:  done,
		Total: total,
		Width: cw,
	}.View())
	b.WriteString("\n")
	b.WriteString(components.ProgressBar{
		Label: "All challenges",
		Done:  st.Completed,
		Total: st.Total,
		Width: cw,
	}.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render("Unlocked Categories:"))
	b.WriteString("\n")
	for _, c := range st.Unlocked {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("  - " + c.DisplayName()))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
