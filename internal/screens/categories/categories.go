package categories

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

// CategoriesScreen shows every category with its lock state and progress.
type CategoriesScreen struct {
	eng      *engine.Engine
	statuses []engine.CategoryStatus
	level    int
}

var _ screen.Screen = (*CategoriesScreen)(nil)
var _ screen.KeyHintProvider = (*CategoriesScreen)(nil)

// New creates a new CategoriesScreen.
func New(eng *engine.Engine) *CategoriesScreen {
	return &CategoriesScreen{eng: eng}
}

func (s *CategoriesScreen) Init() tea.Cmd {
	s.statuses = s.eng.Categories()
	s.level = s.eng.Stats().Level
	return nil
}

func (s *CategoriesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *CategoriesScreen) Title() string {
	return "Categories"
}

func (s *CategoriesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CategoriesScreen) View(width, height int) string {
	cw := min(width-8, 72)
	var cards []string
	for _, cs := range s.statuses {
		cards = append(cards, renderCategory(cs, s.level, cw))
	}
	body := strings.Join(cards, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+body)
}

func renderCategory(cs engine.CategoryStatus, level, cw int) string {
	name := cs.Category.DisplayName()
	var head, status string
	if cs.Unlocked {
		head = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓ " + name)
		status = components.ProgressBar{Done: cs.Completed, Total: cs.Total, Width: cw - 4}.View()
	} else {
		head = theme.Locked.Bold(true).Render("· " + name)
		need := cs.UnlockLevel - level
		status = theme.Locked.Render(fmt.Sprintf("Locked. Reach level %d (%d more %s)",
			cs.UnlockLevel, need, levelWord(need)))
	}
	blurb := lipgloss.NewStyle().Foreground(theme.TextDim).Render(cs.Category.Blurb())

	border := theme.Border
	if cs.Unlocked && cs.Total > 0 && cs.Completed == cs.Total {
		border = theme.Success
	}
	return theme.Card.
		BorderForeground(border).
		Width(cw).
		Render(head + "  " + blurb + "\n" + status)
}

func levelWord(n int) string {
	if n == 1 {
		return "level"
	}
	return "levels"
}
