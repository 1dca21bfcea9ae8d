package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/screens/welcome"
	"github.com/abhisek/codearena/internal/ui/components"
	"github.com/abhisek/codearena/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderTitle returns the banner, or its one-line form when compact.
func renderTitle(cw int, compact bool) string {
	width := cw
	if compact {
		width = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(width))
}

// renderStatsBar renders level, score and completion in a double border.
func renderStatsBar(st engine.Stats, cw int) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArenaCyan).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArenaYellow).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		levelStyle.Render(fmt.Sprintf("LV %d", st.Level)),
		scoreStyle.Render(fmt.Sprintf("★ %d PTS", st.Score)),
		doneStyle.Render(fmt.Sprintf("✓ %d/%d", st.Completed, st.Total)),
	)
	return components.Banner(stats, cw, lipgloss.NewStyle().BorderForeground(theme.ArenaCyan))
}

// renderNextUnlock tells the player what the next level opens.
func renderNextUnlock(st engine.Stats, cw int) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center)
	for _, u := range engine.Unlocks {
		if u.Level > st.Level {
			left := (u.Level-1)*engine.ChallengesPerLevel - st.Completed
			return style.Render(fmt.Sprintf("%s unlocks in %d more %s",
				u.Category.DisplayName(), left, plural(left, "challenge")))
		}
	}
	return style.Render("Every category is unlocked")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// renderButtons renders each menu item as a fixed-width button.
func renderButtons(labels []string, selected int, disabled map[int]bool, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	var buttons []string
	for i, label := range labels {
		switch {
		case disabled[i]:
			buttons = append(buttons, base.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label))
		case i == selected:
			buttons = append(buttons, base.Bold(true).
				Foreground(theme.BgDark).
				Background(theme.ArenaYellow).
				BorderForeground(theme.ArenaYellow).
				Render("▸ "+label))
		default:
			buttons = append(buttons, base.Foreground(theme.Text).BorderForeground(theme.Border).Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderCompactMenu renders menu items as plain lines for short terminals
// where bordered buttons would overflow.
func renderCompactMenu(labels []string, selected int, disabled map[int]bool, cw int) string {
	var lines []string
	for i, label := range labels {
		switch {
		case disabled[i]:
			lines = append(lines, theme.Locked.Render("   "+label))
		case i == selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArenaYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
		default:
			lines = append(lines, theme.Unselected.Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderCoachNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("AI coach off. Set an LLM API key to enable reviews (see codearena --help)")
}
