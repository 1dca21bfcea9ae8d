package challenges

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/screens/play"
	"github.com/abhisek/codearena/internal/ui/layout"
	"github.com/abhisek/codearena/internal/ui/theme"
)

// maxSampleCases caps how many scanned sample inputs the detail shows.
const maxSampleCases = 3

// DetailScreen shows a challenge before the player starts coding.
type DetailScreen struct {
	ch    *challenge.Challenge
	state State
	deps  play.Deps
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates a DetailScreen.
func NewDetail(ch *challenge.Challenge, state State, deps play.Deps) *DetailScreen {
	return &DetailScreen{ch: ch, state: state, deps: deps}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.ch.Title }

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		p := play.New(d.ch, d.deps)
		return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: p} }
	}
	return d, nil
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start coding"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) View(width, height int) string {
	ch := d.ch
	contentWidth := min(width-8, 76)

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text)
	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder

	b.WriteString(theme.Title.Render("  Challenge: " + ch.Title))
	b.WriteString("\n")
	if d.state == StateCompleted {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  ✓ Completed. Replaying earns no points."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(dim.Render("  Category:    ") + val.Render(ch.Category.DisplayName()) + "\n")
	b.WriteString(dim.Render("  Difficulty:  ") + theme.DifficultyStyle(ch.Difficulty).Render(strings.ToUpper(ch.Difficulty.String())) + "\n")
	if ch.Facts != nil {
		sig := fmt.Sprintf("def %s(%s)", ch.Facts.Name, strings.Join(ch.Facts.Params, ", "))
		b.WriteString(dim.Render("  Signature:   ") + theme.Code.Render(sig) + "\n")
	}
	b.WriteString(dim.Render("  Hints:       ") + val.Render(fmt.Sprintf("%d available", len(ch.Hints))) + "\n\n")

	b.WriteString(heading.Render("  Description"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		PaddingLeft(2).
		Render(ch.Description))
	b.WriteString("\n\n")

	if len(ch.SampleCases) > 0 && ch.Facts != nil {
		b.WriteString(heading.Render("  Example inputs"))
		b.WriteString("\n")
		for i, args := range ch.SampleCases {
			if i == maxSampleCases {
				break
			}
			b.WriteString(theme.Code.Render(fmt.Sprintf("  %s(%s)", ch.Facts.Name, strings.Join(args, ", "))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(heading.Render("  How to submit"))
	b.WriteString("\n")
	for _, line := range []string{
		"Write Starlark (a Python dialect) in the editor.",
		"Ctrl+S checks your solution. Ctrl+T shows a hint, which costs 10 points.",
		"Esc leaves the editor; your code is not kept.",
	} {
		b.WriteString(dim.Render("  " + line))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
