package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/coach"
	"github.com/abhisek/codearena/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// minEditorHeight keeps the editor usable when feedback is long.
const minEditorHeight = 6

func (s *PlayScreen) render(width, height int) string {
	inner := max(width-4, 20)

	top := []string{
		s.renderInfoLine(inner),
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner)),
		lipgloss.NewStyle().Width(inner).Foreground(theme.Text).Render(s.ch.Description),
	}
	bottom := s.renderFeedback(inner)

	used := lipgloss.Height(strings.Join(top, "\n")) + 1
	if bottom != "" {
		used += lipgloss.Height(bottom) + 1
	}
	editorHeight := max(height-used-1, minEditorHeight)
	s.editor.SetSize(inner, editorHeight)

	parts := append(top, "", s.editor.View())
	if bottom != "" {
		parts = append(parts, "", bottom)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(parts, "\n"))
}

func (s *PlayScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(s.ch.Category.DisplayName()) +
		"  " + theme.DifficultyStyle(s.ch.Difficulty).Render(strings.ToUpper(s.ch.Difficulty.String()))

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"Attempts %d   Hints %d/%d   %d:%02d",
		s.ch.Attempts(), s.ch.HintsUsed(), len(s.ch.Hints), mins, secs))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFeedback renders hints, the last verdict and coach feedback.
func (s *PlayScreen) renderFeedback(width int) string {
	var lines []string
	wrap := lipgloss.NewStyle().Width(width)

	for i, h := range s.hints {
		lines = append(lines, wrap.Foreground(theme.Warning).Render(fmt.Sprintf("HINT %d: %s", i+1, h)))
	}
	if len(s.hints) > 0 {
		lines = append(lines, theme.Hint.Render("(Note: Using hints will reduce your final score)"))
	}

	switch {
	case s.checking:
		lines = append(lines, s.spinner()+" Running your code...")
	case s.result != nil:
		lines = append(lines, renderResult(*s.result, width))
	}

	if s.advice != nil {
		lines = append(lines, renderCoach("Coach", *s.advice, width))
	}
	switch {
	case s.reviewing:
		lines = append(lines, s.spinner()+" Asking the AI coach...")
	case s.review != nil:
		lines = append(lines, renderCoach("AI coach", *s.review, width))
	}

	if s.notice != "" {
		lines = append(lines, wrap.Foreground(theme.Accent).Render(s.notice))
	}
	return strings.Join(lines, "\n")
}

func (s *PlayScreen) spinner() string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(spinnerFrames[s.spinnerFrame%len(spinnerFrames)])
}

func renderResult(r challenge.Result, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	if r.Passed {
		return theme.Correct.Render("SUCCESS! ") + wrap.Foreground(theme.Success).Render(r.Message)
	}
	msg, reveal := r.Message, ""
	if i := strings.Index(msg, challenge.RevealHeader); i >= 0 {
		msg, reveal = msg[:i], msg[i+len(challenge.RevealHeader):]
	}
	out := theme.Incorrect.Render("Not quite right: ") + wrap.Foreground(theme.Text).Render(msg)
	if reveal != "" {
		out += "\n" + theme.Hint.Render("Expected solution:") + "\n" + theme.Code.Render(reveal)
	} else {
		out += "\n" + theme.Hint.Render("Try again! You can do this.")
	}
	return out
}

func renderCoach(label string, fb coach.Feedback, width int) string {
	wrap := lipgloss.NewStyle().Width(width - 2)
	body := wrap.Foreground(theme.Text).Render(fb.Feedback)
	if fb.NextStep != "" {
		body += "\n" + wrap.Foreground(theme.Secondary).Render("Next: "+fb.NextStep)
	}
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label+":") + "\n" + body
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.
		BorderForeground(theme.Accent).
		Render("Leave this challenge?\n\nYour code will be lost. Hints and attempts still count.\n\n" +
			theme.Hint.Render("Y to leave, N to keep coding"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
