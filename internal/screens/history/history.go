package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/store"
	"github.com/abhisek/codearena/internal/ui/layout"
	"github.com/abhisek/codearena/internal/ui/theme"
)

// queryLimit caps how many completions the screen loads.
const queryLimit = 50

type historyLoadedMsg struct {
	Completions []store.CompletionEvent
	Attempts    map[string][]store.AttemptEvent // challengeID → attempts
	Err         error
}

// HistoryScreen lists past completions and, on demand, their attempts.
type HistoryScreen struct {
	eventRepo   store.EventRepo
	eng         *engine.Engine
	completions []store.CompletionEvent
	attempts    map[string][]store.AttemptEvent
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. eng resolves challenge titles and may be nil.
func New(eventRepo store.EventRepo, eng *engine.Engine) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		eng:       eng,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		completions, err := repo.QueryCompletions(ctx, store.QueryOpts{Limit: queryLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		byChallenge := make(map[string][]store.AttemptEvent)
		all, err := repo.QueryAttempts(ctx, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Completions: completions, Attempts: byChallenge}
		}
		// Attempts come newest first; show them in the order they were made.
		for i := len(all) - 1; i >= 0; i-- {
			a := all[i]
			byChallenge[a.ChallengeID] = append(byChallenge[a.ChallengeID], a)
		}
		return historyLoadedMsg{Completions: completions, Attempts: byChallenge}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Attempts"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.completions = msg.Completions
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.completions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) title(id string) string {
	if s.eng != nil {
		if ch, ok := s.eng.Get(id); ok {
			return ch.Title
		}
	}
	return id
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.completions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No completed challenges yet. Start a challenge!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, c := range s.completions {
		mins := int(c.Elapsed.Minutes())
		secs := int(c.Elapsed.Seconds()) % 60

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-24s  %4d pts  %d:%02d  %d %s  %d %s",
			prefix, c.Timestamp.Format("Jan 02, 2006"), s.title(c.ChallengeID),
			c.Score, mins, secs,
			c.Attempts, plural(c.Attempts, "attempt"),
			c.HintsUsed, plural(c.HintsUsed, "hint"))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAttempts(c.ChallengeID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAttempts(id string, width int) string {
	attempts := s.attempts[id]
	if len(attempts) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No attempts recorded")) + "\n"
	}

	var b strings.Builder
	for _, a := range attempts {
		mark, color := "✗", theme.Error
		if a.Passed {
			mark, color = "✓", theme.Success
		}
		msg := firstLine(a.Message)
		if a.Unverified {
			msg = "accepted without tests"
		}
		line := fmt.Sprintf("    %s #%d  %s  %s", mark, a.Attempt, a.Timestamp.Format("15:04"), msg)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(color).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
