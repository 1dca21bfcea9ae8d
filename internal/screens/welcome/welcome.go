package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/ui/theme"
)

const (
	tickInterval = 60 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
)

// typingDone is when the tagline is fully typed out.
var typingDone = bannerAt + time.Duration(len(Tagline))*tickInterval

type tickMsg time.Time

// WelcomeScreen types out the tagline under the banner, then waits for a
// key to replace itself with the home screen. Any key skips the animation.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < typingDone {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// typed is how much of the tagline is visible.
func (w *WelcomeScreen) typed() string {
	if w.elapsed < bannerAt {
		return ""
	}
	n := min(int((w.elapsed-bannerAt)/tickInterval), len(Tagline))
	return Tagline[:n]
}

func (w *WelcomeScreen) View(width, height int) string {
	if w.elapsed < bannerAt {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render("▌"))
	}

	sections := []string{RenderBanner(width), ""}

	line := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.typed())
	// blinking cursor, on for four ticks and off for four
	if w.tickCount/4%2 == 0 {
		line += lipgloss.NewStyle().Foreground(theme.Secondary).Render("▌")
	} else {
		line += " "
	}
	sections = append(sections, line)

	if w.elapsed >= typingDone {
		sections = append(sections, "",
			lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Italic(true).
				Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
