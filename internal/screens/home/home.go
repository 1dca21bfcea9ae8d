package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codearena/internal/coach"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/screens/categories"
	"github.com/abhisek/codearena/internal/screens/challenges"
	"github.com/abhisek/codearena/internal/screens/history"
	"github.com/abhisek/codearena/internal/screens/play"
	"github.com/abhisek/codearena/internal/screens/progress"
	"github.com/abhisek/codearena/internal/store"
	"github.com/abhisek/codearena/internal/ui/components"
	"github.com/abhisek/codearena/internal/ui/layout"
)

// Deps are the services the screens reachable from home need. Events may
// be nil when the progress backend keeps no event log; Coach may be nil.
type Deps struct {
	Engine *engine.Engine
	Coach  *coach.Service
	Events store.EventRepo
}

// Menu labels, in order.
const (
	labelStart      = "START A CHALLENGE"
	labelProgress   = "VIEW PROGRESS"
	labelCategories = "CATEGORIES"
	labelHistory    = "HISTORY"
	labelQuit       = "QUIT"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	labels []string
	stats  engine.Stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() {
	d := h.deps
	playDeps := play.Deps{Engine: d.Engine, Coach: d.Coach}

	items := []components.MenuItem{
		{Label: labelStart, Action: func() tea.Cmd {
			return router.Push(challenges.New(d.Engine, playDeps))
		}},
		{Label: labelProgress, Action: func() tea.Cmd {
			return router.Push(progress.New(d.Engine))
		}},
		{Label: labelCategories, Action: func() tea.Cmd {
			return router.Push(categories.New(d.Engine))
		}},
		{Label: labelHistory, Disabled: d.Events == nil, Action: func() tea.Cmd {
			return router.Push(history.New(d.Events, d.Engine))
		}},
		{Label: labelQuit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.labels = make([]string, len(items))
	for i, it := range items {
		h.labels[i] = it.Label
	}
}

// Init refreshes the stats; the router calls it again whenever the player
// comes back to this screen.
func (h *HomeScreen) Init() tea.Cmd {
	h.stats = h.deps.Engine.Stats()
	h.labels[0] = labelStart
	if n := len(h.deps.Engine.Available()); n > 0 {
		h.labels[0] = fmt.Sprintf("%s (%d)", labelStart, n)
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q":
			return h, tea.Quit
		case "1", "2", "3", "4", "5":
			// numbered shortcuts, as in the classic text menu
			i := int(kmsg.String()[0] - '1')
			if i < len(h.menu.Items) && !h.menu.Items[i].Disabled {
				h.menu.Selected = i
				return h, h.menu.Items[i].Action()
			}
			return h, nil
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height + 8)
	cw := components.ContentWidth(width)

	disabled := make(map[int]bool)
	for i, it := range h.menu.Items {
		disabled[i] = it.Disabled
	}

	sections := []string{renderTitle(cw, compact), renderStatsBar(h.stats, cw)}
	if !compact {
		sections = append(sections, renderNextUnlock(h.stats, cw))
	}
	if compact {
		sections = append(sections, renderCompactMenu(h.labels, h.menu.Selected, disabled, cw))
	} else {
		sections = append(sections, renderButtons(h.labels, h.menu.Selected, disabled, cw))
	}
	if h.deps.Coach == nil || !h.deps.Coach.HasLLM() {
		sections = append(sections, renderCoachNote(cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-5", Description: "Jump"},
		{Key: "Q", Description: "Quit"},
	}
}
