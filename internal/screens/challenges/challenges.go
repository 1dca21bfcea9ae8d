package challenges

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/screens/play"
	"github.com/abhisek/codearena/internal/ui/components"
	"github.com/abhisek/codearena/internal/ui/layout"
	"github.com/abhisek/codearena/internal/ui/theme"
)

// State is how a challenge shows in the list.
type State int

const (
	StateLocked State = iota
	StateAvailable
	StateCompleted
)

func (s State) icon() string {
	switch s {
	case StateCompleted:
		return "✓"
	case StateAvailable:
		return "○"
	default:
		return "·"
	}
}

func (s State) label() string {
	switch s {
	case StateCompleted:
		return "done"
	case StateAvailable:
		return "open"
	default:
		return "locked"
	}
}

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowChallenge
)

type row struct {
	kind     rowKind
	category engine.CategoryStatus
	ch       *challenge.Challenge
	state    State
}

// ListScreen lists every challenge grouped by category. Locked challenges
// are shown but can't be opened.
type ListScreen struct {
	eng          *engine.Engine
	deps         play.Deps
	filter       components.Filter
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)
var _ screen.InputCapturer = (*ListScreen)(nil)

// New creates a new ListScreen.
func New(eng *engine.Engine, deps play.Deps) *ListScreen {
	return &ListScreen{
		eng:    eng,
		deps:   deps,
		filter: components.NewFilter("filter by title or category", 40),
	}
}

// Init rebuilds the rows so completions made in the play screen show up.
func (s *ListScreen) Init() tea.Cmd {
	s.rebuild()
	return nil
}

func (s *ListScreen) rebuild() {
	statuses := s.eng.Categories()
	all := s.eng.All()

	var selectedID string
	if s.cursor < len(s.rows) && s.rows[s.cursor].ch != nil {
		selectedID = s.rows[s.cursor].ch.ID
	}

	s.rows = s.rows[:0]
	for _, cs := range statuses {
		var group []row
		for _, ch := range all {
			if ch.Category != cs.Category {
				continue
			}
			if !s.filter.Match(ch.Title, ch.ID, cs.Category.DisplayName()) {
				continue
			}
			st := StateLocked
			switch {
			case s.eng.IsCompleted(ch.ID):
				st = StateCompleted
			case cs.Unlocked:
				st = StateAvailable
			}
			group = append(group, row{kind: rowChallenge, category: cs, ch: ch, state: st})
		}
		if len(group) == 0 {
			continue
		}
		s.rows = append(s.rows, row{kind: rowCategoryHeader, category: cs})
		s.rows = append(s.rows, group...)
	}

	s.cursor = 0
	first := -1
	for i, r := range s.rows {
		if r.kind != rowChallenge {
			continue
		}
		if first < 0 {
			first = i
		}
		if r.ch.ID == selectedID {
			s.cursor = i
			return
		}
	}
	if first >= 0 {
		s.cursor = first
	}
	s.scrollOffset = 0
}

// CapturingInput reports whether the filter has focus.
func (s *ListScreen) CapturingInput() bool {
	return s.filter.Focused()
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.filter.Focused() {
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.filter.Focused() {
		switch kmsg.String() {
		case "esc":
			s.filter.Reset()
			s.filter.Blur()
			s.rebuild()
			return s, nil
		case "enter", "down":
			s.filter.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.rebuild()
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "tab":
		s.jumpCategory(1)
	case "shift+tab":
		s.jumpCategory(-1)
	case "/":
		return s, s.filter.Focus()
	case "enter":
		return s, s.open()
	case "q":
		return s, router.Pop
	}
	return s, nil
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *ListScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowChallenge {
			s.cursor = next
			return
		}
		next += delta
	}
}

// jumpCategory moves to the first challenge of the next (dir=1) or
// previous (dir=-1) category.
func (s *ListScreen) jumpCategory(dir int) {
	if len(s.rows) == 0 {
		return
	}
	current := s.rows[s.cursor].category.Category
	var starts []int
	for i, r := range s.rows {
		if r.kind == rowCategoryHeader {
			starts = append(starts, i+1)
		}
	}
	idx := 0
	for i, start := range starts {
		if s.rows[start].category.Category == current {
			idx = i
		}
	}
	idx += dir
	if idx < 0 || idx >= len(starts) {
		return
	}
	s.cursor = starts[idx]
}

// open pushes the detail screen for the selected challenge.
func (s *ListScreen) open() tea.Cmd {
	if s.cursor >= len(s.rows) {
		return nil
	}
	r := s.rows[s.cursor]
	if r.kind != rowChallenge || r.state == StateLocked {
		return nil
	}
	return router.Push(NewDetail(r.ch, r.state, s.deps))
}

func (s *ListScreen) View(width, height int) string {
	var header string
	if s.filter.Focused() || s.filter.Value() != "" {
		header = "  " + s.filter.View() + "\n"
	}
	listHeight := height - lipgloss.Height(header)

	if len(s.rows) == 0 {
		msg := "No challenges available right now!"
		if s.filter.Value() != "" {
			msg = fmt.Sprintf("Nothing matches %q", s.filter.Value())
		}
		return header + layout.Centered(msg, width, theme.Hint)
	}

	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowCategoryHeader:
			lines = append(lines, renderCategoryHeader(r.category, width))
		case rowChallenge:
			lines = append(lines, renderChallengeRow(r, i == s.cursor, width))
		}
	}
	return header + strings.Join(lines, "\n")
}

// adjustScroll keeps the cursor and its category header in view.
func (s *ListScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowCategoryHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ListScreen) Title() string {
	return "Challenges"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Category"},
		{Key: "/", Description: "Filter"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func renderCategoryHeader(cs engine.CategoryStatus, width int) string {
	name := strings.ToUpper(cs.Category.DisplayName())
	var suffix string
	if cs.Unlocked {
		suffix = fmt.Sprintf("  %d/%d", cs.Completed, cs.Total)
	} else {
		suffix = fmt.Sprintf("  locked until level %d", cs.UnlockLevel)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(name + lipgloss.NewStyle().Foreground(theme.TextDim).Bold(false).Render(suffix))
}

func renderChallengeRow(r row, selected bool, width int) string {
	diff := r.ch.Difficulty.String()
	const (
		indent     = 4
		iconWidth  = 2
		diffWidth  = 8
		labelWidth = 7
		spacing    = 6
	)
	nameWidth := max(width-indent-iconWidth-diffWidth-labelWidth-spacing, 10)

	name := r.ch.Title
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	nameStyle := theme.Unselected
	labelStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
	diffStyle := theme.DifficultyStyle(r.ch.Difficulty)
	switch {
	case selected:
		nameStyle = theme.Selected
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case r.state == StateCompleted:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Success)
	case r.state == StateLocked:
		nameStyle = theme.Locked
		labelStyle = theme.Locked
		diffStyle = theme.Locked
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		r.state.icon(),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		diffStyle.Render(fmt.Sprintf("%-*s", diffWidth, diff)),
		labelStyle.Render(fmt.Sprintf("%*s", labelWidth, r.state.label())),
	)
}
