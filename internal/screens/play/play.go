package play

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/coach"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/screens/summary"
	"github.com/abhisek/codearena/internal/ui/components"
	"github.com/abhisek/codearena/internal/ui/layout"
)

// Deps are the services a play screen needs. Coach may be nil.
type Deps struct {
	Engine *engine.Engine
	Coach  *coach.Service
}

// reviewTimeout bounds one AI coach request.
const reviewTimeout = 45 * time.Second

// PlayScreen is where the player writes and submits a solution.
type PlayScreen struct {
	ch     *challenge.Challenge
	deps   Deps
	editor components.Editor

	started      bool
	checking     bool
	reviewing    bool
	confirmQuit  bool
	spinnerFrame int
	elapsed      time.Duration

	hints     []string // hints revealed so far, in order
	notice    string   // one-line status, e.g. "No more hints available!"
	result    *challenge.Result
	advice    *coach.Feedback
	review    *coach.Feedback
	lastInput string // the submission the result refers to
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.InputCapturer = (*PlayScreen)(nil)

// New creates a PlayScreen for ch.
func New(ch *challenge.Challenge, deps Deps) *PlayScreen {
	return &PlayScreen{
		ch:     ch,
		deps:   deps,
		editor: components.NewEditor("# write your solution here"),
	}
}

// Init starts the challenge clock the first time the screen is shown.
func (s *PlayScreen) Init() tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true
	s.ch.Start()
	return tickCmd()
}

func (s *PlayScreen) Title() string {
	return s.ch.Title
}

// CapturingInput is always true: esc opens the leave prompt instead of
// popping the screen.
func (s *PlayScreen) CapturingInput() bool {
	return true
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep coding"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Ctrl+T", Description: "Hint"},
	}
	if s.canReview() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "AI review"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave"})
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkDoneMsg:
		return s.handleCheckDone(msg)

	case reviewDoneMsg:
		s.reviewing = false
		if msg.Err != nil {
			s.notice = "The coach is unavailable right now: " + msg.Err.Error()
			return s, nil
		}
		s.review = &msg.Feedback
		return s, nil

	case timerTickMsg:
		s.elapsed = s.ch.Elapsed()
		return s, tickCmd()

	case spinnerTickMsg:
		if !s.checking && !s.reviewing {
			return s, nil
		}
		s.spinnerFrame++
		return s, spinnerCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, router.Pop
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.checking {
			return s, nil
		}
		if strings.TrimSpace(s.editor.Value()) == "" {
			return s, router.Pop
		}
		s.confirmQuit = true
		return s, nil
	case "ctrl+s":
		return s.submit()
	case "ctrl+t":
		s.showHint()
		return s, nil
	case "ctrl+r":
		return s.requestReview()
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

// submit judges the editor contents in the background. Only one check
// runs at a time.
func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	if s.checking {
		return s, nil
	}
	src := s.editor.Value()
	if strings.TrimSpace(src) == "" {
		s.notice = "Please write some code first, then submit"
		return s, nil
	}
	s.checking = true
	s.notice = ""
	s.review = nil
	s.lastInput = src
	return s, tea.Batch(s.check(src), spinnerCmd())
}

func (s *PlayScreen) check(src string) tea.Cmd {
	ch, eng := s.ch, s.deps.Engine
	return func() tea.Msg {
		ctx := context.Background()
		res := ch.CheckSolution(ctx, src)
		eng.RecordAttempt(ctx, ch, res)

		out := checkDoneMsg{Result: res}
		if !res.Passed {
			return out
		}
		c, err := eng.Complete(ctx, ch)
		switch {
		case errors.Is(err, engine.ErrAlreadyCompleted):
			return out
		case c.ChallengeID == "":
			out.SaveErr = err
			return out
		}
		out.Completion = &c
		out.SaveErr = err
		return out
	}
}

func (s *PlayScreen) handleCheckDone(msg checkDoneMsg) (screen.Screen, tea.Cmd) {
	s.checking = false
	s.result = &msg.Result
	s.advice = nil

	if !msg.Result.Passed {
		if s.deps.Coach != nil {
			fb := s.deps.Coach.Advise(s.coachInput())
			s.advice = &fb
		}
		return s, nil
	}

	if msg.Completion == nil {
		if msg.SaveErr != nil {
			s.notice = "Could not record your completion: " + msg.SaveErr.Error()
		} else {
			s.notice = "Already completed, so no points this time."
		}
		return s, nil
	}

	done := summary.New(summary.Data{
		Challenge:  s.ch,
		Completion: *msg.Completion,
		Result:     msg.Result,
		SaveErr:    msg.SaveErr,
	})
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: done} }
}

func (s *PlayScreen) showHint() {
	h := s.ch.Hint()
	if h == challenge.NoMoreHints {
		s.notice = h
		return
	}
	s.notice = ""
	s.hints = append(s.hints, h)
}

func (s *PlayScreen) canReview() bool {
	return s.deps.Coach != nil && s.deps.Coach.HasLLM() &&
		s.result != nil && !s.result.Passed
}

func (s *PlayScreen) requestReview() (screen.Screen, tea.Cmd) {
	if !s.canReview() || s.reviewing || s.checking {
		return s, nil
	}
	s.reviewing = true
	in := s.coachInput()
	svc := s.deps.Coach
	return s, tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
		defer cancel()
		fb, err := svc.Review(ctx, in)
		return reviewDoneMsg{Feedback: fb, Err: err}
	}, spinnerCmd())
}

func (s *PlayScreen) coachInput() *coach.Input {
	in := &coach.Input{
		ChallengeID: s.ch.ID,
		Title:       s.ch.Title,
		Description: s.ch.Description,
		Submission:  s.lastInput,
		Attempts:    s.ch.Attempts(),
	}
	if s.result != nil {
		// the coach never sees the reference answer
		in.Message = challenge.WithoutReveal(s.result.Message)
	}
	return in
}

func (s *PlayScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	return s.render(width, height)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func spinnerCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
