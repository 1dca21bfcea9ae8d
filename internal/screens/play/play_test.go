package play

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/coach"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/llm"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screens/summary"
	"github.com/abhisek/codearena/internal/store"
)

const answer = "def add(a, b):\n    return a + b"

var (
	ctrlS = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	ctrlT = tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	ctrlR = tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func newChallenge() *challenge.Challenge {
	return &challenge.Challenge{
		ID:             "add",
		Title:          "Add Two Numbers",
		Description:    "Return the sum of a and b.",
		Category:       challenge.CategoryBasics,
		Difficulty:     challenge.Easy,
		Hints:          []string{"Use the + operator"},
		ExpectedAnswer: answer,
		Checker: challenge.CheckerFunc(func(_ context.Context, src string) (challenge.Result, error) {
			if strings.Contains(src, "a + b") {
				return challenge.Result{Passed: true, Message: "All tests passed!"}, nil
			}
			return challenge.Result{Message: "Test failed with input: [1, 2]"}, nil
		}),
	}
}

func newEngine(t *testing.T, chs ...*challenge.Challenge) *engine.Engine {
	t.Helper()
	eng := engine.New(store.NewFileStore(filepath.Join(t.TempDir(), "progress.json")))
	for _, ch := range chs {
		if err := eng.Add(ch); err != nil {
			t.Fatal(err)
		}
	}
	if err := eng.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return eng
}

func newScreen(t *testing.T, c *coach.Service) (*PlayScreen, *engine.Engine) {
	t.Helper()
	ch := newChallenge()
	eng := newEngine(t, ch)
	s := New(ch, Deps{Engine: eng, Coach: c})
	s.Init()
	return s, eng
}

// submit types src, presses ctrl+s and delivers the check result.
func submit(t *testing.T, s *PlayScreen, src string) tea.Cmd {
	t.Helper()
	s.editor.SetValue(src)
	if _, cmd := s.Update(ctrlS); cmd == nil {
		t.Fatal("ctrl+s returned no command")
	}
	if !s.checking {
		t.Fatal("expected a check in flight")
	}
	_, cmd := s.Update(s.check(src)())
	return cmd
}

func TestInit_StartsClockOnce(t *testing.T) {
	s, _ := newScreen(t, nil)
	if !s.ch.Started() {
		t.Fatal("Init should start the challenge")
	}
	if cmd := s.Init(); cmd != nil {
		t.Error("second Init should not start another timer")
	}
}

func TestSubmit_EmptyCode(t *testing.T) {
	s, _ := newScreen(t, nil)
	_, cmd := s.Update(ctrlS)
	if cmd != nil {
		t.Error("empty submission should not run a check")
	}
	if s.notice != "Please write some code first, then submit" {
		t.Errorf("notice = %q", s.notice)
	}
	if s.ch.Attempts() != 0 {
		t.Errorf("attempts = %d, want 0", s.ch.Attempts())
	}
}

func TestSubmit_PassReplacesWithSummary(t *testing.T) {
	s, eng := newScreen(t, nil)
	cmd := submit(t, s, answer)
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement is %T, want summary", msg.Screen)
	}
	if !eng.IsCompleted("add") {
		t.Error("challenge not marked completed")
	}
	if got := eng.Stats().Score; got <= 0 {
		t.Errorf("score = %d, want > 0", got)
	}
}

func TestSubmit_ReplayAfterCompletionEarnsNothing(t *testing.T) {
	s, eng := newScreen(t, nil)
	if _, err := eng.Complete(context.Background(), s.ch); err != nil {
		t.Fatal(err)
	}
	score := eng.Stats().Score

	if cmd := submit(t, s, answer); cmd != nil {
		t.Error("replay should stay on the play screen")
	}
	if !strings.Contains(s.notice, "no points") {
		t.Errorf("notice = %q", s.notice)
	}
	if eng.Stats().Score != score {
		t.Error("replay changed the score")
	}
}

func TestSubmit_FailShowsAdvice(t *testing.T) {
	s, eng := newScreen(t, coach.NewService(nil, coach.DefaultConfig()))
	if cmd := submit(t, s, "def add(a, b):\n    return a - b"); cmd != nil {
		t.Error("failure should stay on the play screen")
	}
	if s.result == nil || s.result.Passed {
		t.Fatal("expected a failing result")
	}
	if s.advice == nil || s.advice.Kind != coach.KindWrongAnswer {
		t.Errorf("advice = %+v, want wrong-answer", s.advice)
	}
	if eng.IsCompleted("add") {
		t.Error("failed attempt completed the challenge")
	}
	if !strings.Contains(s.View(100, 40), "Not quite right") {
		t.Error("view should show the failure")
	}
}

func TestSubmit_RevealAfterThirdAttempt(t *testing.T) {
	s, _ := newScreen(t, nil)
	for i := 0; i < challenge.RevealAfterAttempts; i++ {
		submit(t, s, "def add(a, b):\n    return 0")
	}
	view := s.View(100, 60)
	if !strings.Contains(view, "Expected solution:") || !strings.Contains(view, "return a + b") {
		t.Error("expected the reference answer after the third failure")
	}
}

func TestHint_InOrderThenExhausted(t *testing.T) {
	s, _ := newScreen(t, nil)
	s.Update(ctrlT)
	if len(s.hints) != 1 || s.hints[0] != "Use the + operator" {
		t.Fatalf("hints = %v", s.hints)
	}
	s.Update(ctrlT)
	if len(s.hints) != 1 {
		t.Errorf("hints grew past the last one: %v", s.hints)
	}
	if s.notice != challenge.NoMoreHints {
		t.Errorf("notice = %q", s.notice)
	}
	if !strings.Contains(s.View(100, 40), "HINT 1: Use the + operator") {
		t.Error("view should list revealed hints")
	}
}

func TestEsc_EmptyEditorPops(t *testing.T) {
	s, _ := newScreen(t, nil)
	_, cmd := s.Update(esc)
	if cmd == nil {
		t.Fatal("expected pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc on an empty editor should pop")
	}
}

func TestEsc_ConfirmsBeforeLeaving(t *testing.T) {
	s, _ := newScreen(t, nil)
	s.editor.SetValue("def add(a, b):")

	if _, cmd := s.Update(esc); cmd != nil {
		t.Fatal("esc with code should ask first")
	}
	if !strings.Contains(s.View(100, 40), "Leave this challenge?") {
		t.Error("expected the leave prompt")
	}

	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.confirmQuit {
		t.Error("n should dismiss the prompt")
	}
	if s.editor.Value() != "def add(a, b):" {
		t.Error("dismissing the prompt changed the code")
	}

	s.Update(esc)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("y should leave")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("y should pop")
	}
}

func TestReview_OnlyAfterFailureAndWithoutAnswer(t *testing.T) {
	out, _ := json.Marshal(map[string]string{"feedback": "You subtract.", "next_step": "Look at the operator."})
	mock := llm.NewMockProvider(llm.MockResponse{Content: out})
	s, _ := newScreen(t, coach.NewService(mock, coach.DefaultConfig()))

	if _, cmd := s.Update(ctrlR); cmd != nil {
		t.Error("review should need a failed submission")
	}
	for i := 0; i < challenge.RevealAfterAttempts; i++ {
		submit(t, s, "def add(a, b):\n    return a - b")
	}
	if !s.canReview() {
		t.Fatal("review should be available after a failure")
	}

	_, cmd := s.Update(ctrlR)
	if cmd == nil || !s.reviewing {
		t.Fatal("expected a review in flight")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatalf("expected a batch, got %T", cmd())
	}
	s.Update(batch[0]())

	if s.reviewing || s.review == nil {
		t.Fatal("review not delivered")
	}
	if s.review.Feedback != "You subtract." {
		t.Errorf("review = %+v", s.review)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("provider calls = %d", mock.CallCount())
	}
	prompt := mock.Calls[0].Messages[0].Content
	if strings.Contains(prompt, "return a + b") {
		t.Error("the reference answer leaked into the coach prompt")
	}
	if !strings.Contains(prompt, "return a - b") {
		t.Error("the prompt should include the player's code")
	}
}

func TestCapturingInput(t *testing.T) {
	s, _ := newScreen(t, nil)
	if !s.CapturingInput() {
		t.Error("play screen should always capture input")
	}
}
