package challenge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestChallenge(checker Checker) (*Challenge, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return &Challenge{
		ID:             "fizz_buzz",
		Title:          "FizzBuzz",
		Category:       CategoryBasics,
		Difficulty:     Easy,
		Hints:          []string{"one", "two", "three"},
		ExpectedAnswer: "def fizz_buzz(n):\n    return []",
		Checker:        checker,
		Clock:          clock.Now,
	}, clock
}

func failing(msg string) Checker {
	return CheckerFunc(func(context.Context, string) (Result, error) {
		return Result{Message: msg}, nil
	})
}

func TestHint_FIFOThenSentinel(t *testing.T) {
	c, _ := newTestChallenge(failing("no"))
	want := []string{"one", "two", "three", NoMoreHints}
	for i, w := range want {
		if got := c.Hint(); got != w {
			t.Errorf("hint %d = %q, want %q", i+1, got, w)
		}
	}
	if c.HintsUsed() != 3 {
		t.Errorf("HintsUsed = %d, want 3", c.HintsUsed())
	}
	if c.HintsRemaining() != 0 {
		t.Errorf("HintsRemaining = %d, want 0", c.HintsRemaining())
	}
}

func TestCheckSolution_CountsEveryAttempt(t *testing.T) {
	calls := 0
	checker := CheckerFunc(func(context.Context, string) (Result, error) {
		calls++
		switch calls {
		case 1:
			return Result{}, errors.New("boom")
		case 2:
			panic("checker exploded")
		default:
			return Result{Passed: true, Message: "ok"}, nil
		}
	})
	c, _ := newTestChallenge(checker)

	r := c.CheckSolution(context.Background(), "")
	if r.Passed || !strings.Contains(r.Message, "boom") {
		t.Errorf("attempt 1 = %+v", r)
	}
	r = c.CheckSolution(context.Background(), "garbage (((")
	if r.Passed || !strings.Contains(r.Message, "checker exploded") {
		t.Errorf("attempt 2 = %+v", r)
	}
	r = c.CheckSolution(context.Background(), "x")
	if !r.Passed {
		t.Errorf("attempt 3 = %+v, want pass", r)
	}
	if c.Attempts() != 3 {
		t.Errorf("Attempts = %d, want 3", c.Attempts())
	}
}

func TestCheckSolution_NilCheckerFails(t *testing.T) {
	c, _ := newTestChallenge(nil)
	r := c.CheckSolution(context.Background(), "")
	if r.Passed {
		t.Error("nil checker must not pass")
	}
}

func TestCheckSolution_RevealsAnswerFromThirdFailure(t *testing.T) {
	c, _ := newTestChallenge(failing("wrong"))
	for i := 1; i <= 5; i++ {
		r := c.CheckSolution(context.Background(), "")
		revealed := strings.Contains(r.Message, c.ExpectedAnswer)
		if i < RevealAfterAttempts && revealed {
			t.Errorf("attempt %d revealed the answer too early", i)
		}
		if i >= RevealAfterAttempts && !revealed {
			t.Errorf("attempt %d did not reveal the answer: %q", i, r.Message)
		}
	}
}

func TestCheckSolution_NoRevealWithoutExpectedAnswer(t *testing.T) {
	c, _ := newTestChallenge(failing("wrong"))
	c.ExpectedAnswer = ""
	for i := 0; i < 4; i++ {
		r := c.CheckSolution(context.Background(), "")
		if r.Message != "wrong" {
			t.Errorf("got %q, want unchanged message", r.Message)
		}
	}
}

func TestWithoutReveal(t *testing.T) {
	c, _ := newTestChallenge(failing("Test failed with input (3). Expected [], got None"))
	var r Result
	for i := 0; i < RevealAfterAttempts; i++ {
		r = c.CheckSolution(context.Background(), "")
	}
	if got := WithoutReveal(r.Message); got != "Test failed with input (3). Expected [], got None" {
		t.Errorf("WithoutReveal = %q", got)
	}
	if got := WithoutReveal("plain"); got != "plain" {
		t.Errorf("WithoutReveal(plain) = %q", got)
	}
}

func TestCalculateScore(t *testing.T) {
	c, clock := newTestChallenge(failing(""))

	if c.Elapsed() != 0 {
		t.Errorf("Elapsed before Start = %v, want 0", c.Elapsed())
	}

	c.Start()
	if got := c.CalculateScore(); got != 150 {
		t.Errorf("immediate score = %d, want 150", got)
	}

	clock.Advance(125 * time.Second)
	c.Hint()
	if got := c.CalculateScore(); got != 100+38-10 {
		t.Errorf("score = %d, want %d", got, 128)
	}

	clock.Advance(time.Hour)
	if got := c.CalculateScore(); got != 90 {
		t.Errorf("late score = %d, want 90", got)
	}

	c.Start()
	if c.Elapsed() != 0 {
		t.Errorf("restart did not reset the clock: %v", c.Elapsed())
	}
}

func TestScore_Floor(t *testing.T) {
	if got := Score(Easy, time.Hour, 20); got != MinScore {
		t.Errorf("got %d, want %d", got, MinScore)
	}
	if got := Score(Hard, 0, 0); got != 350 {
		t.Errorf("got %d, want 350", got)
	}
}

func TestValidate(t *testing.T) {
	c, _ := newTestChallenge(failing(""))
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Hints = append(c.Hints, "four")
	if err := c.Validate(); err == nil {
		t.Error("expected error for too many hints")
	}
}
