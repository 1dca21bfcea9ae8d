package challenge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/codearena/internal/source"
)

const (
	// MaxHints is the most hints a challenge may carry.
	MaxHints = 3

	// RevealAfterAttempts is the attempt count from which failing results
	// include the expected answer.
	RevealAfterAttempts = 3

	// NoMoreHints is returned by Hint once every hint has been shown.
	NoMoreHints = "No more hints available!"

	// MinScore is the floor of CalculateScore.
	MinScore = 10

	// RevealHeader introduces the expected answer appended to failing
	// results.
	RevealHeader = "\n\nExpected solution:\n"
)

// Result is the verdict on one submission.
type Result struct {
	Passed  bool
	Message string

	// Unverified is set when the submission passed without being executed
	// against known inputs.
	Unverified bool
}

// Checker judges submitted source text. Implementations may return errors
// or panic; Challenge.CheckSolution turns both into failing results.
type Checker interface {
	Check(ctx context.Context, submission string) (Result, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, submission string) (Result, error)

func (f CheckerFunc) Check(ctx context.Context, submission string) (Result, error) {
	return f(ctx, submission)
}

// Challenge is one gradable exercise. The exported fields are set once at
// construction; runtime state is reached through methods.
type Challenge struct {
	ID             string
	Title          string
	Description    string
	Category       Category
	Difficulty     Difficulty
	Hints          []string
	ExpectedAnswer string
	Checker        Checker

	Source      string                // Reference file path; empty for built-ins.
	Facts       *source.FunctionFacts // Nil for built-ins.
	SampleCases [][]string            // Scanned from the reference file, informational.

	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time

	mu        sync.Mutex
	startedAt time.Time
	hintsUsed int
	attempts  int
}

// Validate reports construction mistakes.
func (c *Challenge) Validate() error {
	switch {
	case c.ID == "":
		return errors.New("challenge: empty ID")
	case c.Checker == nil:
		return fmt.Errorf("challenge %s: nil checker", c.ID)
	case len(c.Hints) > MaxHints:
		return fmt.Errorf("challenge %s: %d hints, at most %d allowed", c.ID, len(c.Hints), MaxHints)
	case c.Difficulty < Easy || c.Difficulty > Expert:
		return fmt.Errorf("challenge %s: invalid difficulty %d", c.ID, c.Difficulty)
	}
	return nil
}

func (c *Challenge) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Start records the start time. Calling it again restarts the clock.
func (c *Challenge) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startedAt = c.now()
}

// Started reports whether Start has been called.
func (c *Challenge) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.startedAt.IsZero()
}

// Elapsed is the time since Start, or zero if not started.
func (c *Challenge) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

func (c *Challenge) elapsedLocked() time.Duration {
	if c.startedAt.IsZero() {
		return 0
	}
	d := c.now().Sub(c.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Hint returns the next hint in order, or NoMoreHints once exhausted.
func (c *Challenge) Hint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hintsUsed >= len(c.Hints) {
		return NoMoreHints
	}
	h := c.Hints[c.hintsUsed]
	c.hintsUsed++
	return h
}

func (c *Challenge) HintsUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hintsUsed
}

// HintsRemaining is the number of hints not yet shown.
func (c *Challenge) HintsRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Hints) - c.hintsUsed
}

func (c *Challenge) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// CheckSolution judges a submission. It never fails: checker errors and
// panics become failing results. From the third attempt on, failing
// results carry the expected answer.
func (c *Challenge) CheckSolution(ctx context.Context, submission string) Result {
	c.mu.Lock()
	c.attempts++
	attempts := c.attempts
	c.mu.Unlock()

	res := c.runChecker(ctx, submission)
	if !res.Passed && attempts >= RevealAfterAttempts && c.ExpectedAnswer != "" {
		res.Message += RevealHeader + c.ExpectedAnswer
	}
	return res
}

func (c *Challenge) runChecker(ctx context.Context, submission string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Message: fmt.Sprintf("Error running your code: %v", r)}
		}
	}()
	r, err := c.Checker.Check(ctx, submission)
	if err != nil {
		return Result{Message: "Error running your code: " + err.Error()}
	}
	return r
}

// CalculateScore scores the challenge at the moment of the call:
// difficulty*100 plus a time bonus of up to 50 that shrinks by one point
// every ten seconds, minus 10 per hint used, floored at MinScore.
// Call it once, at the moment of completion.
func (c *Challenge) CalculateScore() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Score(c.Difficulty, c.elapsedLocked(), c.hintsUsed)
}

// Score is the scoring formula behind CalculateScore.
func Score(d Difficulty, elapsed time.Duration, hintsUsed int) int {
	timeBonus := max(0, 50-int(elapsed.Seconds())/10)
	return max(MinScore, int(d)*100+timeBonus-10*hintsUsed)
}

// WithoutReveal strips the expected answer CheckSolution may have appended
// to msg.
func WithoutReveal(msg string) string {
	if i := strings.Index(msg, RevealHeader); i >= 0 {
		return msg[:i]
	}
	return msg
}
