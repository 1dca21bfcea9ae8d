package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/store"
)

var (
	// ErrDuplicateChallenge is returned by Add when the ID is already registered.
	ErrDuplicateChallenge = errors.New("duplicate challenge ID")

	// ErrAlreadyCompleted is returned by Complete for a challenge that was
	// scored before.
	ErrAlreadyCompleted = errors.New("challenge already completed")

	// ErrNotLoaded is returned when progress is used before Load.
	ErrNotLoaded = errors.New("progress not loaded")
)

// ChallengesPerLevel is how many completions it takes to gain a level.
const ChallengesPerLevel = 3

// Unlock ties a category to the level that opens it.
type Unlock struct {
	Level    int
	Category challenge.Category
}

// Unlocks lists category unlocks in order. Basics is always open.
var Unlocks = []Unlock{
	{Level: 2, Category: challenge.CategoryDataStructures},
	{Level: 4, Category: challenge.CategoryAlgorithms},
	{Level: 6, Category: challenge.CategoryProblemSolving},
	{Level: 8, Category: challenge.CategoryDebugging},
	{Level: 10, Category: challenge.CategoryLeetcode},
}

// LevelFor returns the level reached after completed challenges.
func LevelFor(completed int) int {
	return completed/ChallengesPerLevel + 1
}

// Completion reports what a completed challenge earned.
type Completion struct {
	ChallengeID string
	Score       int
	TotalScore  int
	PrevLevel   int
	Level       int
	Unlocked    []challenge.Category
}

// LeveledUp reports whether the completion raised the level.
func (c Completion) LeveledUp() bool { return c.Level > c.PrevLevel }

// Stats is a snapshot of player progress.
type Stats struct {
	Level     int
	Score     int
	Completed int
	Total     int
	Unlocked  []challenge.Category
}

// CategoryStatus describes one category on the categories screen.
type CategoryStatus struct {
	Category    challenge.Category
	Unlocked    bool
	UnlockLevel int
	Total       int
	Completed   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvents records attempts and completions in repo.
func WithEvents(repo store.EventRepo) Option {
	return func(e *Engine) { e.events = repo }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine owns the challenge set and the player's progress.
type Engine struct {
	progressStore store.ProgressStore
	events        store.EventRepo
	logger        *slog.Logger

	mu         sync.Mutex
	challenges map[string]*challenge.Challenge
	order      []string
	progress   *store.Progress
}

// New creates an Engine that persists progress through ps.
func New(ps store.ProgressStore, opts ...Option) *Engine {
	e := &Engine{
		progressStore: ps,
		logger:        slog.Default(),
		challenges:    make(map[string]*challenge.Challenge),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Load reads saved progress. Category names written with underscores by
// older saves are rewritten to the current form.
func (e *Engine) Load(ctx context.Context) error {
	p, err := e.progressStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	for i, c := range p.Unlocked {
		p.Unlocked[i] = strings.ReplaceAll(c, "_", "-")
	}

	e.mu.Lock()
	e.progress = p
	e.mu.Unlock()
	return nil
}

// Add registers a challenge. IDs must be unique.
func (e *Engine) Add(ch *challenge.Challenge) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.challenges[ch.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateChallenge, ch.ID)
	}
	e.challenges[ch.ID] = ch
	e.order = append(e.order, ch.ID)
	return nil
}

// Get returns the challenge with id.
func (e *Engine) Get(id string) (*challenge.Challenge, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch, ok := e.challenges[id]
	return ch, ok
}

// All returns every registered challenge in registration order.
func (e *Engine) All() []*challenge.Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*challenge.Challenge, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.challenges[id])
	}
	return out
}

// Available returns challenges in unlocked categories that are not yet
// completed, in registration order.
func (e *Engine) Available() []*challenge.Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []*challenge.Challenge
	for _, id := range e.order {
		ch := e.challenges[id]
		if e.progress != nil && e.progress.IsUnlocked(string(ch.Category)) && !e.progress.IsCompleted(id) {
			out = append(out, ch)
		}
	}
	return out
}

// IsCompleted reports whether id has been completed.
func (e *Engine) IsCompleted(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress != nil && e.progress.IsCompleted(id)
}

// Complete scores ch and updates progress. A challenge is scored at most
// once. The in-memory progress is updated even when saving fails.
func (e *Engine) Complete(ctx context.Context, ch *challenge.Challenge) (Completion, error) {
	e.mu.Lock()
	if e.progress == nil {
		e.mu.Unlock()
		return Completion{}, ErrNotLoaded
	}
	if e.progress.IsCompleted(ch.ID) {
		e.mu.Unlock()
		return Completion{}, fmt.Errorf("%w: %s", ErrAlreadyCompleted, ch.ID)
	}

	score := ch.CalculateScore()
	e.progress.Score += score
	e.progress.MarkCompleted(ch.ID)

	c := Completion{
		ChallengeID: ch.ID,
		Score:       score,
		TotalScore:  e.progress.Score,
		PrevLevel:   e.progress.Level,
	}
	c.Unlocked = e.checkProgression()
	c.Level = e.progress.Level
	snapshot := e.progress.Clone()
	e.mu.Unlock()

	e.logger.Info("challenge completed",
		"challenge", ch.ID, "score", score, "level", c.Level, "unlocked", c.Unlocked)

	if e.events != nil {
		err := e.events.AppendCompletion(ctx, store.CompletionEventData{
			ChallengeID: ch.ID,
			Score:       score,
			HintsUsed:   ch.HintsUsed(),
			Attempts:    ch.Attempts(),
			Elapsed:     ch.Elapsed(),
		})
		if err != nil {
			e.logger.Warn("record completion", "challenge", ch.ID, "error", err)
		}
	}

	if err := e.progressStore.Save(ctx, snapshot); err != nil {
		return c, fmt.Errorf("save progress: %w", err)
	}
	return c, nil
}

// checkProgression raises the level from the completion count and returns
// the categories it newly unlocked. Callers hold e.mu.
func (e *Engine) checkProgression() []challenge.Category {
	level := LevelFor(len(e.progress.Completed))
	if level <= e.progress.Level {
		return nil
	}
	e.progress.Level = level

	var unlocked []challenge.Category
	for _, u := range Unlocks {
		if level >= u.Level && e.progress.Unlock(string(u.Category)) {
			unlocked = append(unlocked, u.Category)
		}
	}
	return unlocked
}

// RecordAttempt logs a judged submission. Failures to record are logged
// and otherwise ignored.
func (e *Engine) RecordAttempt(ctx context.Context, ch *challenge.Challenge, res challenge.Result) {
	e.logger.Debug("attempt", "challenge", ch.ID, "attempt", ch.Attempts(), "passed", res.Passed, "unverified", res.Unverified)
	if e.events == nil {
		return
	}
	err := e.events.AppendAttempt(ctx, store.AttemptEventData{
		ChallengeID: ch.ID,
		Attempt:     ch.Attempts(),
		Passed:      res.Passed,
		Unverified:  res.Unverified,
		Message:     res.Message,
	})
	if err != nil {
		e.logger.Warn("record attempt", "challenge", ch.ID, "error", err)
	}
}

// Stats returns the current player stats.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Stats{Total: len(e.order)}
	if e.progress == nil {
		return s
	}
	s.Level = e.progress.Level
	s.Score = e.progress.Score
	s.Completed = len(e.progress.Completed)
	for _, c := range e.progress.Unlocked {
		s.Unlocked = append(s.Unlocked, challenge.Category(c))
	}
	return s
}

// Categories reports every category with its lock state and counts.
func (e *Engine) Categories() []CategoryStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]CategoryStatus, 0, len(challenge.AllCategories))
	for _, cat := range challenge.AllCategories {
		cs := CategoryStatus{Category: cat, UnlockLevel: 1}
		for _, u := range Unlocks {
			if u.Category == cat {
				cs.UnlockLevel = u.Level
			}
		}
		cs.Unlocked = e.progress != nil && e.progress.IsUnlocked(string(cat))
		for _, id := range e.order {
			if e.challenges[id].Category != cat {
				continue
			}
			cs.Total++
			if e.progress != nil && e.progress.IsCompleted(id) {
				cs.Completed++
			}
		}
		out = append(out, cs)
	}
	return out
}
