package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/store"
)

type memStore struct {
	p       *store.Progress
	saves   int
	saveErr error
}

func (m *memStore) Load(context.Context) (*store.Progress, error) {
	if m.p == nil {
		return store.NewProgress(), nil
	}
	return m.p.Clone(), nil
}

func (m *memStore) Save(_ context.Context, p *store.Progress) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.p = p.Clone()
	return nil
}

func passAll() challenge.Checker {
	return challenge.CheckerFunc(func(context.Context, string) (challenge.Result, error) {
		return challenge.Result{Passed: true, Message: "ok"}, nil
	})
}

func newChallenge(id string, cat challenge.Category) *challenge.Challenge {
	return &challenge.Challenge{
		ID:         id,
		Title:      id,
		Category:   cat,
		Difficulty: challenge.Easy,
		Checker:    passAll(),
	}
}

func newLoadedEngine(t *testing.T, ps store.ProgressStore, opts ...Option) *Engine {
	t.Helper()
	e := New(ps, opts...)
	require.NoError(t, e.Load(context.Background()))
	return e
}

func TestAdd_RejectsDuplicatesAndInvalid(t *testing.T) {
	e := newLoadedEngine(t, &memStore{})
	require.NoError(t, e.Add(newChallenge("a", challenge.CategoryBasics)))

	err := e.Add(newChallenge("a", challenge.CategoryAlgorithms))
	assert.ErrorIs(t, err, ErrDuplicateChallenge)

	bad := newChallenge("b", challenge.CategoryBasics)
	bad.Checker = nil
	assert.Error(t, e.Add(bad))

	got, ok := e.Get("a")
	require.True(t, ok)
	assert.Equal(t, challenge.CategoryBasics, got.Category)
}

func TestAvailable_FiltersLockedAndCompleted(t *testing.T) {
	ms := &memStore{p: &store.Progress{
		Completed: []string{"done"},
		Unlocked:  []string{"basics"},
		Level:     1,
	}}
	e := newLoadedEngine(t, ms)
	for _, ch := range []*challenge.Challenge{
		newChallenge("z", challenge.CategoryBasics),
		newChallenge("locked", challenge.CategoryAlgorithms),
		newChallenge("done", challenge.CategoryBasics),
		newChallenge("a", challenge.CategoryBasics),
	} {
		require.NoError(t, e.Add(ch))
	}

	var ids []string
	for _, ch := range e.Available() {
		ids = append(ids, ch.ID)
	}
	assert.Equal(t, []string{"z", "a"}, ids)
}

func TestComplete_ScoresOnce(t *testing.T) {
	ms := &memStore{}
	e := newLoadedEngine(t, ms)
	ch := newChallenge("hello", challenge.CategoryBasics)
	require.NoError(t, e.Add(ch))

	c, err := e.Complete(context.Background(), ch)
	require.NoError(t, err)
	assert.Equal(t, 150, c.Score)
	assert.Equal(t, 150, c.TotalScore)
	assert.False(t, c.LeveledUp())

	_, err = e.Complete(context.Background(), ch)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	assert.Equal(t, 150, e.Stats().Score)
	assert.Equal(t, 1, ms.saves)
	assert.Equal(t, []string{"hello"}, ms.p.Completed)
	assert.Empty(t, e.Available())
}

func TestComplete_NotLoaded(t *testing.T) {
	e := New(&memStore{})
	_, err := e.Complete(context.Background(), newChallenge("x", challenge.CategoryBasics))
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestComplete_ProgressionUnlocks(t *testing.T) {
	e := newLoadedEngine(t, &memStore{})
	ctx := context.Background()

	wantUnlocks := map[int][]challenge.Category{
		3:  {challenge.CategoryDataStructures},
		9:  {challenge.CategoryAlgorithms},
		15: {challenge.CategoryProblemSolving},
		21: {challenge.CategoryDebugging},
		27: {challenge.CategoryLeetcode},
	}

	for i := 1; i <= 27; i++ {
		ch := newChallenge(fmt.Sprintf("c%02d", i), challenge.CategoryBasics)
		require.NoError(t, e.Add(ch))
		c, err := e.Complete(ctx, ch)
		require.NoError(t, err)

		assert.Equal(t, i/3+1, c.Level, "level after %d completions", i)
		assert.Equal(t, wantUnlocks[i], c.Unlocked, "unlocks after %d completions", i)
		assert.Equal(t, i%3 == 0, c.LeveledUp())
	}

	stats := e.Stats()
	assert.Equal(t, 10, stats.Level)
	assert.Equal(t, 27, stats.Completed)
	assert.Len(t, stats.Unlocked, len(challenge.AllCategories))
}

func TestComplete_SaveFailureKeepsState(t *testing.T) {
	ms := &memStore{saveErr: errors.New("disk full")}
	e := newLoadedEngine(t, ms)
	ch := newChallenge("x", challenge.CategoryBasics)
	require.NoError(t, e.Add(ch))

	c, err := e.Complete(context.Background(), ch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 150, c.Score)
	assert.True(t, e.IsCompleted("x"))
}

func TestLoad_RewritesLegacyCategoryNames(t *testing.T) {
	ms := &memStore{p: &store.Progress{
		Unlocked: []string{"basics", "data_structures", "leetcode_style"},
		Level:    10,
	}}
	e := newLoadedEngine(t, ms)
	assert.Equal(t, []challenge.Category{
		challenge.CategoryBasics, challenge.CategoryDataStructures, challenge.CategoryLeetcode,
	}, e.Stats().Unlocked)
}

func TestCategories(t *testing.T) {
	ms := &memStore{p: &store.Progress{
		Completed: []string{"a"},
		Unlocked:  []string{"basics"},
		Level:     1,
	}}
	e := newLoadedEngine(t, ms)
	require.NoError(t, e.Add(newChallenge("a", challenge.CategoryBasics)))
	require.NoError(t, e.Add(newChallenge("b", challenge.CategoryBasics)))
	require.NoError(t, e.Add(newChallenge("c", challenge.CategoryAlgorithms)))

	cats := e.Categories()
	require.Len(t, cats, len(challenge.AllCategories))

	assert.Equal(t, CategoryStatus{
		Category: challenge.CategoryBasics, Unlocked: true, UnlockLevel: 1, Total: 2, Completed: 1,
	}, cats[0])
	assert.Equal(t, CategoryStatus{
		Category: challenge.CategoryAlgorithms, UnlockLevel: 4, Total: 1,
	}, cats[2])
}

func TestEvents_RecordedInStore(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "arena.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	e := newLoadedEngine(t, s.ProgressRepo(), WithEvents(s.EventRepo()))
	ch := newChallenge("hello", challenge.CategoryBasics)
	require.NoError(t, e.Add(ch))
	ctx := context.Background()

	ch.Start()
	res := ch.CheckSolution(ctx, "print('hi')")
	e.RecordAttempt(ctx, ch, res)
	_, err = e.Complete(ctx, ch)
	require.NoError(t, err)

	attempts, err := s.EventRepo().QueryAttempts(ctx, store.QueryOpts{ChallengeID: "hello"})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Passed)
	assert.Equal(t, 1, attempts[0].Attempt)

	completions, err := s.EventRepo().QueryCompletions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, 1, completions[0].Attempts)

	reloaded := newLoadedEngine(t, s.ProgressRepo())
	assert.True(t, reloaded.IsCompleted("hello"))
}
