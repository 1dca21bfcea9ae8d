package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "arena.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProgressRepo_DefaultAndRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Score != 0 || p.Level != 1 || len(p.Completed) != 0 {
		t.Errorf("unexpected default progress: %+v", p)
	}
	if len(p.Unlocked) != 1 || p.Unlocked[0] != DefaultUnlocked {
		t.Errorf("default unlocked = %v", p.Unlocked)
	}

	p.Score = 450
	p.MarkCompleted("two_sum")
	p.Unlock("data-structures")
	p.Level = 2
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Saving twice overwrites the single row.
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Score != 450 || got.Level != 2 || !got.IsCompleted("two_sum") || !got.IsUnlocked("data-structures") {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if seq <= prev {
			t.Errorf("sequence %d not greater than %d", seq, prev)
		}
		prev = seq
	}
}

func TestAttemptEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, id := range []string{"two_sum", "fizz_buzz", "two_sum"} {
		err := repo.AppendAttempt(ctx, AttemptEventData{
			ChallengeID: id,
			Attempt:     i + 1,
			Passed:      i == 2,
			Message:     "msg",
		})
		if err != nil {
			t.Fatalf("AppendAttempt: %v", err)
		}
	}

	all, err := repo.QueryAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryAttempts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d attempts, want 3", len(all))
	}
	if all[0].Attempt != 3 || !all[0].Passed {
		t.Errorf("newest attempt = %+v", all[0])
	}
	if all[0].ID == "" || all[0].ID == all[1].ID {
		t.Errorf("attempt IDs not unique: %q %q", all[0].ID, all[1].ID)
	}

	filtered, err := repo.QueryAttempts(ctx, QueryOpts{ChallengeID: "two_sum", Limit: 1})
	if err != nil {
		t.Fatalf("QueryAttempts: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ChallengeID != "two_sum" || filtered[0].Attempt != 3 {
		t.Errorf("filtered = %+v", filtered)
	}

	future, err := repo.QueryAttempts(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("QueryAttempts: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("got %d future attempts, want 0", len(future))
	}
}

func TestCompletionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendCompletion(ctx, CompletionEventData{
		ChallengeID: "fizz_buzz",
		Score:       140,
		HintsUsed:   1,
		Attempts:    2,
		Elapsed:     90 * time.Second,
	})
	if err != nil {
		t.Fatalf("AppendCompletion: %v", err)
	}

	got, err := repo.QueryCompletions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryCompletions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d completions, want 1", len(got))
	}
	c := got[0]
	if c.Score != 140 || c.HintsUsed != 1 || c.Attempts != 2 || c.Elapsed != 90*time.Second {
		t.Errorf("completion = %+v", c)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "coach", ChallengeID: "two_sum", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m1", Purpose: "coach", ChallengeID: "two_sum", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: false, ErrorMessage: "boom"},
		{Provider: "mock", Model: "m2", Purpose: "other", ChallengeID: "fizz_buzz", InputTokens: 1, OutputTokens: 1, LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "coach"})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(list) != 2 || list[0].ErrorMessage != "boom" {
		t.Fatalf("coach events = %+v", list)
	}

	e, err := repo.GetLLMEvent(ctx, list[1].ID)
	if err != nil || e == nil {
		t.Fatalf("GetLLMEvent: %v, %v", e, err)
	}
	if e.InputTokens != 10 || !e.Success || e.ChallengeID != "two_sum" {
		t.Errorf("event = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("GetLLMEvent(missing) = %v, %v", missing, err)
	}

	fizz, err := repo.QueryLLMEvents(ctx, QueryOpts{ChallengeID: "fizz_buzz"})
	if err != nil {
		t.Fatalf("QueryLLMEvents(challenge): %v", err)
	}
	if len(fizz) != 1 || fizz[0].Model != "m2" {
		t.Errorf("fizz_buzz events = %+v", fizz)
	}
	none, err := repo.QueryLLMEvents(ctx, QueryOpts{ChallengeID: "fizz_buzz", Purpose: "coach"})
	if err != nil || len(none) != 0 {
		t.Errorf("combined filter = %+v, %v", none, err)
	}

	byChallenge, err := repo.LLMUsageByChallenge(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByChallenge: %v", err)
	}
	if len(byChallenge) != 2 || byChallenge[1].ChallengeID != "two_sum" || byChallenge[1].Calls != 2 ||
		byChallenge[1].Failures != 1 || byChallenge[1].InputTokens != 30 || byChallenge[1].AvgLatencyMs != 200 {
		t.Errorf("usage by challenge = %+v", byChallenge)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByModel: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "m2" {
		t.Errorf("usage by model = %+v", byModel)
	}
}
