package store

import (
	"context"
	"slices"
)

// Progress is the persisted player state.
type Progress struct {
	Score     int      `json:"score"`
	Completed []string `json:"completed_challenges"`
	Unlocked  []string `json:"unlocked_categories"`
	Level     int      `json:"current_level"`
}

// DefaultUnlocked is the category every new player starts with.
const DefaultUnlocked = "basics"

// NewProgress returns the state of a player who has done nothing yet.
func NewProgress() *Progress {
	return &Progress{
		Completed: []string{},
		Unlocked:  []string{DefaultUnlocked},
		Level:     1,
	}
}

// ProgressStore loads and saves player progress. Load returns NewProgress()
// when nothing has been saved yet.
type ProgressStore interface {
	Load(ctx context.Context) (*Progress, error)
	Save(ctx context.Context, p *Progress) error
}

// IsCompleted reports whether id has been completed.
func (p *Progress) IsCompleted(id string) bool {
	return slices.Contains(p.Completed, id)
}

// MarkCompleted adds id to the completed set. It returns false if id was
// already there.
func (p *Progress) MarkCompleted(id string) bool {
	if p.IsCompleted(id) {
		return false
	}
	p.Completed = append(p.Completed, id)
	return true
}

// IsUnlocked reports whether category is unlocked.
func (p *Progress) IsUnlocked(category string) bool {
	return slices.Contains(p.Unlocked, category)
}

// Unlock appends category if it is not unlocked yet.
func (p *Progress) Unlock(category string) bool {
	if p.IsUnlocked(category) {
		return false
	}
	p.Unlocked = append(p.Unlocked, category)
	return true
}

// normalize repairs state written by older or hand-edited files: duplicate
// completions are dropped and the starting category is always present.
func (p *Progress) normalize() {
	seen := make(map[string]bool, len(p.Completed))
	completed := make([]string, 0, len(p.Completed))
	for _, id := range p.Completed {
		if !seen[id] {
			seen[id] = true
			completed = append(completed, id)
		}
	}
	p.Completed = completed
	if !p.IsUnlocked(DefaultUnlocked) {
		p.Unlocked = append([]string{DefaultUnlocked}, p.Unlocked...)
	}
	if p.Level < 1 {
		p.Level = 1
	}
}

// Clone returns a deep copy.
func (p *Progress) Clone() *Progress {
	c := *p
	c.Completed = slices.Clone(p.Completed)
	c.Unlocked = slices.Clone(p.Unlocked)
	return &c
}
