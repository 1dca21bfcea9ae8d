package categories

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/store"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(store.NewFileStore(filepath.Join(t.TempDir(), "progress.json")))
	for _, ch := range []*challenge.Challenge{
		{ID: "a", Title: "A", Category: challenge.CategoryBasics, Difficulty: challenge.Easy},
		{ID: "b", Title: "B", Category: challenge.CategoryBasics, Difficulty: challenge.Easy},
		{ID: "c", Title: "C", Category: challenge.CategoryAlgorithms, Difficulty: challenge.Medium},
	} {
		ch.Checker = challenge.CheckerFunc(func(context.Context, string) (challenge.Result, error) {
			return challenge.Result{Passed: true}, nil
		})
		if err := eng.Add(ch); err != nil {
			t.Fatal(err)
		}
	}
	if err := eng.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestCategoriesScreen_View(t *testing.T) {
	eng := newEngine(t)
	ch, _ := eng.Get("a")
	if _, err := eng.Complete(context.Background(), ch); err != nil {
		t.Fatal(err)
	}

	s := New(eng)
	s.Init()
	view := s.View(100, 40)

	for _, want := range []string{
		"Basics",
		"1/2",
		"Data Structures",
		"Reach level 2 (1 more level)",
		"Reach level 4 (3 more levels)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCategoriesScreen_Title(t *testing.T) {
	if got := New(newEngine(t)).Title(); got != "Categories" {
		t.Errorf("Title = %q", got)
	}
}
