package home

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/engine"
	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screens/challenges"
	"github.com/abhisek/codearena/internal/screens/progress"
	"github.com/abhisek/codearena/internal/store"
)

func newHome(t *testing.T) *HomeScreen {
	t.Helper()
	eng := engine.New(store.NewFileStore(filepath.Join(t.TempDir(), "progress.json")))
	err := eng.Add(&challenge.Challenge{
		ID: "two_sum", Title: "Two Sum", Category: challenge.CategoryBasics, Difficulty: challenge.Easy,
		Checker: challenge.CheckerFunc(func(context.Context, string) (challenge.Result, error) {
			return challenge.Result{Passed: true}, nil
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	h := New(Deps{Engine: eng})
	h.Init()
	return h
}

func TestHomeScreen_StartLabelCountsAvailable(t *testing.T) {
	h := newHome(t)
	if h.labels[0] != labelStart+" (1)" {
		t.Errorf("start label = %q", h.labels[0])
	}
}

func TestHomeScreen_HistoryDisabledWithoutEvents(t *testing.T) {
	h := newHome(t)
	if !h.menu.Items[3].Disabled {
		t.Error("history should be disabled without an event repo")
	}
	if _, cmd := h.Update(tea.KeyPressMsg{Code: '4', Text: "4"}); cmd != nil {
		t.Error("shortcut ran a disabled item")
	}
}

func TestHomeScreen_Shortcuts(t *testing.T) {
	tests := []struct {
		key  rune
		want func(any) bool
	}{
		{'1', func(s any) bool { _, ok := s.(*challenges.ListScreen); return ok }},
		{'2', func(s any) bool { _, ok := s.(*progress.ProgressScreen); return ok }},
	}
	for _, tt := range tests {
		h := newHome(t)
		_, cmd := h.Update(tea.KeyPressMsg{Code: tt.key, Text: string(tt.key)})
		if cmd == nil {
			t.Fatalf("key %c: no command", tt.key)
		}
		msg, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("key %c: got %T", tt.key, cmd())
		}
		if !tt.want(msg.Screen) {
			t.Errorf("key %c pushed %T", tt.key, msg.Screen)
		}
	}
}

func TestHomeScreen_Quit(t *testing.T) {
	h := newHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestHomeScreen_View(t *testing.T) {
	view := newHome(t).View(100, 40)
	for _, want := range []string{"START A CHALLENGE", "QUIT"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
