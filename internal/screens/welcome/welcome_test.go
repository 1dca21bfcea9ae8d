package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcomeWithCounter() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

// ticksToFinish is enough ticks to type the whole tagline.
func ticksToFinish() int {
	return int(typingDone/tickInterval) + 2
}

func TestTaglineTypesOut(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()

	if strings.Contains(w.View(100, 30), "Level") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, int(bannerAt/tickInterval)+5)
	if got := w.typed(); got != Tagline[:5] {
		t.Errorf("typed = %q, want %q", got, Tagline[:5])
	}

	sendTicks(w, ticksToFinish())
	view := w.View(100, 30)
	if !strings.Contains(view, Tagline) {
		t.Error("full tagline should be visible after typing")
	}
	if !strings.Contains(view, "press any key") {
		t.Error("continue hint should be visible after typing")
	}
}

func TestElapsedCapped(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	sendTicks(w, ticksToFinish()*3)
	if w.elapsed != typingDone {
		t.Errorf("expected elapsed capped at %v, got %v", typingDone, w.elapsed)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestKeypressSkipsToHome(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg")
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}

	// ticks after the transition stop rescheduling
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("tick after transition should not reschedule")
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(20), "A R E N A") {
		t.Error("narrow terminals should get the compact banner")
	}
	if strings.Contains(RenderBanner(80), "C O D E") {
		t.Error("wide terminals should get the block banner")
	}
}
