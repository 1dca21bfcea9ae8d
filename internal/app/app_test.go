package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codearena/internal/router"
	"github.com/abhisek/codearena/internal/screen"
	"github.com/abhisek/codearena/internal/screens/home"
	"github.com/abhisek/codearena/internal/ui/layout"
)

type stubScreen struct {
	capturing bool
	got       []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(width, height int) string { return "stub content" }
func (s *stubScreen) Title() string                 { return "Stub" }
func (s *stubScreen) CapturingInput() bool          { return s.capturing }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "X", Description: "Stub action"}}
}

func modelWith(screens ...screen.Screen) AppModel {
	r := router.New(screens[0])
	for _, s := range screens[1:] {
		r.Push(s)
	}
	return AppModel{router: r, width: 100, height: 40}
}

var esc = tea.KeyPressMsg{Code: tea.KeyEscape}

func TestEsc_PopsWhenNotCapturing(t *testing.T) {
	top := &stubScreen{}
	m := modelWith(&stubScreen{}, top)
	_, cmd := m.Update(esc)
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop")
	}
	if len(top.got) != 0 {
		t.Error("esc should not reach the screen")
	}
}

func TestEsc_ForwardedWhileCapturing(t *testing.T) {
	top := &stubScreen{capturing: true}
	m := modelWith(&stubScreen{}, top)
	m.Update(esc)
	if len(top.got) != 1 {
		t.Fatalf("screen got %d messages, want 1", len(top.got))
	}
	if m.router.Depth() != 2 {
		t.Error("capturing screen was popped")
	}
}

func TestEsc_NoopAtRoot(t *testing.T) {
	m := modelWith(&stubScreen{})
	if _, cmd := m.Update(esc); cmd != nil {
		t.Error("esc at the root should do nothing")
	}
}

func TestCtrlC_Quits(t *testing.T) {
	m := modelWith(&stubScreen{capturing: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit even while a screen captures input")
	}
}

func TestView_UsesScreenKeyHints(t *testing.T) {
	m := modelWith(&stubScreen{})
	content := m.render()
	for _, want := range []string{"Stub action", "stub content", "Stub"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInit_StartsOnWelcome(t *testing.T) {
	m := newAppModel(home.Deps{})
	if m.router.Active().Title() != "" {
		t.Errorf("first screen title = %q, want the welcome screen", m.router.Active().Title())
	}
	if m.Init() == nil {
		t.Error("welcome screen should start its animation")
	}
}
