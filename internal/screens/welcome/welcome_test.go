package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screen"
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

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestBannerAppearsAfterFirstPhase(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()
	if strings.Contains(w.View(100, 30), "press any key") {
		t.Error("hint should not be visible at start")
	}

	sendTicks(w, 4)
	if !strings.Contains(w.View(100, 30), "press any key") {
		t.Error("hint should be visible after the first phase")
	}
	if w.filledSlots() != 1 {
		t.Errorf("expected one slot filled, got %d", w.filledSlots())
	}
}

func TestAutoTransitionAfterTotalDuration(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	cmd := sendTicks(w, int(totalDur/tickInterval))
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	// Further ticks stop.
	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("ticks should stop after the transition")
	}
}

func TestKeypressSkips(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || replace.Screen == nil {
		t.Fatal("expected ReplaceScreenMsg with a screen")
	}

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
