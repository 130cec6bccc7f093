package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestPickerNavigation(t *testing.T) {
	p := NewPicker("고르세요", []string{"a", "b", "c"})
	if p.Value() != "a" {
		t.Fatalf("expected a, got %q", p.Value())
	}

	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if p.Selected != 0 {
		t.Error("up at top should stay")
	}
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if p.Value() != "c" {
		t.Errorf("expected c, got %q", p.Value())
	}
}

func TestPickerEmpty(t *testing.T) {
	p := NewPicker("고르세요", nil)
	if p.Value() != "" {
		t.Error("empty picker has no value")
	}
	if !strings.Contains(p.View(), "없습니다") {
		t.Error("expected empty hint")
	}
}

func TestPickerWindow(t *testing.T) {
	opts := make([]string, 20)
	for i := range opts {
		opts[i] = string(rune('A' + i))
	}
	p := NewPicker("", opts)
	p.Height = 5
	p.Selected = 19

	start, end := p.window()
	if start != 15 || end != 20 {
		t.Errorf("expected window [15,20), got [%d,%d)", start, end)
	}
	p.Selected = 0
	if start, _ := p.window(); start != 0 {
		t.Errorf("expected window to start at 0, got %d", start)
	}
}

func TestProgressBarCount(t *testing.T) {
	view := NewProgressBar("작성", 2, 3, 40).View()
	if !strings.Contains(view, "2/3") {
		t.Errorf("expected count in %q", view)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}, {Label: "b"}, {Label: "c", Disabled: true}, {Label: "d"}})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("expected d, got %d", m.Selected)
	}
}
