package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/ui/theme"
)

// Picker is a vertical single-choice list with a cursor. It scrolls when
// there are more options than fit in Height rows.
type Picker struct {
	Prompt   string
	Options  []string
	Selected int
	Height   int
}

// NewPicker creates a picker with the cursor on the first option.
func NewPicker(prompt string, options []string) Picker {
	return Picker{Prompt: prompt, Options: options, Height: 10}
}

// Update handles cursor movement. Selection is read by the caller on enter.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down", "j":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	case "home":
		p.Selected = 0
	case "end":
		if len(p.Options) > 0 {
			p.Selected = len(p.Options) - 1
		}
	}
	return p, nil
}

// Value returns the option under the cursor, or "" when there are none.
func (p Picker) Value() string {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return ""
	}
	return p.Options[p.Selected]
}

// View renders the prompt and the visible window of options.
func (p Picker) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Prompt) + "\n\n"
	if len(p.Options) == 0 {
		return s + theme.Hint.Render("  (선택할 항목이 없습니다)") + "\n"
	}

	start, end := p.window()
	if start > 0 {
		s += theme.Hint.Render("  ↑ 더 보기") + "\n"
	}
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%2d. %s", i+1, p.Options[i])
		if i == p.Selected {
			s += theme.Selected.Render("▸ "+line) + "\n"
		} else {
			s += theme.Unselected.Render("  "+line) + "\n"
		}
	}
	if end < len(p.Options) {
		s += theme.Hint.Render("  ↓ 더 보기") + "\n"
	}
	return s
}

func (p Picker) window() (int, int) {
	h := p.Height
	if h <= 0 || h >= len(p.Options) {
		return 0, len(p.Options)
	}
	start := p.Selected - h/2
	if start < 0 {
		start = 0
	}
	if start+h > len(p.Options) {
		start = len(p.Options) - h
	}
	return start, start + h
}
