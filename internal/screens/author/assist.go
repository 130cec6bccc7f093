package author

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screen"
	"github.com/abhisek/quizdesk/internal/ui/components"
	"github.com/abhisek/quizdesk/internal/ui/layout"
	"github.com/abhisek/quizdesk/internal/ui/theme"
	"github.com/abhisek/quizdesk/internal/wizard"
)

var stepPrompts = [...]string{
	wizard.StepGrade:    "학년을 선택하세요",
	wizard.StepSubject:  "과목을 선택하세요",
	wizard.StepCategory: "영역을 선택하세요",
	wizard.StepStandard: "성취기준을 선택하세요",
}

// AssistScreen walks grade, subject, category and standard, then shows the
// generated question and places it into a slot.
type AssistScreen struct {
	deps   Deps
	picker components.Picker
	frame  int
}

var _ screen.Screen = (*AssistScreen)(nil)
var _ screen.KeyHintProvider = (*AssistScreen)(nil)

// NewAssist creates the assisted generation screen.
func NewAssist(deps Deps) *AssistScreen {
	a := &AssistScreen{deps: deps}
	a.resetPicker()
	return a
}

func (a *AssistScreen) Init() tea.Cmd {
	if a.deps.Session.Busy {
		return spinnerTick()
	}
	return nil
}

func (a *AssistScreen) Title() string {
	return "AI 문항 생성"
}

func (a *AssistScreen) KeyHints() []layout.KeyHint {
	s := a.deps.Session
	switch {
	case s.Busy:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.Step == wizard.StepReview && s.Generated != "":
		return []layout.KeyHint{
			{Key: "1-3", Description: "Place in slot"},
			{Key: "R", Description: "Regenerate"},
			{Key: "⌫", Description: "Change standard"},
			{Key: "Ctrl+E", Description: "Edit"},
		}
	case s.Step == wizard.StepReview:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "⌫", Description: "Change standard"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "⌫", Description: "Previous step"},
		{Key: "Ctrl+E", Description: "Edit"},
	}
}

func (a *AssistScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wizard.GenerationDone:
		// Already applied to the session by the app.
		a.resetPicker()
		return a, nil

	case spinnerTickMsg:
		if !a.deps.Session.Busy {
			return a, nil
		}
		a.frame++
		return a, spinnerTick()

	case tea.KeyMsg:
		return a, a.handleKey(msg.String(), msg)
	}
	return a, nil
}

func (a *AssistScreen) handleKey(key string, msg tea.Msg) tea.Cmd {
	s := a.deps.Session
	if s.Busy {
		return nil
	}

	switch key {
	case "ctrl+e":
		next := NewCompose(a.deps)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "backspace", "left":
		return a.apply(wizard.Retreat{})
	}

	if s.Step == wizard.StepReview {
		switch key {
		case "1", "2", "3":
			return a.apply(wizard.Place{Slot: int(key[0] - '0')})
		case "r":
			return a.apply(wizard.Generate{})
		}
		return nil
	}

	if key == "enter" || key == "right" {
		return a.apply(wizard.Advance{Value: a.picker.Value()})
	}
	a.picker, _ = a.picker.Update(msg)
	return nil
}

func (a *AssistScreen) apply(ev wizard.Event) tea.Cmd {
	next, effect := wizard.Apply(*a.deps.Session, ev)
	*a.deps.Session = next
	a.resetPicker()

	if effect != wizard.EffectGenerate {
		return nil
	}
	gen, standard := a.deps.Generator, next.Selections.Standard
	return tea.Batch(
		func() tea.Msg {
			return wizard.RunGeneration(context.Background(), gen, standard)
		},
		spinnerTick(),
	)
}

// resetPicker rebuilds the option list for the current step, keeping the
// cursor on the committed value when going back.
func (a *AssistScreen) resetPicker() {
	s := *a.deps.Session
	if s.Step > wizard.StepStandard {
		a.picker = components.Picker{}
		return
	}
	a.picker = components.NewPicker(stepPrompts[s.Step], wizard.Options(s, a.deps.Taxonomy))
}

func (a *AssistScreen) View(width, height int) string {
	s := a.deps.Session
	w := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(renderBreadcrumb(s.Selections) + "\n\n")

	if s.Step <= wizard.StepStandard {
		a.picker.Height = max(3, height-10)
		b.WriteString(a.picker.View())
	} else {
		b.WriteString(a.renderReview(w))
	}

	b.WriteString("\n" + renderSlots(s))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(b.String())
}

func (a *AssistScreen) renderReview(width int) string {
	s := a.deps.Session
	switch {
	case s.Busy:
		return theme.Hint.Render(spinnerFrames[a.frame%len(spinnerFrames)]+" 문제를 생성하는 중...") + "\n"
	case s.Err != "":
		return theme.Failed.Render("문제 생성에 실패했습니다") + "\n" +
			theme.Hint.Render(s.Err) + "\n\n" +
			theme.Hint.Render("R 키로 다시 시도할 수 있습니다.") + "\n"
	case s.Generated != "":
		card := theme.Generated.Width(width).Render(s.Generated)
		return card + "\n" + theme.Hint.Render("1, 2, 3 키로 해당 문항 칸에 넣습니다.") + "\n"
	}
	return theme.Hint.Render("R 키로 문제를 생성합니다.") + "\n"
}

func renderBreadcrumb(sel wizard.Selections) string {
	var parts []string
	for i := 0; i < 4; i++ {
		if v := sel.At(i); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return theme.Hint.Render("성취기준을 찾아 문항을 생성합니다")
	}
	return theme.Label.Render(strings.Join(parts, " › "))
}

func renderSlots(s *wizard.Session) string {
	var parts []string
	for i, q := range s.Questions {
		mark := "·"
		style := theme.Hint
		if strings.TrimSpace(q) != "" {
			mark, style = "✓", theme.Saved
		}
		parts = append(parts, style.Render(string(rune('1'+i))+" "+mark))
	}
	return theme.Hint.Render("문항 칸  ") + strings.Join(parts, "   ")
}
