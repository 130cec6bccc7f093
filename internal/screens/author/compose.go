package author

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screen"
	"github.com/abhisek/quizdesk/internal/submission"
	"github.com/abhisek/quizdesk/internal/ui/components"
	"github.com/abhisek/quizdesk/internal/ui/layout"
	"github.com/abhisek/quizdesk/internal/ui/theme"
	"github.com/abhisek/quizdesk/internal/wizard"
)

// Focus order: question and image per slot, then code, e-mail and save.
const (
	fieldCode  = 2 * wizard.NumSlots
	fieldEmail = fieldCode + 1
	fieldSave  = fieldEmail + 1
	numFields  = fieldSave + 1
)

// ComposeScreen edits the three questions, their image URLs and the
// submission fields, and saves the set.
type ComposeScreen struct {
	deps      Deps
	questions [wizard.NumSlots]textarea.Model
	images    [wizard.NumSlots]components.TextInput
	code      components.TextInput
	email     components.TextInput
	save      components.Button
	focus     int

	saving bool
	frame  int
	status string
	failed bool
}

var _ screen.Screen = (*ComposeScreen)(nil)
var _ screen.KeyHintProvider = (*ComposeScreen)(nil)

// NewCompose creates the manual entry screen, pre-filled from the session.
func NewCompose(deps Deps) *ComposeScreen {
	c := &ComposeScreen{deps: deps}
	s := deps.Session

	for i := 0; i < wizard.NumSlots; i++ {
		ta := textarea.New()
		ta.Placeholder = fmt.Sprintf("문항 %d을 입력하세요", i+1)
		ta.ShowLineNumbers = false
		ta.SetHeight(3)
		ta.SetValue(s.Questions[i])
		c.questions[i] = ta

		img := components.NewTextInput("이미지 URL", "https://...", false, 0)
		img.SetValue(s.ImageURLs[i])
		c.images[i] = img
	}

	c.code = components.NewTextInput("활동 코드", "예: MATH-3-01", true, 64)
	c.code.SetValue(s.ActivityCode)
	c.email = components.NewTextInput("교사 이메일", "teacher@example.com", false, 0)
	c.email.SetValue(s.TeacherEmail)

	c.save = components.NewButton("저장", func() tea.Cmd { return c.submit() })
	return c
}

func (c *ComposeScreen) Init() tea.Cmd {
	return c.setFocus(0)
}

func (c *ComposeScreen) Title() string {
	return "문항 작성"
}

func (c *ComposeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Save"},
	}
	if c.deps.CanGenerate() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Generate"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// CanLeave is false while a save is in flight.
func (c *ComposeScreen) CanLeave() bool {
	return !c.saving
}

func (c *ComposeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		c.handleSubmitDone(msg.Err)
		return c, nil

	case spinnerTickMsg:
		if !c.saving {
			return c, nil
		}
		c.frame++
		return c, spinnerTick()

	case tea.KeyMsg:
		if c.saving {
			return c, nil
		}
		switch msg.String() {
		case "tab":
			return c, c.setFocus((c.focus + 1) % numFields)
		case "shift+tab":
			return c, c.setFocus((c.focus + numFields - 1) % numFields)
		case "ctrl+s":
			return c, c.submit()
		case "ctrl+g":
			if !c.deps.CanGenerate() {
				return c, nil
			}
			c.sync()
			next := NewAssist(c.deps)
			return c, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}

	cmd := c.updateFocused(msg)
	c.sync()
	return c, cmd
}

func (c *ComposeScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case c.focus < fieldCode && c.focus%2 == 0:
		i := c.focus / 2
		c.questions[i], cmd = c.questions[i].Update(msg)
	case c.focus < fieldCode:
		i := c.focus / 2
		c.images[i], cmd = c.images[i].Update(msg)
	case c.focus == fieldCode:
		c.code, cmd = c.code.Update(msg)
	case c.focus == fieldEmail:
		c.email, cmd = c.email.Update(msg)
	case c.focus == fieldSave:
		c.save, cmd = c.save.Update(msg)
	}
	return cmd
}

func (c *ComposeScreen) setFocus(f int) tea.Cmd {
	for i := range c.questions {
		c.questions[i].Blur()
		c.images[i].Blur()
	}
	c.code.Blur()
	c.email.Blur()
	c.save.Focused = false

	c.focus = f
	switch {
	case f < fieldCode && f%2 == 0:
		return c.questions[f/2].Focus()
	case f < fieldCode:
		return c.images[f/2].Focus()
	case f == fieldCode:
		return c.code.Focus()
	case f == fieldEmail:
		return c.email.Focus()
	default:
		c.save.Focused = true
		return nil
	}
}

// sync copies the form fields into the shared session.
func (c *ComposeScreen) sync() {
	s := c.deps.Session
	for i := 0; i < wizard.NumSlots; i++ {
		s.SetQuestion(i+1, c.questions[i].Value(), c.images[i].Value())
	}
	s.ActivityCode = c.code.Value()
	s.TeacherEmail = c.email.Value()
}

func (c *ComposeScreen) submit() tea.Cmd {
	if c.saving {
		return nil
	}
	c.sync()
	if c.deps.Submitter == nil {
		c.status, c.failed = "저장소가 설정되지 않았습니다", true
		return nil
	}

	s := c.deps.Session
	form := submission.Form{
		Questions:    s.Questions,
		ImageURLs:    s.ImageURLs,
		ActivityCode: s.ActivityCode,
		TeacherEmail: s.TeacherEmail,
	}
	sub := c.deps.Submitter

	c.saving = true
	c.status, c.failed = "", false
	return tea.Batch(
		func() tea.Msg {
			return submitDoneMsg{Err: sub.Submit(context.Background(), form)}
		},
		spinnerTick(),
	)
}

func (c *ComposeScreen) handleSubmitDone(err error) {
	c.saving = false

	var verr *submission.ValidationError
	var serr *submission.StorageError
	switch {
	case err == nil:
		c.status, c.failed = "문항이 저장되었습니다.", false
	case errors.As(err, &verr):
		c.status, c.failed = "필수 항목이 비어 있습니다: "+verr.Detail(), true
		c.markMissing(verr.Fields)
	case errors.As(err, &serr):
		c.status, c.failed = "저장에 실패했습니다: "+serr.Err.Error(), true
	default:
		c.status, c.failed = "저장에 실패했습니다: "+err.Error(), true
	}
}

func (c *ComposeScreen) markMissing(fields []string) {
	for _, f := range fields {
		if f == "activity_code" {
			c.code.MarkInvalid()
		}
	}
}

func (c *ComposeScreen) View(width, height int) string {
	w := layout.ContentWidth(width)
	for i := range c.questions {
		c.questions[i].SetWidth(w)
	}

	var b strings.Builder
	for i := 0; i < wizard.NumSlots; i++ {
		label := theme.Label.Render(fmt.Sprintf("문항 %d", i+1)) +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(" *")
		b.WriteString(label + "\n")
		b.WriteString(c.questions[i].View() + "\n")
		b.WriteString(c.images[i].View() + "\n\n")
	}
	b.WriteString(c.code.View() + "\n\n")
	b.WriteString(c.email.View() + "\n\n")
	b.WriteString(c.save.View())

	switch {
	case c.saving:
		b.WriteString("  " + theme.Hint.Render(spinnerFrames[c.frame%len(spinnerFrames)]+" 저장 중..."))
	case c.status != "" && c.failed:
		b.WriteString("  " + theme.Failed.Render(c.status))
	case c.status != "":
		b.WriteString("  " + theme.Saved.Render(c.status))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(b.String())
}
