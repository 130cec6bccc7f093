package author

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/submission"
	"github.com/abhisek/quizdesk/internal/taxonomy"
	"github.com/abhisek/quizdesk/internal/wizard"
)

type stubGenerator struct {
	text  string
	err   error
	calls []string
}

func (g *stubGenerator) Generate(_ context.Context, standard string) (string, error) {
	g.calls = append(g.calls, standard)
	return g.text, g.err
}

type stubSubmitter struct {
	forms []submission.Form
	err   error
}

func (s *stubSubmitter) Submit(_ context.Context, f submission.Form) error {
	if s.err != nil {
		return s.err
	}
	if missing := submission.Missing(f); len(missing) > 0 {
		return &submission.ValidationError{Fields: missing}
	}
	s.forms = append(s.forms, f)
	return nil
}

func testDeps(gen wizard.Generator, sub Submitter) Deps {
	s := wizard.New()
	tax := taxonomy.New([]taxonomy.Grade{{
		Name: "3학년",
		Subjects: []taxonomy.Subject{{
			Name: "수학",
			Categories: []taxonomy.Category{{
				Name:      "수와 연산",
				Standards: []string{"덧셈", "뺄셈"},
			}},
		}},
	}})
	return Deps{Session: &s, Taxonomy: tax, Generator: gen, Submitter: sub}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// runCmd executes cmd and returns the first message that is not a
// spinner tick, expanding batches.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			m := c()
			if _, tick := m.(spinnerTickMsg); tick {
				continue
			}
			return m
		}
		return nil
	default:
		return msg
	}
}

func TestAssist_FullFlowPlacesIntoSlot(t *testing.T) {
	gen := &stubGenerator{text: "문제 T"}
	deps := testDeps(gen, nil)
	a := NewAssist(deps)

	for i := 0; i < 3; i++ {
		_, cmd := a.Update(specialKey(tea.KeyEnter))
		if cmd != nil {
			t.Fatalf("step %d: expected no command", i)
		}
	}
	if deps.Session.Step != wizard.StepStandard {
		t.Fatalf("expected standard step, got %v", deps.Session.Step)
	}

	a.Update(specialKey(tea.KeyDown))
	_, cmd := a.Update(specialKey(tea.KeyEnter))
	if !deps.Session.Busy {
		t.Fatal("expected session to be busy while generating")
	}

	msg := runCmd(t, cmd)
	done, ok := msg.(wizard.GenerationDone)
	if !ok {
		t.Fatalf("expected GenerationDone, got %T", msg)
	}
	if len(gen.calls) != 1 || gen.calls[0] != "뺄셈" {
		t.Fatalf("expected one call for 뺄셈, got %v", gen.calls)
	}

	*deps.Session, _ = wizard.Apply(*deps.Session, done)
	a.Update(done)
	if !strings.Contains(a.View(100, 30), "문제 T") {
		t.Error("expected generated question in view")
	}

	a.Update(keyPress('2'))
	if got := deps.Session.Questions; got != [3]string{"", "문제 T", ""} {
		t.Errorf("unexpected questions %q", got)
	}
	if deps.Session.Step != wizard.StepStandard || deps.Session.Selections.Standard != "" {
		t.Errorf("expected return to standard step with it cleared, got %v %q",
			deps.Session.Step, deps.Session.Selections.Standard)
	}
}

func TestAssist_BusyIgnoresKeys(t *testing.T) {
	deps := testDeps(&stubGenerator{text: "x"}, nil)
	deps.Session.Step = wizard.StepReview
	deps.Session.Selections = wizard.Selections{Grade: "3학년", Subject: "수학", Category: "수와 연산", Standard: "덧셈"}
	deps.Session.Busy = true
	a := NewAssist(deps)

	if cmd := a.Init(); cmd == nil {
		t.Error("expected spinner to start for a busy session")
	}
	_, cmd := a.Update(specialKey(tea.KeyBackspace))
	if cmd != nil || deps.Session.Step != wizard.StepReview {
		t.Error("retreat should be ignored while busy")
	}
}

func TestAssist_FailureThenRetry(t *testing.T) {
	gen := &stubGenerator{err: errors.New("down")}
	deps := testDeps(gen, nil)
	deps.Session.Step = wizard.StepStandard
	deps.Session.Selections = wizard.Selections{Grade: "3학년", Subject: "수학", Category: "수와 연산"}
	a := NewAssist(deps)

	_, cmd := a.Update(specialKey(tea.KeyEnter))
	done := runCmd(t, cmd).(wizard.GenerationDone)
	*deps.Session, _ = wizard.Apply(*deps.Session, done)
	a.Update(done)

	if deps.Session.Step != wizard.StepReview || deps.Session.Err == "" {
		t.Fatalf("expected review step with error, got %v %q", deps.Session.Step, deps.Session.Err)
	}
	if !strings.Contains(a.View(100, 30), "실패") {
		t.Error("expected failure message in view")
	}

	// Placing without output is ignored.
	a.Update(keyPress('1'))
	if deps.Session.Questions[0] != "" {
		t.Error("nothing should be placed")
	}

	gen.err, gen.text = nil, "재시도 문제"
	_, cmd = a.Update(keyPress('r'))
	done = runCmd(t, cmd).(wizard.GenerationDone)
	*deps.Session, _ = wizard.Apply(*deps.Session, done)
	if deps.Session.Generated != "재시도 문제" {
		t.Errorf("expected retry output, got %q", deps.Session.Generated)
	}
}

func TestAssist_BackspaceRetreats(t *testing.T) {
	deps := testDeps(&stubGenerator{}, nil)
	a := NewAssist(deps)
	a.Update(specialKey(tea.KeyEnter))
	a.Update(specialKey(tea.KeyEnter))

	a.Update(specialKey(tea.KeyBackspace))
	if deps.Session.Step != wizard.StepSubject || deps.Session.Selections.Subject != "" {
		t.Errorf("expected subject step with subject cleared, got %+v", *deps.Session)
	}
	if deps.Session.Selections.Grade != "3학년" {
		t.Error("grade should be kept")
	}
}

func TestAssist_SwitchToCompose(t *testing.T) {
	a := NewAssist(testDeps(&stubGenerator{}, nil))
	_, cmd := a.Update(ctrlKey('e'))
	msg := runCmd(t, cmd)
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if _, ok := replace.Screen.(*ComposeScreen); !ok {
		t.Errorf("expected compose screen, got %T", replace.Screen)
	}
}

func TestCompose_PrefillsFromSession(t *testing.T) {
	deps := testDeps(nil, &stubSubmitter{})
	deps.Session.SetQuestion(2, "placed", "http://img")
	c := NewCompose(deps)

	if c.questions[1].Value() != "placed" || c.images[1].Value() != "http://img" {
		t.Error("expected slot 2 to be pre-filled")
	}
}

func TestCompose_SaveSuccess(t *testing.T) {
	sub := &stubSubmitter{}
	deps := testDeps(nil, sub)
	deps.Session.Questions = [3]string{"a", "b", "c"}
	deps.Session.ActivityCode = "ACT"
	c := NewCompose(deps)
	c.Init()

	_, cmd := c.Update(ctrlKey('s'))
	if !c.saving {
		t.Fatal("expected saving state")
	}

	// Input is blocked while saving.
	_, blocked := c.Update(ctrlKey('s'))
	if blocked != nil {
		t.Error("second save should be ignored while saving")
	}
	if c.CanLeave() {
		t.Error("screen should not be left while saving")
	}

	msg := runCmd(t, cmd)
	c.Update(msg)

	if len(sub.forms) != 1 || sub.forms[0].ActivityCode != "ACT" {
		t.Fatalf("expected one submitted form, got %+v", sub.forms)
	}
	if c.saving || c.failed {
		t.Error("expected saved state")
	}
	if !c.CanLeave() {
		t.Error("screen should be leavable once saved")
	}
	if !strings.Contains(c.View(100, 40), "저장되었습니다") {
		t.Error("expected confirmation in view")
	}
	// The draft is kept after saving.
	if deps.Session.Questions[0] != "a" {
		t.Error("draft should be kept")
	}
}

func TestCompose_SaveValidationError(t *testing.T) {
	sub := &stubSubmitter{}
	deps := testDeps(nil, sub)
	deps.Session.Questions = [3]string{"a", "", "c"}
	c := NewCompose(deps)

	_, cmd := c.Update(ctrlKey('s'))
	c.Update(runCmd(t, cmd))

	if !c.failed {
		t.Fatal("expected failure")
	}
	if !strings.Contains(c.status, "question2, activity_code") {
		t.Errorf("expected missing fields in status, got %q", c.status)
	}
	if len(sub.forms) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestCompose_SaveStorageError(t *testing.T) {
	sub := &stubSubmitter{err: &submission.StorageError{Err: errors.New("quota")}}
	deps := testDeps(nil, sub)
	c := NewCompose(deps)

	_, cmd := c.Update(ctrlKey('s'))
	c.Update(runCmd(t, cmd))
	if !c.failed || !strings.Contains(c.status, "quota") {
		t.Errorf("expected storage failure status, got %q", c.status)
	}
}

func TestCompose_TabCyclesFocus(t *testing.T) {
	c := NewCompose(testDeps(nil, nil))
	c.Init()
	for i := 0; i < numFields; i++ {
		c.Update(specialKey(tea.KeyTab))
	}
	if c.focus != 0 {
		t.Errorf("expected focus to wrap to 0, got %d", c.focus)
	}
	c.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if c.focus != fieldSave || !c.save.Focused {
		t.Errorf("expected save button focused, got %d", c.focus)
	}
}

func TestCompose_GenerateNeedsTaxonomy(t *testing.T) {
	deps := testDeps(&stubGenerator{}, nil)
	deps.Taxonomy = nil
	c := NewCompose(deps)

	if _, cmd := c.Update(ctrlKey('g')); cmd != nil {
		if _, ok := cmd().(router.ReplaceScreenMsg); ok {
			t.Error("assist should not open without a taxonomy")
		}
	}
}
