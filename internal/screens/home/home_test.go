package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screens/author"
	"github.com/abhisek/quizdesk/internal/screens/saved"
	"github.com/abhisek/quizdesk/internal/store"
	"github.com/abhisek/quizdesk/internal/wizard"
)

func TestGenerateDisabledWithoutTaxonomy(t *testing.T) {
	s := wizard.New()
	h := New(author.Deps{Session: &s, TaxonomyErr: errors.New("standards file x not found")}, nil)

	if !h.menu.Items[1].Disabled {
		t.Error("generate item should be disabled")
	}
	view := h.View(100, 30)
	if !strings.Contains(view, "standards file x not found") {
		t.Error("expected load error on first view")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if strings.Contains(h.View(100, 30), "standards file x not found") {
		t.Error("load error should be shown only until the first key press")
	}
	if h.menu.Selected != 3 {
		t.Errorf("down should skip the disabled items, got %d", h.menu.Selected)
	}
}

func TestEnterOpensCompose(t *testing.T) {
	s := wizard.New()
	h := New(author.Deps{Session: &s}, nil)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*author.ComposeScreen); !ok {
		t.Errorf("expected compose screen, got %T", push.Screen)
	}
}

func TestProgressReflectsDraft(t *testing.T) {
	s := wizard.New()
	s.SetQuestion(1, "q", "")
	s.SetQuestion(3, "q", "")
	h := New(author.Deps{Session: &s}, nil)

	if !strings.Contains(h.View(100, 30), "2/3") {
		t.Error("expected 2/3 progress")
	}
}

type emptyLister struct{}

func (emptyLister) ListSubmissions(context.Context, store.SubmissionQuery) ([]store.SubmissionRecord, error) {
	return nil, nil
}

func TestSavedEntryOpensHistory(t *testing.T) {
	s := wizard.New()
	h := New(author.Deps{Session: &s}, emptyLister{})
	if h.menu.Items[2].Disabled {
		t.Fatal("saved entry should be enabled with a lister")
	}

	h.menu.Selected = 2
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*saved.SavedScreen); !ok {
		t.Errorf("expected saved screen, got %T", push.Screen)
	}
}
