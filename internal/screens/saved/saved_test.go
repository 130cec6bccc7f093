package saved

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/store"
)

type stubLister struct {
	records []store.SubmissionRecord
	err     error
	query   store.SubmissionQuery
}

func (l *stubLister) ListSubmissions(_ context.Context, q store.SubmissionQuery) ([]store.SubmissionRecord, error) {
	l.query = q
	return l.records, l.err
}

func load(t *testing.T, s *SavedScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestListsAndExpands(t *testing.T) {
	l := &stubLister{records: []store.SubmissionRecord{
		{ID: 2, SubmittedAt: "2026-03-02 09:30:05", ActivityCode: "B", Questions: [3]string{"q1", "q2", "q3"}},
		{ID: 1, SubmittedAt: "2026-03-01 10:00:00", ActivityCode: "A", Questions: [3]string{"a1", "a2", "a3"}, ImageURLs: [3]string{"", "http://img", ""}},
	}}
	s := New(l)
	load(t, s)

	if l.query.Limit != pageSize {
		t.Errorf("expected limit %d, got %d", pageSize, l.query.Limit)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "2026-03-02 09:30:05") || !strings.Contains(view, "2026-03-01 10:00:00") {
		t.Error("expected both rows")
	}
	if strings.Contains(view, "a2") {
		t.Error("details should be collapsed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(100, 30)
	if !strings.Contains(view, "a2") || !strings.Contains(view, "http://img") {
		t.Error("expected expanded details of the second row")
	}
}

func TestEmptyAndError(t *testing.T) {
	s := New(&stubLister{})
	if !strings.Contains(s.View(100, 30), "불러오는 중") {
		t.Error("expected loading state before data arrives")
	}
	load(t, s)
	if !strings.Contains(s.View(100, 30), "없습니다") {
		t.Error("expected empty state")
	}

	s = New(&stubLister{err: errors.New("db locked")})
	load(t, s)
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected error message")
	}
}

func TestEscPops(t *testing.T) {
	s := New(&stubLister{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
