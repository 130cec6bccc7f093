package saved

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screen"
	"github.com/abhisek/quizdesk/internal/store"
	"github.com/abhisek/quizdesk/internal/ui/layout"
	"github.com/abhisek/quizdesk/internal/ui/theme"
)

// Lister reads stored question sets.
type Lister interface {
	ListSubmissions(ctx context.Context, q store.SubmissionQuery) ([]store.SubmissionRecord, error)
}

const pageSize = 50

type loadedMsg struct {
	Records []store.SubmissionRecord
	Err     error
}

// SavedScreen lists question sets recorded in the local database.
type SavedScreen struct {
	lister   Lister
	records  []store.SubmissionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*SavedScreen)(nil)
var _ screen.KeyHintProvider = (*SavedScreen)(nil)

// New creates a new SavedScreen.
func New(lister Lister) *SavedScreen {
	return &SavedScreen{
		lister:   lister,
		expanded: make(map[int]bool),
	}
}

func (s *SavedScreen) Init() tea.Cmd {
	lister := s.lister
	return func() tea.Msg {
		records, err := lister.ListSubmissions(context.Background(), store.SubmissionQuery{Limit: pageSize})
		return loadedMsg{Records: records, Err: err}
	}
}

func (s *SavedScreen) Title() string {
	return "저장 기록"
}

func (s *SavedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SavedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *SavedScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\n오류: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  불러오는 중...")
	case len(s.records) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  아직 저장된 문항이 없습니다.")
	}

	cw := layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.records {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s  %-14s  %s", prefix, r.SubmittedAt, r.ActivityCode, r.TeacherEmail)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Width(cw).Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(r, cw)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderDetail(r store.SubmissionRecord, width int) string {
	var lines []string
	for i, q := range r.Questions {
		lines = append(lines, theme.Label.Render(fmt.Sprintf("문항 %d", i+1))+"  "+theme.Body.Render(q))
		if r.ImageURLs[i] != "" {
			lines = append(lines, theme.Hint.Render("  이미지: "+r.ImageURLs[i]))
		}
	}
	return theme.Card.Width(width).Render(strings.Join(lines, "\n"))
}
