package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screen"
	"github.com/abhisek/quizdesk/internal/screens/author"
	"github.com/abhisek/quizdesk/internal/screens/saved"
	"github.com/abhisek/quizdesk/internal/ui/components"
	"github.com/abhisek/quizdesk/internal/ui/layout"
	"github.com/abhisek/quizdesk/internal/ui/theme"
	"github.com/abhisek/quizdesk/internal/wizard"
)

// HomeScreen lets the teacher pick manual entry or AI-assisted generation
// and shows how far the current draft is.
type HomeScreen struct {
	deps      author.Deps
	menu      components.Menu
	notice    string
	dismissed bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. records may be nil when there is no local
// database to browse.
func New(deps author.Deps, records saved.Lister) *HomeScreen {
	generateHint := "성취기준을 골라 AI가 문항을 만듭니다"
	switch {
	case deps.Taxonomy == nil:
		generateHint = "성취기준 파일을 불러오지 못했습니다"
	case deps.Generator == nil:
		generateHint = "LLM이 설정되지 않았습니다"
	}

	items := []components.MenuItem{
		{Label: "문항 직접 작성", Hint: "세 문항과 활동 코드를 입력합니다", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: author.NewCompose(deps)}
			}
		}},
		{Label: "AI로 문항 생성", Hint: generateHint, Disabled: !deps.CanGenerate(), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: author.NewAssist(deps)}
			}
		}},
		{Label: "저장 기록", Hint: "이 컴퓨터에 기록된 문항 세트", Disabled: records == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: saved.New(records)}
			}
		}},
		{Label: "종료", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
	if deps.TaxonomyErr != nil {
		h.notice = deps.TaxonomyErr.Error()
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// The load error is shown until the first key press.
	if _, ok := msg.(tea.KeyMsg); ok && h.notice != "" {
		h.dismissed = true
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(layout.ContentWidth(width), 60)

	var sections []string
	sections = append(sections,
		theme.Title.Width(cw).Render("Quizdesk"),
		theme.Subtitle.Width(cw).Render("성취기준 기반 평가 문항 작성"),
	)

	if h.notice != "" && !h.dismissed {
		sections = append(sections, theme.Card.Width(cw).Render(
			theme.Warning.Render("성취기준을 불러오지 못했습니다")+"\n"+
				theme.Hint.Render(h.notice)+"\n\n"+
				theme.Body.Render("문항 직접 작성은 계속 사용할 수 있습니다."),
		))
	}

	bar := components.NewProgressBar("작성한 문항", h.deps.Session.FilledCount(), wizard.NumSlots, cw)
	sections = append(sections, bar.View(), h.menu.View())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
