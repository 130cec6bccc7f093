package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screen"
	"github.com/abhisek/quizdesk/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

// sheetLines is the three-slot question sheet drawn above the banner; the
// slots fill in one by one.
var sheetLines = []string{
	"╭──────────────────╮",
	"│ 1. ____________  │",
	"│ 2. ____________  │",
	"│ 3. ____________  │",
	"╰──────────────────╯",
}

type tickMsg time.Time

// WelcomeScreen shows a short splash and then replaces itself with the
// screen produced by next. Any key skips it.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// filledSlots reports how many sheet slots are drawn as written.
func (w *WelcomeScreen) filledSlots() int {
	if w.elapsed < phase1End {
		return 0
	}
	n := int((w.elapsed-phase1End)/(300*time.Millisecond)) + 1
	return min(n, 3)
}

func (w *WelcomeScreen) View(width, height int) string {
	sheet := make([]string, len(sheetLines))
	copy(sheet, sheetLines)
	for i := 0; i < w.filledSlots(); i++ {
		sheet[i+1] = strings.Replace(sheet[i+1], "____________", "✓ 작성 완료   ", 1)
	}

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(sheet, "\n")),
	}

	if w.elapsed >= phase1End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("성취기준에 맞는 평가 문항을 빠르게"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
