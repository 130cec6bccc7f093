package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdesk/internal/router"
	"github.com/abhisek/quizdesk/internal/screen"
	"github.com/abhisek/quizdesk/internal/screens/author"
	"github.com/abhisek/quizdesk/internal/screens/home"
	"github.com/abhisek/quizdesk/internal/screens/saved"
	"github.com/abhisek/quizdesk/internal/screens/welcome"
	"github.com/abhisek/quizdesk/internal/taxonomy"
	"github.com/abhisek/quizdesk/internal/ui/layout"
	"github.com/abhisek/quizdesk/internal/wizard"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	// Taxonomy is nil when the standards file failed to load; TaxonomyErr
	// then says why and only manual entry is offered.
	Taxonomy    *taxonomy.Taxonomy
	TaxonomyErr error

	Generator wizard.Generator
	Submitter author.Submitter

	// Saved lists question sets kept in the local database; nil hides
	// the history entry.
	Saved saved.Lister

	// SkipSplash starts directly on the home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model. It owns the single authoring
// session of this run; screens share it through a pointer.
type AppModel struct {
	router  *router.Router
	session *wizard.Session
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	s := wizard.New()
	deps := author.Deps{
		Session:     &s,
		Taxonomy:    opts.Taxonomy,
		TaxonomyErr: opts.TaxonomyErr,
		Generator:   opts.Generator,
		Submitter:   opts.Submitter,
	}
	newHome := func() screen.Screen { return home.New(deps, opts.Saved) }

	var first screen.Screen
	if opts.SkipSplash {
		first = newHome()
	} else {
		first = welcome.New(newHome)
	}
	return AppModel{
		router:  router.New(first),
		session: &s,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case wizard.GenerationDone:
		// Results are folded in here so they land even if the screen
		// that started the call has been popped.
		*m.session, _ = wizard.Apply(*m.session, msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 && screen.CanLeave(m.router.Active()) {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.session.FilledCount(), wizard.NumSlots, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
