// Package screen defines what the router stacks: the home menu, the two
// authoring screens and the saved-records list all satisfy Screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdesk/internal/ui/layout"
)

// Screen is one page of the TUI. The app draws the header and footer;
// a screen only renders the area between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header. An empty title hides it.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints,
// e.g. to match the current wizard step.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// LeaveGuard is implemented by screens that must not be popped while work
// they started is still running. Esc is ignored while CanLeave is false.
type LeaveGuard interface {
	CanLeave() bool
}

// CanLeave reports whether s may be popped.
func CanLeave(s Screen) bool {
	g, ok := s.(LeaveGuard)
	return !ok || g.CanLeave()
}
