// Package author holds the two authoring screens: manual entry of the
// question set and the AI-assisted standard picker. Both work on the one
// session owned by the app.
package author

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdesk/internal/submission"
	"github.com/abhisek/quizdesk/internal/taxonomy"
	"github.com/abhisek/quizdesk/internal/wizard"
)

// Submitter persists a finished question set.
type Submitter interface {
	Submit(ctx context.Context, f submission.Form) error
}

// Deps are shared by every authoring screen.
type Deps struct {
	Session     *wizard.Session
	Taxonomy    *taxonomy.Taxonomy
	TaxonomyErr error
	Generator   wizard.Generator
	Submitter   Submitter
}

// CanGenerate reports whether the assisted path is usable.
func (d Deps) CanGenerate() bool {
	return d.Taxonomy != nil && d.Generator != nil
}

// spinnerTickMsg animates the busy indicator.
type spinnerTickMsg time.Time

// submitDoneMsg carries the result of a save.
type submitDoneMsg struct {
	Err error
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
