package wizard

import "github.com/abhisek/quizdesk/internal/taxonomy"

// View is everything a surface needs to draw a session.
type View struct {
	Step         Step             `json:"step"`
	StepName     string           `json:"step_name"`
	Selections   Selections       `json:"selections"`
	Options      []string         `json:"options"`
	Generated    string           `json:"generated,omitempty"`
	Error        string           `json:"error,omitempty"`
	Busy         bool             `json:"busy"`
	Questions    [NumSlots]string `json:"questions"`
	ImageURLs    [NumSlots]string `json:"image_urls"`
	ActivityCode string           `json:"activity_code"`
	TeacherEmail string           `json:"teacher_email"`
	FilledCount  int              `json:"filled_count"`
	CanGenerate  bool             `json:"can_generate"`
}

// Render derives the view of s. A nil taxonomy renders with no options,
// which leaves the assisted path unusable while manual entry keeps working.
// canGenerate reports whether a question generator is configured.
func Render(s Session, tax *taxonomy.Taxonomy, canGenerate bool) View {
	return View{
		Step:         s.Step,
		StepName:     s.Step.String(),
		Selections:   s.Selections,
		Options:      Options(s, tax),
		Generated:    s.Generated,
		Error:        s.Err,
		Busy:         s.Busy,
		Questions:    s.Questions,
		ImageURLs:    s.ImageURLs,
		ActivityCode: s.ActivityCode,
		TeacherEmail: s.TeacherEmail,
		FilledCount:  s.FilledCount(),
		CanGenerate:  canGenerate && len(tax.Grades()) > 0,
	}
}

// Options lists the choices offered by the selector of the current step.
func Options(s Session, tax *taxonomy.Taxonomy) []string {
	sel := s.Selections
	switch s.Step {
	case StepGrade:
		return tax.Grades()
	case StepSubject:
		return tax.Subjects(sel.Grade)
	case StepCategory:
		return tax.Categories(sel.Grade, sel.Subject)
	case StepStandard:
		return tax.Standards(sel.Grade, sel.Subject, sel.Category)
	}
	return nil
}
