// Package wizard holds the question-authoring state machine: the user's
// selections, the three question slots and the transitions between the
// four selector steps and the review step.
package wizard

// Step identifies which selector (or the review of a generated question)
// the session is currently on.
type Step int

const (
	StepGrade    Step = iota // Choosing a grade
	StepSubject              // Choosing a subject within the grade
	StepCategory             // Choosing a category within the subject
	StepStandard             // Choosing a standard, advancing triggers generation
	StepReview               // Reviewing the generated question
)

// NumSlots is the fixed number of question slots in a set.
const NumSlots = 3

var stepNames = [...]string{"grade", "subject", "category", "standard", "review"}

// String returns the lowercase name of the step.
func (s Step) String() string {
	if s < StepGrade || s > StepReview {
		return "unknown"
	}
	return stepNames[s]
}

// Selections are the taxonomy keys chosen so far. A key may only be set
// when every key before it is set.
type Selections struct {
	Grade    string `json:"grade"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Standard string `json:"standard"`
}

// At returns the key for index i (0=grade .. 3=standard).
func (s Selections) At(i int) string {
	switch i {
	case 0:
		return s.Grade
	case 1:
		return s.Subject
	case 2:
		return s.Category
	case 3:
		return s.Standard
	}
	return ""
}

func (s *Selections) set(i int, v string) {
	switch i {
	case 0:
		s.Grade = v
	case 1:
		s.Subject = v
	case 2:
		s.Category = v
	case 3:
		s.Standard = v
	}
}

// Session is the state of one authoring session. Surfaces own one Session
// per user and move it forward only through Apply.
type Session struct {
	// Step is the current step of the selector flow.
	Step Step

	// Selections holds the committed taxonomy keys.
	Selections Selections

	// Questions are the three question texts, slot-addressed 1..3 by callers.
	Questions [NumSlots]string

	// ImageURLs run parallel to Questions and may be empty.
	ImageURLs [NumSlots]string

	// Generated is unconsumed generator output. Empty means none.
	Generated string

	// Err is the last non-fatal error to display.
	Err string

	// Busy is true while a generation call is outstanding.
	Busy bool

	// ActivityCode and TeacherEmail are only checked at submission.
	ActivityCode string
	TeacherEmail string
}

// New returns an empty session at the grade step.
func New() Session {
	return Session{Step: StepGrade}
}

// SetQuestion stores text into slot (1..3). Out-of-range slots are ignored.
func (s *Session) SetQuestion(slot int, text, imageURL string) {
	if slot < 1 || slot > NumSlots {
		return
	}
	s.Questions[slot-1] = text
	s.ImageURLs[slot-1] = imageURL
}

// FilledCount reports how many question slots hold non-blank text.
func (s Session) FilledCount() int {
	n := 0
	for _, q := range s.Questions {
		if !blank(q) {
			n++
		}
	}
	return n
}
