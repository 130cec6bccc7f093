package wizard

import "strings"

// Event is an input to the step controller.
type Event interface {
	event()
}

// Advance commits Value for the current step and moves forward.
type Advance struct{ Value string }

// Retreat clears the key of the previous step and moves back.
type Retreat struct{}

// Generate re-issues generation for the committed standard at the review step.
type Generate struct{}

// Place copies the generated question into Slot (1..3).
type Place struct{ Slot int }

// GenerationDone delivers the result of a generation call.
type GenerationDone struct {
	Text string
	Err  error
}

func (Advance) event()        {}
func (Retreat) event()        {}
func (Generate) event()       {}
func (Place) event()          {}
func (GenerationDone) event() {}

// Effect is work the caller must perform after a transition.
type Effect int

const (
	EffectNone     Effect = iota
	EffectGenerate        // call the generator for Selections.Standard
)

// Apply computes the session that results from ev. Events that are not
// valid in the current state leave the session unchanged. While a
// generation call is outstanding only GenerationDone is accepted.
func Apply(s Session, ev Event) (Session, Effect) {
	if s.Busy {
		if done, ok := ev.(GenerationDone); ok {
			return finishGeneration(s, done), EffectNone
		}
		return s, EffectNone
	}

	switch ev := ev.(type) {
	case Advance:
		return advance(s, ev.Value)

	case Retreat:
		return retreat(s), EffectNone

	case Generate:
		if s.Step != StepReview || blank(s.Selections.Standard) {
			return s, EffectNone
		}
		return startGeneration(s), EffectGenerate

	case Place:
		if s.Step != StepReview || s.Generated == "" || ev.Slot < 1 || ev.Slot > NumSlots {
			return s, EffectNone
		}
		s.Questions[ev.Slot-1] = s.Generated
		s.Generated = ""
		s.Err = ""
		s.Selections.Standard = ""
		s.Step = StepStandard
		return s, EffectNone
	}

	// GenerationDone without an outstanding call is stale.
	return s, EffectNone
}

func advance(s Session, value string) (Session, Effect) {
	if s.Step > StepStandard || blank(value) {
		return s, EffectNone
	}

	s.Selections.set(int(s.Step), value)
	s.Err = ""
	if s.Step == StepStandard {
		s.Step = StepReview
		return startGeneration(s), EffectGenerate
	}
	s.Step++
	return s, EffectNone
}

func retreat(s Session) Session {
	if s.Step == StepGrade {
		return s
	}
	if s.Step == StepReview {
		s.Generated = ""
	}
	s.Step--
	s.Selections.set(int(s.Step), "")
	s.Err = ""
	return s
}

func startGeneration(s Session) Session {
	s.Busy = true
	s.Generated = ""
	s.Err = ""
	return s
}

func finishGeneration(s Session, done GenerationDone) Session {
	s.Busy = false
	if s.Step != StepReview {
		return s
	}
	if done.Err != nil {
		s.Err = done.Err.Error()
		return s
	}
	s.Generated = done.Text
	return s
}

func blank(v string) bool {
	return strings.TrimSpace(v) == ""
}
