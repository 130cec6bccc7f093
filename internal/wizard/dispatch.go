package wizard

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Generator produces one candidate question for a standard.
type Generator interface {
	Generate(ctx context.Context, standard string) (string, error)
}

// Dispatch applies ev and, when the transition asks for it, calls gen
// synchronously and folds the result back in. It is the blocking variant
// used by surfaces that handle one request at a time.
func Dispatch(ctx context.Context, s Session, ev Event, gen Generator) Session {
	next, effect := Apply(s, ev)
	if effect != EffectGenerate {
		return next
	}
	done := RunGeneration(ctx, gen, next.Selections.Standard)
	next, _ = Apply(next, done)
	return next
}

// RunGeneration calls gen for standard and packages the outcome as the
// event that completes an EffectGenerate. Asynchronous surfaces run it
// off the UI loop and feed the result back through Apply.
func RunGeneration(ctx context.Context, gen Generator, standard string) GenerationDone {
	start := time.Now()
	text, err := gen.Generate(ctx, standard)

	ev := log.Debug()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("standard", standard).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("question generation finished")

	return GenerationDone{Text: text, Err: err}
}
