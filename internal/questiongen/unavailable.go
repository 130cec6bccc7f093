package questiongen

import "context"

type unavailable struct{ err error }

// Unavailable returns a Generator whose every call fails with err wrapped
// in *GenerationError. Surfaces use it when no provider is configured, so
// the assisted path reports the problem instead of disappearing.
func Unavailable(err error) Generator {
	return unavailable{err: err}
}

func (u unavailable) Generate(context.Context, string) (string, error) {
	return "", &GenerationError{Err: u.err}
}
