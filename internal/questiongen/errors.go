package questiongen

import (
	"errors"
	"fmt"
)

// ErrEmptyGeneration means the model answered without usable content:
// no completions, or a first completion that is blank.
var ErrEmptyGeneration = errors.New("question generation returned no content")

// GenerationError wraps a failed model call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
