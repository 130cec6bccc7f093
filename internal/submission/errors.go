package submission

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields that were left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields"
}

// Detail lists the missing fields, e.g. "question2, activity_code".
func (e *ValidationError) Detail() string {
	return strings.Join(e.Fields, ", ")
}

// StorageError wraps a failed append.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("save submission: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
