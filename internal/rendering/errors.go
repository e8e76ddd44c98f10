// Package rendering exports generation results as Markdown or HTML documents.
package rendering

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned when there is nothing to export
var ErrNoResults = errors.New("no results to render")

// Error reports a failure producing a document in one format
type Error struct {
	Format string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
