package aggregator

import (
	"errors"
	"fmt"

	"gamesearch/internal/fetcher"
)

// ErrMandatorySourceFailed matches every error that drops a candidate
// because one of its mandatory sources did not succeed.
var ErrMandatorySourceFailed = errors.New("mandatory source failed")

// SourceError is returned by Aggregate when a mandatory source failed or had no data.
type SourceError struct {
	Source string
	Status fetcher.Status
	Cause  error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	return fmt.Sprintf("mandatory source %s %s: %v", e.Source, e.Status, e.Cause)
}

// Unwrap exposes both ErrMandatorySourceFailed and the underlying cause.
func (e *SourceError) Unwrap() []error {
	return []error{ErrMandatorySourceFailed, e.Cause}
}
