package fetcher

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports that a source legitimately has no data for a candidate.
var ErrUnavailable = errors.New("source has no data for this item")

// Status is the tag of a Result.
type Status int

const (
	// StatusSuccess means the payload is present and well formed
	StatusSuccess Status = iota
	// StatusUnavailable means the source answered but holds nothing for the item
	StatusUnavailable
	// StatusFailed means the call or the payload failed
	StatusFailed
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result represents the outcome of one source query for one candidate.
// Value is meaningful only when Status is StatusSuccess.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// Success wraps a well-formed payload.
func Success[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusSuccess}
}

// Unavailable reports that the source has nothing for the item.
func Unavailable[T any]() Result[T] {
	return Result[T]{Status: StatusUnavailable, Err: ErrUnavailable}
}

// Failed wraps the cause of a failed query.
func Failed[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("source failed without a cause")
	}
	return Result[T]{Status: StatusFailed, Err: err}
}

// OK reports whether the result carries a payload.
func (r Result[T]) OK() bool {
	return r.Status == StatusSuccess
}

// Get returns the payload and whether it is present, in the comma-ok style.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.OK()
}
