package fetcher

import "context"

// Source is one independent remote data fetch for a single candidate.
// Implementations must be safe for concurrent use: the aggregator calls
// Fetch for many candidates at once over the same shared transport.
type Source[T any] interface {
	// Name identifies the source in logs, metrics and the criticality table.
	Name() string

	// Fetch retrieves the payload for the candidate identified by id.
	// It never returns a bare error; failures are reported as a Failed result.
	Fetch(ctx context.Context, id uint64) Result[T]
}

// Func adapts a plain function into a named Source.
type Func[T any] struct {
	SourceName string
	FetchFunc  func(ctx context.Context, id uint64) Result[T]
}

// NewFunc creates a Source backed by fn.
func NewFunc[T any](name string, fn func(ctx context.Context, id uint64) Result[T]) *Func[T] {
	return &Func[T]{SourceName: name, FetchFunc: fn}
}

// Name implements Source
func (f *Func[T]) Name() string {
	return f.SourceName
}

// Fetch implements Source
func (f *Func[T]) Fetch(ctx context.Context, id uint64) Result[T] {
	return f.FetchFunc(ctx, id)
}
