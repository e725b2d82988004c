package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gamesearch/internal/fetcher"
	"gamesearch/internal/steam"
)

// MockSource is a configurable Source for tests.
// Calls counts every Fetch, including ones that panic.
type MockSource[T any] struct {
	SourceName string
	FetchFunc  func(ctx context.Context, id uint64) fetcher.Result[T]
	Calls      atomic.Int64
}

// Name implements the Source interface
func (m *MockSource[T]) Name() string {
	if m.SourceName == "" {
		return "mock"
	}
	return m.SourceName
}

// Fetch implements the Source interface
func (m *MockSource[T]) Fetch(ctx context.Context, id uint64) fetcher.Result[T] {
	m.Calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, id)
	}
	var zero T
	return fetcher.Success(zero)
}

// NewMockSource creates a mock source that always returns res
func NewMockSource[T any](name string, res fetcher.Result[T]) *MockSource[T] {
	return &MockSource[T]{
		SourceName: name,
		FetchFunc: func(ctx context.Context, id uint64) fetcher.Result[T] {
			return res
		},
	}
}

// NewSlowSource creates a mock source that returns res after delay,
// or Failed with the context error if ctx is done first.
func NewSlowSource[T any](name string, delay time.Duration, res fetcher.Result[T]) *MockSource[T] {
	return &MockSource[T]{
		SourceName: name,
		FetchFunc: func(ctx context.Context, id uint64) fetcher.Result[T] {
			select {
			case <-ctx.Done():
				return fetcher.Failed[T](ctx.Err())
			case <-time.After(delay):
				return res
			}
		},
	}
}

// NewPanickingSource creates a mock source whose Fetch panics
func NewPanickingSource[T any](name string) *MockSource[T] {
	return &MockSource[T]{
		SourceName: name,
		FetchFunc: func(ctx context.Context, id uint64) fetcher.Result[T] {
			panic(fmt.Sprintf("%s exploded for %d", name, id))
		},
	}
}

// Candidates returns n distinct candidates with ids starting at 1
func Candidates(n int) []steam.Candidate {
	out := make([]steam.Candidate, n)
	for i := range out {
		id := uint64(i + 1)
		out[i] = steam.Candidate{
			ID:        id,
			Name:      fmt.Sprintf("Game %d", id),
			Price:     "R$ 10,00",
			Thumbnail: fmt.Sprintf("https://img.example/%d.jpg", id),
		}
	}
	return out
}

// SampleDetails is a well-formed apphover payload
func SampleDetails() steam.AppHover {
	return steam.AppHover{
		ReleaseDate: "Lançamento: 10 out. 2007",
		Description: "Nine distinct classes provide a broad range of tactical abilities.",
		ReviewSummary: steam.ReviewSummary{
			Summary: "Muito positivas",
			Count:   1000000,
		},
	}
}

// SampleProton is a well-formed ProtonDB summary
func SampleProton() steam.ProtonSummary {
	return steam.ProtonSummary{Total: 42, Tier: "gold", TrendingTier: "platinum"}
}

// SampleDLCs is a DLC list with one discounted Windows/Linux item
func SampleDLCs() steam.DLCList {
	return steam.DLCList{
		Status: 1,
		Items: []steam.DLC{{
			ID:   1001,
			Name: " Soundtrack ",
			PriceOverview: steam.PriceOverview{
				Currency:        "BRL",
				Final:           1999,
				DiscountPercent: 50,
			},
			Platforms: steam.Platforms{Windows: true, Linux: true},
		}},
	}
}
