package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gamesearch/internal/aggregator"
	"gamesearch/internal/coordinator"
	"gamesearch/internal/metrics"
	"gamesearch/internal/steam"
	mocks "gamesearch/internal/testutil"
)

type lookupFunc func(ctx context.Context, term string) ([]steam.Candidate, error)

func (f lookupFunc) Suggest(ctx context.Context, term string) ([]steam.Candidate, error) {
	return f(ctx, term)
}

type schedulerFunc func(ctx context.Context, candidates []steam.Candidate) coordinator.Outcome

func (f schedulerFunc) Run(ctx context.Context, candidates []steam.Candidate) coordinator.Outcome {
	return f(ctx, candidates)
}

func staticLookup(candidates []steam.Candidate, err error) Lookup {
	return lookupFunc(func(ctx context.Context, term string) ([]steam.Candidate, error) {
		return candidates, err
	})
}

// keepAll returns a scheduler that aggregates every candidate successfully
func keepAll(calls *int) Scheduler {
	return schedulerFunc(func(ctx context.Context, candidates []steam.Candidate) coordinator.Outcome {
		*calls++
		var out coordinator.Outcome
		for _, c := range candidates {
			out.Records = append(out.Records, aggregator.Record{
				Candidate: c,
				Details:   mocks.SampleDetails(),
				Proton:    mocks.SampleProton(),
			})
		}
		return out
	})
}

func TestRun_Success(t *testing.T) {
	calls := 0
	m := metrics.New(prometheus.NewRegistry())
	engine := New(staticLookup(mocks.Candidates(2), nil), keepAll(&calls), nil, m)

	results, err := engine.Run(context.Background(), "game")
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, "Game 1 - R$ 10,00", first.Title)
	assert.Equal(t, "https://img.example/1.jpg", first.Thumbnail)
	assert.Contains(t, first.Body, "[Game 1](https://cdn.akamai.steamstatic.com/steam/apps/1/header.jpg) - R$ 10,00")
	assert.Equal(t, []Link{
		{Label: "ProtonDB", URL: "https://protondb.com/app/1/"},
		{Label: "SteamDB", URL: "https://steamdb.info/app/1/"},
		{Label: "Página na Steam", URL: "https://store.steampowered.com/app/1/"},
	}, first.Links)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.OutcomeOK)))
}

func TestRun_LookupFailed(t *testing.T) {
	calls := 0
	cause := errors.New("store unreachable")
	core, logs := observer.New(zap.DebugLevel)
	engine := New(staticLookup(nil, cause), keepAll(&calls), zap.New(core), nil)

	results, err := engine.Run(context.Background(), "game")
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, calls, "scheduler must not run after a failed lookup")

	entries := logs.FilterMessage("lookup failed").All()
	require.Len(t, entries, 1)
	_, parseErr := uuid.Parse(entries[0].ContextMap()["request_id"].(string))
	assert.NoError(t, parseErr)
}

func TestRun_EmptyLookup(t *testing.T) {
	calls := 0
	core, logs := observer.New(zap.InfoLevel)
	engine := New(staticLookup(nil, nil), keepAll(&calls), zap.New(core), nil)

	results, err := engine.Run(context.Background(), "nothing")
	assert.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, calls)
	assert.Zero(t, logs.Len())
}

func TestRun_AllDropped(t *testing.T) {
	dropAll := schedulerFunc(func(ctx context.Context, candidates []steam.Candidate) coordinator.Outcome {
		var out coordinator.Outcome
		for _, c := range candidates {
			out.Dropped = append(out.Dropped, coordinator.Drop{Candidate: c, Err: aggregator.ErrMandatorySourceFailed})
		}
		return out
	})
	engine := New(staticLookup(mocks.Candidates(3), nil), dropAll, nil, nil)

	results, err := engine.Run(context.Background(), "game")
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrNoResults)
}
