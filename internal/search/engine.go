// Package search turns a free-text query into display-ready results.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"gamesearch/internal/compose"
	"gamesearch/internal/coordinator"
	"gamesearch/internal/metrics"
	"gamesearch/internal/steam"
)

var tracer = otel.Tracer("gamesearch/internal/search")

var (
	// ErrLookupFailed reports that candidate discovery failed; the whole request fails.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrNoResults reports that candidates were found but every one was dropped.
	ErrNoResults = errors.New("no results")
)

// Lookup discovers the candidates matching a query.
type Lookup interface {
	Suggest(ctx context.Context, term string) ([]steam.Candidate, error)
}

// Scheduler aggregates candidates concurrently.
type Scheduler interface {
	Run(ctx context.Context, candidates []steam.Candidate) coordinator.Outcome
}

// Link is a click-through action attached to a result.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Result is one display-ready search hit.
type Result struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Thumbnail string `json:"thumbnail"`
	Links     []Link `json:"links"`
}

// Engine runs the lookup, aggregation and composition steps of one query.
type Engine struct {
	lookup    Lookup
	scheduler Scheduler
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// New creates an Engine. A nil logger or metrics disables them.
func New(lookup Lookup, scheduler Scheduler, log *zap.Logger, m *metrics.Metrics) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.Discard()
	}
	return &Engine{lookup: lookup, scheduler: scheduler, log: log, metrics: m}
}

// Run answers query. It returns nil, nil when the lookup finds nothing,
// ErrLookupFailed when the lookup itself fails, and ErrNoResults when every
// candidate was dropped during aggregation.
func (e *Engine) Run(ctx context.Context, query string) ([]Result, error) {
	requestID := uuid.NewString()
	log := e.log.With(zap.String("request_id", requestID), zap.String("query", query))

	ctx, span := tracer.Start(ctx, "search.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("request_id", requestID),
		attribute.String("query", query),
	)

	start := time.Now()

	candidates, err := e.lookup.Suggest(ctx, query)
	if err != nil {
		e.metrics.Lookups.WithLabelValues(metrics.OutcomeFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		log.Error("lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if len(candidates) == 0 {
		e.metrics.Lookups.WithLabelValues(metrics.OutcomeEmpty).Inc()
		log.Debug("lookup returned no candidates")
		return nil, nil
	}
	e.metrics.Lookups.WithLabelValues(metrics.OutcomeOK).Inc()

	outcome := e.scheduler.Run(ctx, candidates)

	log.Info("built results",
		zap.Int("candidates", len(candidates)),
		zap.Int("records", len(outcome.Records)),
		zap.Int("dropped", len(outcome.Dropped)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if len(outcome.Records) == 0 {
		return nil, ErrNoResults
	}

	results := make([]Result, 0, len(outcome.Records))
	for _, r := range outcome.Records {
		c := r.Candidate
		results = append(results, Result{
			ID:        c.ID,
			Title:     fmt.Sprintf("%s - %s", c.Name, c.Price),
			Body:      compose.Compose(r),
			Thumbnail: c.Thumbnail,
			Links: []Link{
				{Label: "ProtonDB", URL: steam.ProtonDBURL(c.ID)},
				{Label: "SteamDB", URL: steam.SteamDBURL(c.ID)},
				{Label: "Página na Steam", URL: steam.StoreURL(c.ID)},
			},
		})
	}

	return results, nil
}
