// Package aggregator merges the independent source queries of one candidate
// into a single Record.
package aggregator

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"gamesearch/internal/fetcher"
	"gamesearch/internal/metrics"
	"gamesearch/internal/steam"
)

var tracer = otel.Tracer("gamesearch/internal/aggregator")

// Sources are the per-candidate queries the aggregator runs.
type Sources struct {
	Details fetcher.Source[steam.AppHover]
	Proton  fetcher.Source[steam.ProtonSummary]
	DLC     fetcher.Source[steam.DLCList]
	Deck    fetcher.Source[steam.DeckStatus]
}

// Aggregator runs every source for a candidate concurrently and applies
// the criticality table to the results.
type Aggregator struct {
	sources Sources
	log     *zap.Logger
	metrics *metrics.Metrics
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger that receives one event per unsuccessful source.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// WithMetrics sets the collectors source outcomes are counted on.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// New creates an Aggregator over sources.
func New(sources Sources, opts ...Option) *Aggregator {
	a := &Aggregator{
		sources: sources,
		log:     zap.NewNop(),
		metrics: metrics.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// outcome is the untyped view of one source result used by the policy step.
type outcome struct {
	source string
	status fetcher.Status
	err    error
}

// Aggregate queries every source for c and merges the results.
// It waits for all sources even when a mandatory one has already failed,
// and returns a *SourceError when any mandatory source did not succeed.
func (a *Aggregator) Aggregate(ctx context.Context, c steam.Candidate) (Record, error) {
	ctx, span := tracer.Start(ctx, "aggregator.Aggregate", trace.WithAttributes(
		attribute.Int64("app_id", int64(c.ID)),
		attribute.String("name", c.Name),
	))
	defer span.End()

	var (
		details fetcher.Result[steam.AppHover]
		proton  fetcher.Result[steam.ProtonSummary]
		dlc     fetcher.Result[steam.DLCList]
		deck    fetcher.Result[steam.DeckStatus]
	)

	// Each goroutine writes only its own result variable.
	wg := conc.NewWaitGroup()
	wg.Go(func() { details = query(ctx, steam.SourceAppHover, a.sources.Details, c.ID) })
	wg.Go(func() { proton = query(ctx, steam.SourceProtonDB, a.sources.Proton, c.ID) })
	wg.Go(func() { dlc = query(ctx, steam.SourceDLC, a.sources.DLC, c.ID) })
	wg.Go(func() { deck = query(ctx, steam.SourceDeck, a.sources.Deck, c.ID) })
	wg.Wait()

	err := a.classify(c, []outcome{
		{source: steam.SourceAppHover, status: details.Status, err: details.Err},
		{source: steam.SourceProtonDB, status: proton.Status, err: proton.Err},
		{source: steam.SourceDLC, status: dlc.Status, err: dlc.Err},
		{source: steam.SourceDeck, status: deck.Status, err: deck.Err},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mandatory source failed")
		return Record{}, err
	}

	record := Record{
		Candidate: c,
		Details:   details.Value,
		Proton:    proton.Value,
	}
	if v, ok := dlc.Get(); ok {
		record.DLC = &v
	}
	if v, ok := deck.Get(); ok {
		record.Deck = &v
	}

	return record, nil
}

// classify logs and counts every unsuccessful source, and returns the error
// of the first mandatory one in table order.
func (a *Aggregator) classify(c steam.Candidate, outcomes []outcome) error {
	var firstErr error

	for _, o := range outcomes {
		a.metrics.SourceResults.WithLabelValues(o.source, o.status.String()).Inc()

		if o.status == fetcher.StatusSuccess {
			continue
		}

		crit := CriticalityOf(o.source)
		fields := []zap.Field{
			zap.Uint64("app_id", c.ID),
			zap.String("name", c.Name),
			zap.String("source", o.source),
			zap.Stringer("criticality", crit),
			zap.Stringer("status", o.status),
			zap.Error(o.err),
		}

		switch {
		case crit == Mandatory:
			a.log.Error("mandatory source failed", fields...)
			if firstErr == nil {
				firstErr = &SourceError{Source: o.source, Status: o.status, Cause: o.err}
			}
		case o.status == fetcher.StatusUnavailable:
			a.log.Info("optional source unavailable", fields...)
		default:
			a.log.Warn("optional source failed", fields...)
		}
	}

	return firstErr
}

// query runs one source. A panicking source is reported as Failed so that
// it cannot take its siblings or the candidate's other fields down with it.
func query[T any](ctx context.Context, name string, src fetcher.Source[T], id uint64) (res fetcher.Result[T]) {
	ctx, span := tracer.Start(ctx, "source."+name)
	defer span.End()

	var pc panics.Catcher
	pc.Try(func() {
		if src == nil {
			res = fetcher.Failed[T](fmt.Errorf("source %s is not configured", name))
			return
		}
		res = src.Fetch(ctx, id)
	})
	if r := pc.Recovered(); r != nil {
		res = fetcher.Failed[T](fmt.Errorf("source %s panicked: %w", name, r.AsError()))
	}

	span.SetAttributes(attribute.String("status", res.Status.String()))
	if res.Status == fetcher.StatusFailed {
		span.RecordError(res.Err)
	}
	return res
}
