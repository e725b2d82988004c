package coordinator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"gamesearch/internal/aggregator"
	"gamesearch/internal/metrics"
	"gamesearch/internal/steam"
)

var tracer = otel.Tracer("gamesearch/internal/coordinator")

// ErrTaskFault reports that a candidate's aggregation task could not run to completion.
var ErrTaskFault = errors.New("aggregation task fault")

// Aggregator builds the record of a single candidate.
type Aggregator interface {
	Aggregate(ctx context.Context, c steam.Candidate) (aggregator.Record, error)
}

// Drop is a candidate excluded from the output, with the reason.
type Drop struct {
	Candidate steam.Candidate
	Err       error
}

// Outcome is the result of one Run.
type Outcome struct {
	// Records holds the surviving candidates, in input order.
	Records []aggregator.Record
	// Dropped holds the excluded candidates, in input order.
	Dropped []Drop
}

// Options configures a Coordinator.
type Options struct {
	// MaxConcurrency bounds the candidates aggregated at once. Zero or less
	// runs every candidate at once.
	MaxConcurrency int
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
}

// Coordinator fans candidates out to concurrent aggregation tasks and
// gathers the results
type Coordinator struct {
	agg     Aggregator
	limit   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New creates a new Coordinator around agg
func New(agg Aggregator, opts Options) *Coordinator {
	c := &Coordinator{
		agg:     agg,
		limit:   opts.MaxConcurrency,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.metrics == nil {
		c.metrics = metrics.Discard()
	}
	return c
}

type taskResult struct {
	index  int
	record aggregator.Record
	err    error
}

// Run aggregates every candidate concurrently and waits for all of them.
// Each candidate runs in its own task and reports to a shared channel.
// A failing or panicking task only drops its own candidate.
// Records are returned in the order of candidates, never completion order.
func (c *Coordinator) Run(ctx context.Context, candidates []steam.Candidate) Outcome {
	if len(candidates) == 0 {
		return Outcome{}
	}

	ctx, span := tracer.Start(ctx, "coordinator.Run")
	defer span.End()

	start := time.Now()
	defer func() {
		c.metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	}()

	limit := c.limit
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}

	// Buffered so that no task ever blocks on a slow collector
	resultChan := make(chan taskResult, len(candidates))

	p := pool.New().WithMaxGoroutines(limit)
	for i, cand := range candidates {
		p.Go(func() {
			resultChan <- c.runTask(ctx, i, cand)
		})
	}

	// Close the result channel when all tasks are done
	go func() {
		p.Wait()
		close(resultChan)
	}()

	results := make([]taskResult, 0, len(candidates))
	for r := range resultChan {
		results = append(results, r)
	}
	slices.SortFunc(results, func(a, b taskResult) int {
		return a.index - b.index
	})

	var out Outcome
	for _, r := range results {
		cand := candidates[r.index]
		if r.err != nil {
			outcome := metrics.OutcomeDropped
			if errors.Is(r.err, ErrTaskFault) {
				outcome = metrics.OutcomeFault
			}
			c.metrics.Candidates.WithLabelValues(outcome).Inc()
			c.log.Info("candidate dropped",
				zap.Uint64("app_id", cand.ID),
				zap.String("name", cand.Name),
				zap.Error(r.err),
			)
			out.Dropped = append(out.Dropped, Drop{Candidate: cand, Err: r.err})
			continue
		}
		c.metrics.Candidates.WithLabelValues(metrics.OutcomeOK).Inc()
		out.Records = append(out.Records, r.record)
	}

	span.SetAttributes(
		attribute.Int("candidates", len(candidates)),
		attribute.Int("records", len(out.Records)),
		attribute.Int("dropped", len(out.Dropped)),
	)
	return out
}

// runTask aggregates one candidate, turning a panic into ErrTaskFault
func (c *Coordinator) runTask(ctx context.Context, index int, cand steam.Candidate) taskResult {
	res := taskResult{index: index}

	var pc panics.Catcher
	pc.Try(func() {
		res.record, res.err = c.agg.Aggregate(ctx, cand)
	})
	if r := pc.Recovered(); r != nil {
		c.log.Error("aggregation task panicked",
			zap.Uint64("app_id", cand.ID),
			zap.String("name", cand.Name),
			zap.String("stack", string(r.Stack)),
		)
		res.record = aggregator.Record{}
		res.err = fmt.Errorf("%w: %w", ErrTaskFault, r.AsError())
	}

	return res
}
