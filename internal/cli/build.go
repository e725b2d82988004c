package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"resty.dev/v3"

	"gamesearch/internal/aggregator"
	"gamesearch/internal/config"
	"gamesearch/internal/coordinator"
	"gamesearch/internal/fetcher"
	"gamesearch/internal/metrics"
	"gamesearch/internal/ratelimit"
	"gamesearch/internal/search"
	"gamesearch/internal/steam"
)

// pipeline is the fully wired search stack for one process.
type pipeline struct {
	engine   *search.Engine
	registry *prometheus.Registry
	http     *resty.Client
}

// Close releases the shared transport.
func (p *pipeline) Close() error {
	return p.http.Close()
}

// newPipeline wires every component from cfg. The resty client is the
// one transport shared read-only by all concurrent tasks.
func newPipeline(cfg *config.Config, log *zap.Logger) *pipeline {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	httpClient := fetcher.NewHTTPClient(fetcher.ClientOptions{
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})

	rules := make(map[ratelimit.API]ratelimit.Rule, len(cfg.RateLimits))
	for name, rl := range cfg.RateLimits {
		rules[ratelimit.API(name)] = ratelimit.Rule{RPS: rl.RPS, Burst: rl.Burst}
	}

	client := steam.NewClient(httpClient, steam.Options{
		StoreBaseURL:    cfg.StoreBaseURL,
		ProtonDBBaseURL: cfg.ProtonDBBaseURL,
		CountryCode:     cfg.CountryCode,
		Language:        cfg.Language,
		Limiter:         ratelimit.New(rules),
		Logger:          log.Named("steam"),
	})

	retry := fetcher.RetryOptions{
		MaxRetries: cfg.MaxRetries,
		Logger:     log.Named("retry"),
	}
	agg := aggregator.New(aggregator.Sources{
		Details: fetcher.WithRetry(client.AppHoverSource(), retry),
		Proton:  fetcher.WithRetry(client.ProtonDBSource(), retry),
		DLC:     fetcher.WithRetry(client.DLCSource(), retry),
		Deck:    fetcher.WithRetry(client.DeckSource(), retry),
	},
		aggregator.WithLogger(log.Named("aggregator")),
		aggregator.WithMetrics(m),
	)

	coord := coordinator.New(agg, coordinator.Options{
		MaxConcurrency: cfg.MaxConcurrentCandidates,
		Logger:         log.Named("coordinator"),
		Metrics:        m,
	})

	return &pipeline{
		engine:   search.New(client, coord, log.Named("search"), m),
		registry: registry,
		http:     httpClient,
	}
}
