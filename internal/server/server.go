// Package server exposes the search engine over HTTP.
package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gamesearch/internal/search"
)

// retryAfterSeconds is the back-off hint sent when the lookup is down.
const retryAfterSeconds = "5"

// Searcher answers a free-text query.
type Searcher interface {
	Run(ctx context.Context, query string) ([]search.Result, error)
}

// Response is the body of a /search reply.
type Response struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Message string          `json:"message,omitempty"`
}

// Server wraps the Fiber app and its listen address.
type Server struct {
	App  *fiber.App
	addr string
	log  *zap.Logger
}

// New creates a new server with routes and middleware configured.
func New(addr string, searcher Searcher, gatherer prometheus.Gatherer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName: "gamesearch",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestLogger(log))

	h := &handler{searcher: searcher, log: log}
	app.Get("/healthz", h.health)
	app.Get("/search", h.search)
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return &Server{App: app, addr: addr, log: log}
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("listening", zap.String("addr", s.addr))
	return s.App.Listen(s.addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}

type handler struct {
	searcher Searcher
	log      *zap.Logger
}

func (h *handler) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *handler) search(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing query parameter q")
	}

	results, err := h.searcher.Run(c.Context(), query)
	switch {
	case errors.Is(err, search.ErrLookupFailed):
		c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
		return fiber.NewError(fiber.StatusServiceUnavailable, "search is temporarily unavailable")
	case err != nil && !errors.Is(err, search.ErrNoResults):
		return err
	}

	resp := Response{Query: query, Results: results}
	if len(results) == 0 {
		resp.Results = []search.Result{}
		resp.Message = "no results"
	}
	return c.JSON(resp)
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		log.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		)
		return err
	}
}
