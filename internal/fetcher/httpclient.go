package fetcher

import (
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "gamesearch/1.0"
)

// ClientOptions configures the shared HTTP transport.
type ClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

// NewHTTPClient creates the HTTP client shared by every source query.
// The client is configured once here and only read afterwards, so a single
// instance can serve all concurrent candidate and source tasks.
// Retries are not configured on the transport; see WithRetry.
func NewHTTPClient(opts ClientOptions) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", opts.UserAgent).
		SetRetryCount(0)

	if opts.Logger != nil {
		client.SetLogger(opts.Logger.Named("http").Sugar())
	}

	return client
}
