// Package steam queries the Steam store and ProtonDB for game data.
package steam

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"resty.dev/v3"

	"gamesearch/internal/fetcher"
	"gamesearch/internal/ratelimit"
)

const (
	defaultStoreBaseURL    = "https://store.steampowered.com"
	defaultProtonDBBaseURL = "https://www.protondb.com"
	defaultCountryCode     = "BR"
	defaultLanguage        = "brazilian"
)

// Options configures a Client.
type Options struct {
	StoreBaseURL    string
	ProtonDBBaseURL string
	CountryCode     string
	Language        string
	Limiter         *ratelimit.Limiter
	Logger          *zap.Logger
}

// Client performs the lookup and every per-candidate source query.
// It holds only read-only state, so one Client serves all concurrent tasks.
type Client struct {
	http        *resty.Client
	limiter     *ratelimit.Limiter
	storeURL    string
	protonURL   string
	countryCode string
	language    string
	log         *zap.Logger
}

// NewClient creates a Client over the shared transport httpClient.
func NewClient(httpClient *resty.Client, opts Options) *Client {
	if opts.StoreBaseURL == "" {
		opts.StoreBaseURL = defaultStoreBaseURL
	}
	if opts.ProtonDBBaseURL == "" {
		opts.ProtonDBBaseURL = defaultProtonDBBaseURL
	}
	if opts.CountryCode == "" {
		opts.CountryCode = defaultCountryCode
	}
	if opts.Language == "" {
		opts.Language = defaultLanguage
	}
	if opts.Limiter == nil {
		opts.Limiter = ratelimit.Unlimited()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Client{
		http:        httpClient,
		limiter:     opts.Limiter,
		storeURL:    strings.TrimRight(opts.StoreBaseURL, "/"),
		protonURL:   strings.TrimRight(opts.ProtonDBBaseURL, "/"),
		countryCode: opts.CountryCode,
		language:    opts.Language,
		log:         opts.Logger.Named("steam"),
	}
}

// getJSON waits for the upstream's rate limiter, performs a GET and decodes
// a JSON body into result. Every failure is returned as a *fetcher.FetchError.
func (c *Client) getJSON(ctx context.Context, api ratelimit.API, url string, params map[string]string, result any) error {
	if err := c.limiter.Wait(ctx, api); err != nil {
		return fetcher.ClassifyTransportError(err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetForceResponseContentType("application/json").
		SetResult(result).
		Get(url)

	if err != nil {
		// A 2xx response whose body could not be decoded
		if resp != nil && resp.IsSuccess() {
			return fetcher.NewValidationError("failed to decode response", err)
		}
		return fetcher.ClassifyTransportError(err)
	}

	if !resp.IsSuccess() {
		return fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	return nil
}

// getRaw is like getJSON but returns the body undecoded.
func (c *Client) getRaw(ctx context.Context, api ratelimit.API, url string, params map[string]string) (string, error) {
	if err := c.limiter.Wait(ctx, api); err != nil {
		return "", fetcher.ClassifyTransportError(err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)

	if err != nil {
		return "", fetcher.ClassifyTransportError(err)
	}

	if !resp.IsSuccess() {
		return "", fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	return resp.String(), nil
}

func (c *Client) localeParams() map[string]string {
	return map[string]string{
		"cc": c.countryCode,
		"l":  c.language,
	}
}
