package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// API represents the different upstream services we call
type API string

const (
	// APIStore represents the Steam store (suggestions, app hover, DLC, Deck reports)
	APIStore API = "store"
	// APIProtonDB represents the ProtonDB report summaries API
	APIProtonDB API = "protondb"
)

// Rule is the admission rate for one upstream.
// A non-positive RPS means the upstream is not limited.
type Rule struct {
	RPS   float64
	Burst int
}

// Limiter manages rate limits for different APIs.
// The set of limiters is fixed at construction, so lookups need no locking.
type Limiter struct {
	limiters map[API]*rate.Limiter
}

// New creates a Limiter with one token bucket per configured API.
func New(rules map[API]Rule) *Limiter {
	l := &Limiter{limiters: make(map[API]*rate.Limiter, len(rules))}
	for api, rule := range rules {
		l.limiters[api] = newBucket(rule)
	}
	return l
}

// Unlimited returns a Limiter that admits every request immediately.
func Unlimited() *Limiter {
	return New(nil)
}

func newBucket(rule Rule) *rate.Limiter {
	if rule.RPS <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := rule.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rule.RPS), burst)
}

// Wait blocks until the rate limiter permits an event for the given API
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, api API) error {
	limiter, exists := l.limiters[api]
	if !exists {
		// If no limiter exists for this API, allow the request without limiting
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given API may happen now
func (l *Limiter) Allow(api API) bool {
	limiter, exists := l.limiters[api]
	if !exists {
		return true
	}

	return limiter.Allow()
}
