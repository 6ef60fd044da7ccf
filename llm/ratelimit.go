package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited throttles calls to a provider with a token bucket
type RateLimited struct {
	Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps p so that at most requestsPerMinute completions start per minute.
// A non-positive limit disables throttling.
func NewRateLimited(p Provider, requestsPerMinute int) *RateLimited {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerMinute > 0 {
		burst := requestsPerMinute
		if burst > 5 {
			burst = 5
		}
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
	}
	return &RateLimited{Provider: p, limiter: limiter}
}

// Complete waits for a token before delegating to the wrapped provider
func (r *RateLimited) Complete(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return r.Provider.Complete(ctx, prompt)
}

// Close closes the wrapped provider when it holds resources
func (r *RateLimited) Close() error {
	if c, ok := r.Provider.(Closer); ok {
		return c.Close()
	}
	return nil
}
