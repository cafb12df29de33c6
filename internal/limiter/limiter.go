// Package limiter defines interfaces and implementations for rate limiting.
package limiter

import (
	"context"
	"time"
)

// Limiter controls login attempts and temporary lockouts.
type Limiter interface {
	// Allow reports whether login is currently allowed and optional retry-after.
	Allow(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, email string, ipHash []byte) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, email string, ipHash []byte) (bool, time.Duration, error)
}

// RequestLimiter throttles API calls per subject and route using a
// fixed window counter.
type RequestLimiter interface {
	// AllowRequest reports whether another call is allowed in the current
	// window and a retry-after hint when it is not.
	AllowRequest(ctx context.Context, subject, route string) (bool, time.Duration, error)
}
