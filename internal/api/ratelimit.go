package api

import (
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/shelfnotes/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a new rate limiter.
// ratePerInterval: number of requests allowed per interval
// burst: maximum burst size
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	return ratelimit.New(ratelimit.PerInterval(ratePerInterval, interval), burst)
}

// rateLimitByIP returns a huma middleware that limits requests per client IP.
// Returns 429 Too Many Requests when limit is exceeded.
func (s *Server) rateLimitByIP(limiter *RateLimiter) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientIP(ctx.RemoteAddr())

		if !limiter.Allow(key) {
			s.logger.Warn("Rate limit exceeded",
				"ip", key,
				"path", ctx.URL().Path,
			)
			ctx.SetHeader("Retry-After", "60")
			_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}

		next(ctx)
	}
}

// clientIP strips the port from a remote address. Forwarding headers are
// never read here; middleware.RealIP has already applied them to RemoteAddr.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

// ClientAddr records the caller's IP on an operation input.
type ClientAddr struct {
	ip string
}

// Resolve implements huma.Resolver.
func (c *ClientAddr) Resolve(ctx huma.Context) []error {
	c.ip = clientIP(ctx.RemoteAddr())
	return nil
}

// IP returns the resolved client IP.
func (c *ClientAddr) IP() string {
	return c.ip
}
