package ratelimit

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientKey derives the client identifier for rate limiting: the first hop of
// X-Forwarded-For, then X-Real-IP, then a constant placeholder. Best effort;
// the placeholder collapses unidentifiable clients into one bucket.
func ClientKey(c *fiber.Ctx) string {
	if fwd := strings.TrimSpace(c.Get("X-Forwarded-For")); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return fwd
	}
	if real := strings.TrimSpace(c.Get("X-Real-IP")); real != "" {
		return real
	}
	return "unknown"
}

// Middleware rejects requests over the limiter's budget with 429. The key
// function defaults to ClientKey.
func Middleware(l Limiter, keyFn func(*fiber.Ctx) string) fiber.Handler {
	if keyFn == nil {
		keyFn = ClientKey
	}
	return func(c *fiber.Ctx) error {
		if !l.Allow(keyFn(c)) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "Too many requests. Please try again later.",
			})
		}
		return c.Next()
	}
}
