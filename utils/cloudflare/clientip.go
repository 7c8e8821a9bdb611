package cloudflare

import "github.com/gofiber/fiber/v2"

const UnknownIP = "unknown"

var clientIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// ClientIP returns the first non-empty forwarding header value, in priority order.
// The header is passed through verbatim, matching what the verifier receives.
func ClientIP(c *fiber.Ctx) string {
	for _, h := range clientIPHeaders {
		if v := c.Get(h); v != "" {
			return v
		}
	}
	return UnknownIP
}
