// Package middleware provides HTTP middleware for the API server
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldsmith/dispatch/internal/logger"
)

// Logger returns a middleware that logs HTTP requests
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue chain
		err := c.Next()

		// After request
		latency := time.Since(start)

		logger.Infof("request method=%s path=%s status=%d latency=%s ip=%s handler=%s",
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			latency,
			c.IP(),
			c.Route().Name,
		)

		return err
	}
}
