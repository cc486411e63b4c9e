package serverutils

import (
	"strconv"
	"time"

	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one access line per request and records the request
// in the metrics collector. It must sit above ErrorHandlerMiddleware so the
// final status is known.
func RequestLogger(log logger.ILogger, collector *metrics.Collector) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		elapsed := time.Since(start)

		status := ctx.Response().StatusCode()
		route := ctx.Route().Path
		if collector != nil {
			collector.HTTPRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
			collector.HTTPDuration.WithLabelValues(ctx.Method(), route).Observe(elapsed.Seconds())
		}

		details := map[string]interface{}{
			"method":      ctx.Method(),
			"path":        ctx.Path(),
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
			"ip":          ctx.IP(),
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("HTTP", "Request completed", details)
		} else {
			log.Debug("HTTP", "Request completed", details)
		}
		return err
	}
}
