package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/tutorial-api/internal/middleware"
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness plus the reachability of the database and,
// when configured, Redis.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth answers 200 when every enabled check passes and 503 otherwise.
// Redis is reported but never makes the service unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	obs := h.server.Config.Observability
	timeout := obs.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	isHealthy := true

	if obs.CheckEnabled("database") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		err := h.runCheck(ctx, checks, "database", h.server.DB.Ping)
		cancel()
		if err != nil {
			isHealthy = false
			logger.Error().Err(err).Msg("database health check failed")
		}
	}

	if obs.CheckEnabled("redis") && h.server.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		err := h.runCheck(ctx, checks, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("redis health check failed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		h.recordHealthEvent("overall", "overall_unhealthy", time.Since(start), nil)

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) runCheck(ctx context.Context, checks map[string]interface{}, name string, ping func(context.Context) error) error {
	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}
		h.recordHealthEvent(name, name+"_unhealthy", elapsed, err)
		return err
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	return nil
}

func (h *HealthHandler) recordHealthEvent(checkType, errorType string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	attrs := map[string]interface{}{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		attrs["error_message"] = err.Error()
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
