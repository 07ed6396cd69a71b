package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/middleware"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/service"
)

// HealthHandler serves the probes used by orchestrators and monitors.
type HealthHandler struct {
	Handler
	systemService *service.SystemService
}

func NewHealthHandler(s *server.Server, systemService *service.SystemService) *HealthHandler {
	return &HealthHandler{
		Handler:       NewHandler(s),
		systemService: systemService,
	}
}

// Live answers the liveness probe. It never touches the database.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready answers 200 when the database accepts a connection and a trivial
// query, 503 {"error":"DB connection failed"} otherwise.
func (h *HealthHandler) Ready(c echo.Context) error {
	if err := h.systemService.Ready(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// CheckStatus reports every dependency with its response time.
//
// It returns 200 when the database is healthy and 503 otherwise. Redis is
// reported when configured but never makes the service unhealthy, because
// item events are best effort.
func (h *HealthHandler) CheckStatus(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "status_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"database":    h.server.DB.String(),
		"checks":      checks,
	}

	timeout := h.server.Config.Observability.HealthChecks.Timeout

	dbElapsed, dbErr := timed(c.Request().Context(), timeout, h.systemService.CheckDatabase)
	checks["database"] = checkResult(dbErr, dbElapsed)
	isHealthy := dbErr == nil

	if dbErr != nil {
		logger.Error().Err(dbErr).Dur("response_time", dbElapsed).Msg("database status check failed")
		h.recordCheckError("database", dbErr, dbElapsed)
	}

	redisElapsed, redisErr := timed(c.Request().Context(), timeout, h.systemService.CheckRedis)
	if !errors.Is(redisErr, service.ErrRedisDisabled) {
		checks["redis"] = checkResult(redisErr, redisElapsed)

		if redisErr != nil {
			logger.Error().Err(redisErr).Dur("response_time", redisElapsed).Msg("redis status check failed")
			h.recordCheckError("redis", redisErr, redisElapsed)
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("status check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("status check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordCheckError(checkType string, err error, elapsed time.Duration) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       checkType,
			"operation":        "status_check",
			"error_type":       checkType + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}
}

func timed(ctx context.Context, timeout time.Duration, check func(context.Context) error) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := check(ctx)
	return time.Since(start), err
}

// checkResult never carries the error text; it is logged instead.
func checkResult(err error, elapsed time.Duration) map[string]interface{} {
	result := map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	if err != nil {
		result["status"] = "unhealthy"
		result["error"] = "unreachable"
	}
	return result
}
