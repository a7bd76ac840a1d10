package handlers

import (
	"net/http"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/caching"
	"github.com/kenancosic/eRents-sub000/internal/jobs/background"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers exposes liveness and readiness probes. Liveness is
// unconditional; readiness checks the database and cache and reports the
// scheduler's registered jobs.
type HealthHandlers struct {
	pool      *pgxpool.Pool
	cacheSvc  caching.CacheService
	scheduler *background.JobScheduler
}

func NewHealthHandlers(pool *pgxpool.Pool, cacheSvc caching.CacheService, scheduler *background.JobScheduler) *HealthHandlers {
	return &HealthHandlers{pool: pool, cacheSvc: cacheSvc, scheduler: scheduler}
}

// Health handles GET /health
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	checks := map[string]string{}
	healthy := true

	if h.pool != nil {
		if err := h.pool.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	if h.cacheSvc != nil {
		if err := h.cacheSvc.Ping(ctx); err != nil {
			// Degraded, not down: the service answers without the cache.
			checks["cache"] = err.Error()
		} else {
			checks["cache"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	body := map[string]interface{}{
		"status": map[bool]string{true: "ready", false: "unavailable"}[healthy],
		"checks": checks,
		"time":   time.Now().UTC(),
	}
	if h.scheduler != nil {
		body["scheduler"] = h.scheduler.JobStatus()
	}
	return c.JSON(status, body)
}

// RunSweep handles POST /v1/admin/sweep - manual trigger of the contract
// expiration sweep.
func (h *HealthHandlers) RunSweep(c echo.Context) error {
	if h.scheduler == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Scheduler not running")
	}
	if err := h.scheduler.RunSweepNow(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Sweep failed")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "completed"})
}
