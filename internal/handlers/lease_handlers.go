package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/caching"
	"github.com/kenancosic/eRents-sub000/internal/common"
	"github.com/kenancosic/eRents-sub000/internal/services"

	"github.com/labstack/echo/v4"
)

const leaseStatisticsTTL = 5 * time.Minute

// LeaseHandlers exposes the lease calculator's owner-facing views. The
// caller identity from the JWT is the property owner.
type LeaseHandlers struct {
	calculator services.LeaseCalculator
	cacheSvc   caching.CacheService
}

func NewLeaseHandlers(calculator services.LeaseCalculator, cacheSvc caching.CacheService) *LeaseHandlers {
	return &LeaseHandlers{calculator: calculator, cacheSvc: cacheSvc}
}

// GetStatistics handles GET /v1/leases/statistics
func (h *LeaseHandlers) GetStatistics(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing caller identity")
	}

	if h.cacheSvc != nil {
		if cached, err := h.cacheSvc.GetLeaseStatistics(ctx, ownerID); err != nil {
			log.Printf("lease statistics: cache read failed: %v", err)
		} else if cached != nil {
			return c.JSON(http.StatusOK, cached)
		}
	}

	stats, err := h.calculator.GetLeaseStatistics(ctx, ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute lease statistics")
	}

	if h.cacheSvc != nil {
		if err := h.cacheSvc.SetLeaseStatistics(ctx, ownerID, stats, leaseStatisticsTTL); err != nil {
			log.Printf("lease statistics: cache write failed: %v", err)
		}
	}
	return c.JSON(http.StatusOK, stats)
}

// GetActiveLeases handles GET /v1/leases/active
func (h *LeaseHandlers) GetActiveLeases(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing caller identity")
	}

	infos, err := h.calculator.GetOwnerLeaseInfo(ctx, ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load leases")
	}
	return c.JSON(http.StatusOK, infos)
}

// GetAllActiveLeases handles GET /v1/admin/leases - the unscoped view over
// every active tenancy, for back-office tooling.
func (h *LeaseHandlers) GetAllActiveLeases(c echo.Context) error {
	infos, err := h.calculator.GetActiveTenantsWithLeaseInfo(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load leases")
	}
	return c.JSON(http.StatusOK, infos)
}

// GetRequiringAttention handles GET /v1/leases/attention
// Query: warning_days (default 30).
func (h *LeaseHandlers) GetRequiringAttention(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing caller identity")
	}

	warningDays := 30
	if raw := c.QueryParam("warning_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "warning_days must be a non-negative integer")
		}
		warningDays = parsed
	}

	infos, err := h.calculator.GetTenantsRequiringAttention(ctx, ownerID, warningDays)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load leases")
	}
	return c.JSON(http.StatusOK, infos)
}
