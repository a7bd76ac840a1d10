package handlers

import (
	"net/http"

	"github.com/kenancosic/eRents-sub000/internal/common"
	"github.com/kenancosic/eRents-sub000/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityHandlers exposes the availability resolver over HTTP.
type AvailabilityHandlers struct {
	availabilitySvc services.AvailabilityService
}

func NewAvailabilityHandlers(availabilitySvc services.AvailabilityService) *AvailabilityHandlers {
	return &AvailabilityHandlers{availabilitySvc: availabilitySvc}
}

// CheckAvailability handles GET /v1/properties/:id/availability
// Query: start, end (YYYY-MM-DD, half-open range), rental_type.
func (h *AvailabilityHandlers) CheckAvailability(c echo.Context) error {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid property id")
	}

	start, err := common.ParseDate(c.QueryParam("start"), "start")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	end, err := common.ParseDate(c.QueryParam("end"), "end")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateDateRange(start, end); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.availabilitySvc.CheckAvailability(c.Request().Context(), propertyID, start, end, c.QueryParam("rental_type"))
	return c.JSON(http.StatusOK, result)
}

// GetConflicts handles GET /v1/properties/:id/conflicts
func (h *AvailabilityHandlers) GetConflicts(c echo.Context) error {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid property id")
	}

	start, err := common.ParseDate(c.QueryParam("start"), "start")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	end, err := common.ParseDate(c.QueryParam("end"), "end")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateDateRange(start, end); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conflicts := h.availabilitySvc.GetConflicts(c.Request().Context(), propertyID, start, end)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"property_id": propertyID,
		"conflicts":   conflicts,
	})
}
