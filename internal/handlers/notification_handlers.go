package handlers

import (
	"net/http"
	"strconv"

	"github.com/kenancosic/eRents-sub000/internal/common"
	"github.com/kenancosic/eRents-sub000/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationHandlers struct {
	notificationSvc services.NotificationService
}

func NewNotificationHandlers(notificationSvc services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationSvc: notificationSvc}
}

// List handles GET /v1/notifications
// Query: limit (default 20), offset (default 0).
func (h *NotificationHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing caller identity")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	notifications, err := h.notificationSvc.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notifications")
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /v1/notifications/:id/read
func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing caller identity")
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification id")
	}

	if err := h.notificationSvc.MarkRead(ctx, userID, notificationID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notification read")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "read"})
}
