package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/common"
	"github.com/kenancosic/eRents-sub000/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const leaseDocumentURLExpiry = 15 * time.Minute

// ContractHandlers exposes the contract monitor's reporting views and
// manual overrides, plus lease-document storage.
type ContractHandlers struct {
	monitor      services.ContractMonitor
	documentsSvc services.LeaseDocumentService
}

func NewContractHandlers(monitor services.ContractMonitor, documentsSvc services.LeaseDocumentService) *ContractHandlers {
	return &ContractHandlers{monitor: monitor, documentsSvc: documentsSvc}
}

// GetSummary handles GET /v1/contracts/summary
func (h *ContractHandlers) GetSummary(c echo.Context) error {
	summary, err := h.monitor.GetExpirationSummary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute expiration summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// GetExpiring handles GET /v1/contracts/expiring
// Query: days_ahead (default 30).
func (h *ContractHandlers) GetExpiring(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing caller identity")
	}

	daysAhead := 30
	if raw := c.QueryParam("days_ahead"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days_ahead must be a non-negative integer")
		}
		daysAhead = parsed
	}

	infos, err := h.monitor.GetExpiringContractsForOwner(ctx, ownerID, daysAhead)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load expiring contracts")
	}
	return c.JSON(http.StatusOK, infos)
}

// GetExpired handles GET /v1/contracts/expired
func (h *ContractHandlers) GetExpired(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing caller identity")
	}

	infos, err := h.monitor.GetExpiredContractsForOwner(ctx, ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load expired contracts")
	}
	return c.JSON(http.StatusOK, infos)
}

// ProcessExpiration handles POST /v1/contracts/:tenantId/process
func (h *ContractHandlers) ProcessExpiration(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tenant id")
	}

	if err := h.monitor.ProcessSpecificContractExpiration(c.Request().Context(), tenantID); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "processed"})
}

// SendReminder handles POST /v1/contracts/:tenantId/remind
func (h *ContractHandlers) SendReminder(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tenant id")
	}

	var body struct {
		DaysUntilExpiration int `json:"days_until_expiration"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.monitor.SendExpirationReminder(c.Request().Context(), tenantID, body.DaysUntilExpiration); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send reminder")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}

// UploadDocument handles POST /v1/contracts/:tenantId/document
// Multipart form with a "document" PDF and a property_id field.
func (h *ContractHandlers) UploadDocument(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tenant id")
	}
	propertyID, err := uuid.Parse(c.FormValue("property_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid property id")
	}

	file, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing document file")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable document file")
	}
	defer src.Close()

	if err := h.documentsSvc.Upload(c.Request().Context(), propertyID, tenantID, src, file.Size); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store document")
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "stored"})
}

// GetDocument handles GET /v1/contracts/:tenantId/document
// Query: property_id. Returns a presigned download URL.
func (h *ContractHandlers) GetDocument(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tenant id")
	}
	propertyID, err := uuid.Parse(c.QueryParam("property_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid property id")
	}

	url, err := h.documentsSvc.GetDownloadURL(c.Request().Context(), propertyID, tenantID, leaseDocumentURLExpiry)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
