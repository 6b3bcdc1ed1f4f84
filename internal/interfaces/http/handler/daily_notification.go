package handler

import (
	"github.com/gin-gonic/gin"
	renewalapp "github.com/taxrenew/backend/internal/application/renewal"
	"github.com/taxrenew/backend/internal/application/renewal/dto"
)

// DailyNotificationHandler serves the daily snapshot
type DailyNotificationHandler struct {
	BaseHandler
	snapshots *renewalapp.SnapshotService
	curation  *renewalapp.CurationService
}

// NewDailyNotificationHandler creates a new DailyNotificationHandler
func NewDailyNotificationHandler(snapshots *renewalapp.SnapshotService, curation *renewalapp.CurationService) *DailyNotificationHandler {
	return &DailyNotificationHandler{
		snapshots: snapshots,
		curation:  curation,
	}
}

// GetSnapshot godoc
// @ID           getDailyNotifications
// @Summary      Get the daily snapshot
// @Description  Returns the plates of the active outreach snapshot. Plates marked sent since the build are dropped first.
// @Tags         daily-notifications
// @Produce      json
// @Success      200 {object} APIResponse[dto.SnapshotResponse]
// @Failure      503 {object} ErrorResponse
// @Router       /daily-notifications [get]
func (h *DailyNotificationHandler) GetSnapshot(c *gin.Context) {
	resp, err := h.snapshots.GetSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BuildSnapshot godoc
// @ID           buildDailyNotifications
// @Summary      Seed or build the daily snapshot
// @Description  Explicit licensePlates seed the snapshot and take precedence over forceRefresh.
// @Description  An empty body builds today's snapshot if it is missing.
// @Tags         daily-notifications
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header   string                   false "Replay guard key"
// @Param        request         body     dto.BuildSnapshotRequest false "Seed plates or force flag"
// @Success      200 {object} APIResponse[dto.BuildSnapshotResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /daily-notifications [post]
func (h *DailyNotificationHandler) BuildSnapshot(c *gin.Context) {
	var req dto.BuildSnapshotRequest
	if !h.BindJSON(c, &req, true) {
		return
	}

	ctx := c.Request.Context()
	var (
		resp *dto.BuildSnapshotResponse
		err  error
	)
	switch {
	case len(req.LicensePlates) > 0:
		resp, err = h.snapshots.SeedSnapshot(ctx, req.LicensePlates)
	case req.ForceRefresh:
		resp, err = h.curation.ForceRefresh(ctx)
	default:
		resp, err = h.snapshots.BuildDailySnapshot(ctx, false)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteEntry godoc
// @ID           deleteDailyNotification
// @Summary      Remove one plate from the snapshot
// @Tags         daily-notifications
// @Accept       json
// @Produce      json
// @Param        request body     dto.PlateRequest true "Plate to remove"
// @Success      200 {object} APIResponse[dto.DeleteEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /daily-notifications [delete]
func (h *DailyNotificationHandler) DeleteEntry(c *gin.Context) {
	var req dto.PlateRequest
	if !h.BindJSON(c, &req, false) {
		return
	}

	resp, err := h.curation.DeleteSnapshotEntry(c.Request.Context(), req.LicensePlate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkDelete godoc
// @ID           bulkDeleteDailyNotifications
// @Summary      Remove several plates from the snapshot
// @Description  Each plate is reported separately; a missing plate does not fail the others.
// @Tags         daily-notifications
// @Accept       json
// @Produce      json
// @Param        request body     dto.BulkDeleteRequest true "Plates to remove"
// @Success      200 {object} APIResponse[dto.BulkResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /daily-notifications/bulk-delete [post]
func (h *DailyNotificationHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !h.BindJSON(c, &req, false) {
		return
	}

	resp, err := h.curation.BulkDeleteSnapshotEntries(c.Request.Context(), req.LicensePlates)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear godoc
// @ID           clearDailyNotifications
// @Summary      Clear the snapshot
// @Tags         daily-notifications
// @Produce      json
// @Success      200 {object} APIResponse[dto.ClearResponse]
// @Failure      503 {object} ErrorResponse
// @Router       /daily-notifications/delete-all [delete]
func (h *DailyNotificationHandler) Clear(c *gin.Context) {
	resp, err := h.curation.ClearSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
