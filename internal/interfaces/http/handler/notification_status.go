package handler

import (
	"github.com/gin-gonic/gin"
	renewalapp "github.com/taxrenew/backend/internal/application/renewal"
	"github.com/taxrenew/backend/internal/application/renewal/dto"
)

// NotificationStatusHandler serves the notification ledger
type NotificationStatusHandler struct {
	BaseHandler
	curation *renewalapp.CurationService
}

// NewNotificationStatusHandler creates a new NotificationStatusHandler
func NewNotificationStatusHandler(curation *renewalapp.CurationService) *NotificationStatusHandler {
	return &NotificationStatusHandler{curation: curation}
}

// List godoc
// @ID           listNotificationStatus
// @Summary      Get the notification ledger
// @Description  Entries of plates that renewed since they were marked are purged before the map is returned.
// @Tags         notification-status
// @Produce      json
// @Success      200 {object} APIResponse[dto.StatusResponse]
// @Failure      503 {object} ErrorResponse
// @Router       /notification-status [get]
func (h *NotificationStatusHandler) List(c *gin.Context) {
	resp, err := h.curation.Statuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Mark godoc
// @ID           markNotificationStatus
// @Summary      Mark a plate as sent, or reset it
// @Description  sent=false resets the entry instead of storing a negative one.
// @Description  Marking an already sent plate keeps the first sentAt.
// @Tags         notification-status
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header   string                false "Replay guard key"
// @Param        request         body     dto.MarkStatusRequest true  "Ledger update"
// @Success      200 {object} APIResponse[dto.MarkSentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /notification-status [post]
func (h *NotificationStatusHandler) Mark(c *gin.Context) {
	var req dto.MarkStatusRequest
	if !h.BindJSON(c, &req, false) {
		return
	}

	ctx := c.Request.Context()
	if req.Sent != nil && !*req.Sent {
		resp, err := h.curation.ResetStatus(ctx, req.LicensePlate)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	resp, err := h.curation.MarkSent(ctx, req.LicensePlate, req.SentAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkBatch godoc
// @ID           markNotificationStatusBatch
// @Summary      Mark several plates as sent
// @Tags         notification-status
// @Accept       json
// @Produce      json
// @Param        request body     dto.MarkBatchRequest true "Plates and optional sentAt"
// @Success      200 {object} APIResponse[dto.BulkResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /notification-status/batch [post]
func (h *NotificationStatusHandler) MarkBatch(c *gin.Context) {
	var req dto.MarkBatchRequest
	if !h.BindJSON(c, &req, false) {
		return
	}

	resp, err := h.curation.MarkSentBatch(c.Request.Context(), req.LicensePlates, req.SentAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reset godoc
// @ID           resetNotificationStatus
// @Summary      Reset a plate's ledger entry
// @Tags         notification-status
// @Accept       json
// @Produce      json
// @Param        request body     dto.PlateRequest true "Plate to reset"
// @Success      200 {object} APIResponse[dto.ResetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /notification-status [delete]
func (h *NotificationStatusHandler) Reset(c *gin.Context) {
	var req dto.PlateRequest
	if !h.BindJSON(c, &req, false) {
		return
	}

	resp, err := h.curation.ResetStatus(c.Request.Context(), req.LicensePlate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListSent godoc
// @ID           listSentNotifications
// @Summary      List plates marked sent in a range
// @Tags         notification-status
// @Produce      json
// @Param        from query    string false "Inclusive start date"
// @Param        to   query    string false "Inclusive end date"
// @Success      200 {object} APIResponse[dto.SentListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /notification-status/sent [get]
func (h *NotificationStatusHandler) ListSent(c *gin.Context) {
	var q dto.SentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.curation.ListSent(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
