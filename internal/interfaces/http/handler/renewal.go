package handler

import (
	"github.com/gin-gonic/gin"
	renewalapp "github.com/taxrenew/backend/internal/application/renewal"
)

// RenewalHandler serves the renewal listing
type RenewalHandler struct {
	BaseHandler
	curation *renewalapp.CurationService
}

// NewRenewalHandler creates a new RenewalHandler
func NewRenewalHandler(curation *renewalapp.CurationService) *RenewalHandler {
	return &RenewalHandler{curation: curation}
}

// List godoc
// @ID           listRenewals
// @Summary      List renewal urgency of tracked vehicles
// @Tags         renewals
// @Produce      json
// @Param        status query    string false "Filter by status" Enums(overdue, due_today, upcoming_due, renewed, pending)
// @Success      200 {object} APIResponse[[]dto.UrgencyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /renewals [get]
func (h *RenewalHandler) List(c *gin.Context) {
	rows, err := h.curation.ListUrgencies(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
