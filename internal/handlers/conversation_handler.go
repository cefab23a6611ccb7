package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonvoice/booking-api/internal/conversation"
	"github.com/salonvoice/booking-api/internal/httperr"
	"github.com/salonvoice/booking-api/internal/httpresp"
	"github.com/salonvoice/booking-api/internal/middleware"
)

type ConversationHandler struct {
	flow *conversation.Flow
}

func NewConversationHandler(flow *conversation.Flow) *ConversationHandler {
	return &ConversationHandler{flow: flow}
}

type DetectIntentRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

func (h *ConversationHandler) DetectIntent(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextCustomerID).(uint)

	var req DetectIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "message is required.")
		return
	}

	reply, err := h.flow.HandleMessage(
		c.Request.Context(),
		customerID,
		req.SessionID,
		req.Message,
	)
	if err != nil {
		httperr.WriteDomain(c, err)
		return
	}

	httpresp.OK(c, reply)
}
