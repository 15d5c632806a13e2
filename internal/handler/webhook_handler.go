package handler

import (
	"github.com/gin-gonic/gin"

	"kaktovottak/referralhub/internal/service"
	"kaktovottak/referralhub/pkg/response"
)

type WebhookHandler struct {
	joinService service.JoinService
}

func NewWebhookHandler(joinService service.JoinService) *WebhookHandler {
	return &WebhookHandler{joinService: joinService}
}

type MemberJoinedRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	DisplayName string `json:"display_name"`
	InviteLink  string `json:"invite_link"`
}

// MemberJoined records a join credited to the owner of the used invite link.
// Joins without a known link are acknowledged without crediting anyone.
func (h *WebhookHandler) MemberJoined(c *gin.Context) {
	var req MemberJoinedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.joinService.RecordJoin(c.Request.Context(), req.UserID, req.DisplayName, req.InviteLink)
	if err != nil {
		response.InternalError(c, "failed to record join")
		return
	}

	response.Success(c, result)
}
