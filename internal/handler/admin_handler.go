package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"kaktovottak/referralhub/internal/service"
	"kaktovottak/referralhub/pkg/response"
)

type AdminHandler struct {
	rewardService service.RewardService
}

func NewAdminHandler(rewardService service.RewardService) *AdminHandler {
	return &AdminHandler{rewardService: rewardService}
}

// AdminRequest carries the acting admin, the chat the command came from, and
// the inviter whose ledger is targeted. Admin-ness and target-chat gating are
// platform facts, so they are checked in the service, not here.
type AdminRequest struct {
	ActorUserID  int64 `json:"actor_user_id" binding:"required"`
	ChatID       int64 `json:"chat_id" binding:"required"`
	TargetUserID int64 `json:"target_user_id" binding:"required"`
}

func mapAuthError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrWrongChat):
		response.Forbidden(c, "command only works in the target chat")
		return true
	case errors.Is(err, service.ErrNotAdmin):
		response.Forbidden(c, "admin access required")
		return true
	}
	return false
}

// CheckDebt returns the outstanding-rewards statement for an inviter.
func (h *AdminHandler) CheckDebt(c *gin.Context) {
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	statement, err := h.rewardService.CheckDebt(c.Request.Context(), req.ActorUserID, req.ChatID, req.TargetUserID)
	if err != nil {
		if mapAuthError(c, err) {
			return
		}
		response.InternalError(c, "failed to compute debt")
		return
	}

	response.Success(c, gin.H{"statement": statement})
}

// MarkRewards marks everything currently owed to an inviter as issued.
func (h *AdminHandler) MarkRewards(c *gin.Context) {
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.rewardService.MarkRewards(c.Request.Context(), req.ActorUserID, req.ChatID, req.TargetUserID)
	if err != nil {
		if mapAuthError(c, err) {
			return
		}
		response.InternalError(c, "failed to mark rewards")
		return
	}

	response.Success(c, result)
}
