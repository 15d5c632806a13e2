package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"kaktovottak/referralhub/internal/platform"
	"kaktovottak/referralhub/internal/service"
	"kaktovottak/referralhub/pkg/response"
)

type ReferralHandler struct {
	linkService  service.LinkService
	statsService service.StatsService
}

func NewReferralHandler(linkService service.LinkService, statsService service.StatsService) *ReferralHandler {
	return &ReferralHandler{
		linkService:  linkService,
		statsService: statsService,
	}
}

type GetLinkRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	DisplayName string `json:"display_name"`
}

// GetLink returns the user's personal invite link, minting one on first use.
func (h *ReferralHandler) GetLink(c *gin.Context) {
	var req GetLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	linkURL, err := h.linkService.GetOrCreateLink(c.Request.Context(), req.UserID, req.DisplayName)
	if err != nil {
		if errors.Is(err, platform.ErrPermissionDenied) {
			response.Forbidden(c, "bot lacks the manage invite links admin right")
			return
		}
		response.InternalError(c, "failed to create invite link")
		return
	}

	response.Success(c, gin.H{"link_url": linkURL})
}

// MyStats returns invite count plus the recent invited list for an inviter.
func (h *ReferralHandler) MyStats(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user_id")
		return
	}

	stats, err := h.statsService.MyStats(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to load stats")
		return
	}

	response.Success(c, stats)
}

// InvitesRating returns the top inviters leaderboard.
func (h *ReferralHandler) InvitesRating(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.statsService.TopInviters(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, "failed to load rating")
		return
	}

	response.Success(c, gin.H{"inviters": entries})
}

// ChatInfo returns the public join link of the community chat.
func (h *ReferralHandler) ChatInfo(c *gin.Context) {
	response.Success(c, gin.H{"chat_link": h.linkService.ChatLink()})
}
