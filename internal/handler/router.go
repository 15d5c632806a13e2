package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kaktovottak/referralhub/internal/config"
	"kaktovottak/referralhub/internal/handler/middleware"
	jwtpkg "kaktovottak/referralhub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	referralHandler *ReferralHandler,
	adminHandler *AdminHandler,
	webhookHandler *WebhookHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Everything else is for the authenticated dispatch layer only.
	api := r.Group("/api/v1")
	api.Use(middleware.ServiceAuth(jwtManager))
	{
		api.GET("/chat", referralHandler.ChatInfo)
		api.POST("/links", referralHandler.GetLink)
		api.GET("/inviters/:user_id/stats", referralHandler.MyStats)
		api.GET("/rating", referralHandler.InvitesRating)

		api.POST("/events/member-joined", webhookHandler.MemberJoined)

		admin := api.Group("/admin")
		{
			admin.POST("/debt/check", adminHandler.CheckDebt)
			admin.POST("/rewards/mark", adminHandler.MarkRewards)
		}
	}

	return r
}
