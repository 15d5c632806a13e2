package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kaktovottak/referralhub/internal/config"
)

func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		c.AllowOrigins = cfg.AllowedOrigins
	} else {
		c.AllowAllOrigins = true
	}
	if len(cfg.AllowedMethods) > 0 {
		c.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		c.AllowHeaders = cfg.AllowedHeaders
	}
	c.AllowCredentials = cfg.AllowCredentials
	if cfg.MaxAge > 0 {
		c.MaxAge = cfg.MaxAge
	}
	return cors.New(c)
}
