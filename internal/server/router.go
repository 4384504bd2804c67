package server

import (
	"log/slog"
	"time"

	"github.com/coder0404/leetcode-Tracker/internal/config"
	"github.com/coder0404/leetcode-Tracker/internal/http/handlers"
	"github.com/coder0404/leetcode-Tracker/internal/http/middleware"
	"github.com/coder0404/leetcode-Tracker/internal/version"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const maxProfileRequestBytes = 1 << 20

type Dependencies struct {
	Pinger         handlers.Pinger
	ProfileHandler *handlers.ProfileHandler
}

func NewRouter(cfg config.Config, logger *slog.Logger, deps Dependencies) *gin.Engine {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(func(c *gin.Context) {
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
		c.Next()
	})
	r.Use(cors.New(corsConfig(cfg)))

	health := handlers.NewHealthHandler(deps.Pinger)
	meta := handlers.NewMetaHandler(cfg.Env, version.Version)

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/v1/meta", meta.GetMeta)

	if deps.ProfileHandler != nil {
		r.POST("/leetcode", middleware.RequestBodyLimit(maxProfileRequestBytes), deps.ProfileHandler.PostProfile)
		r.GET("/leetcode/all", deps.ProfileHandler.Leaderboard)
		r.GET("/leetcode/:username", deps.ProfileHandler.GetProfile)
	}

	return r
}

func corsConfig(cfg config.Config) cors.Config {
	out := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		out.AllowAllOrigins = true
		return out
	}
	out.AllowOrigins = cfg.CORSAllowedOrigins
	return out
}
