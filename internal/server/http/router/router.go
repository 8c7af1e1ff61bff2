package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ndrsndbk/stampbot/internal/server/http/handlers"
	"github.com/ndrsndbk/stampbot/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.WebhookFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	webhookHandler := handlers.NewWebhookHandler(facade, logger)

	engine.GET("/", handlers.Health)
	engine.GET("/webhook", webhookHandler.Verify)
	engine.POST("/webhook", webhookHandler.Receive)

	return engine
}
