package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"juaconnect_backend/internal/handlers"
	"juaconnect_backend/internal/logger"
)

// RegisterRoutes mounts the API under /v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ArtisanHandler.RegisterRoutes(api)
		appHandlers.ClientHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	logger.Info("API routes registered under /v1")
}
