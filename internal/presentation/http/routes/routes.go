// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/willowmedia/contentbridge/internal/application/container"
	"github.com/willowmedia/contentbridge/internal/presentation/http/handlers"
	"github.com/willowmedia/contentbridge/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	pageHandlers := handlers.NewPageHandlers(container.PageService, container.Logger)
	syncHandlers := handlers.NewSyncHandlers(container.SyncService, container.Logger)
	authHandlers := handlers.NewAuthHandlers(container.Logger)

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/auth/login", authHandlers.PostLogin)

		// Homepage route must register before the id route so "home" does
		// not bind as an entry id.
		api.GET("/pages/home", pageHandlers.GetHomepage)
		api.GET("/pages/:id", pageHandlers.GetPage)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/sync", syncHandlers.PostSync)
		}
	}

	return r
}
