package tiers

import (
	"venuelayout/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTierRoutes(rg *gin.RouterGroup, controller *Controller, auth ...gin.HandlerFunc) {
	// Public read access
	events := rg.Group("/events/:eventId")
	{
		events.GET("/tier-boundaries", controller.GetBoundaries)           // GET /api/v1/events/:eventId/tier-boundaries
		events.GET("/layouts/:layoutId/tiers", controller.ClassifyLayout)  // GET /api/v1/events/:eventId/layouts/:layoutId/tiers
		events.POST("/tier-boundaries/preview", controller.ClassifyPoints) // POST /api/v1/events/:eventId/tier-boundaries/preview
	}

	if auth == nil {
		auth = []gin.HandlerFunc{middleware.JWTAuth(), middleware.RequireAdmin()}
	}

	admin := rg.Group("/admin/events/:eventId")
	admin.Use(auth...)
	{
		admin.PUT("/tier-boundaries", controller.PutBoundaries) // PUT /api/v1/admin/events/:eventId/tier-boundaries
	}
}
