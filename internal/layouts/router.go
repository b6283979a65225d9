package layouts

import (
	"venuelayout/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLayoutRoutes(rg *gin.RouterGroup, controller *Controller, auth ...gin.HandlerFunc) {
	if auth == nil {
		auth = []gin.HandlerFunc{middleware.JWTAuth(), middleware.RequireAdmin()}
	}

	layouts := rg.Group("/admin/layouts")
	layouts.Use(auth...)
	{
		layouts.POST("", controller.CreateLayout)       // POST /api/v1/admin/layouts
		layouts.GET("", controller.ListLayouts)         // GET /api/v1/admin/layouts
		layouts.GET("/:id", controller.GetLayout)       // GET /api/v1/admin/layouts/:id
		layouts.PUT("/:id", controller.UpdateLayout)    // PUT /api/v1/admin/layouts/:id
		layouts.DELETE("/:id", controller.DeleteLayout) // DELETE /api/v1/admin/layouts/:id

		layouts.POST("/:id/publish", controller.PublishLayout) // POST /api/v1/admin/layouts/:id/publish
		layouts.POST("/:id/archive", controller.ArchiveLayout) // POST /api/v1/admin/layouts/:id/archive

		// Elements
		layouts.POST("/:id/elements/grid", controller.AddSeatGrid)      // POST /api/v1/admin/layouts/:id/elements/grid
		layouts.POST("/:id/elements/remove", controller.RemoveElements) // POST /api/v1/admin/layouts/:id/elements/remove
		layouts.PATCH("/:id/elements", controller.PatchElements)        // PATCH /api/v1/admin/layouts/:id/elements

		// Price zones
		layouts.POST("/:id/zones", controller.AddPriceZone)              // POST /api/v1/admin/layouts/:id/zones
		layouts.PUT("/:id/zones/:zoneId", controller.UpdatePriceZone)    // PUT /api/v1/admin/layouts/:id/zones/:zoneId
		layouts.DELETE("/:id/zones/:zoneId", controller.RemovePriceZone) // DELETE /api/v1/admin/layouts/:id/zones/:zoneId

		// Read-only views
		layouts.GET("/:id/capacity", controller.GetCapacity)    // GET /api/v1/admin/layouts/:id/capacity
		layouts.GET("/:id/colors", controller.GetDisplayColors) // GET /api/v1/admin/layouts/:id/colors
	}
}
