package templates

import (
	"venuelayout/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTemplateRoutes(rg *gin.RouterGroup, controller *Controller, auth ...gin.HandlerFunc) {
	if auth == nil {
		auth = []gin.HandlerFunc{middleware.JWTAuth(), middleware.RequireAdmin()}
	}

	templates := rg.Group("/admin/layout-templates")
	templates.Use(auth...)
	{
		templates.GET("", controller.ListTemplates)                          // GET /api/v1/admin/layout-templates
		templates.POST("/seed", controller.SeedTemplates)                    // POST /api/v1/admin/layout-templates/seed
		templates.GET("/:name", controller.GetTemplate)                      // GET /api/v1/admin/layout-templates/:name
		templates.POST("/:name/instantiate", controller.InstantiateTemplate) // POST /api/v1/admin/layout-templates/:name/instantiate
	}
}
