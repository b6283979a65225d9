// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"venuelayout/internal/editor"
	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/config"
	"venuelayout/internal/shared/database"
	"venuelayout/internal/shared/utils/response"
	"venuelayout/internal/templates"
	"venuelayout/internal/tiers"
	"venuelayout/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher layouts.EventPublisher
	catalog   templates.Provider

	// Shared between route groups
	layoutRepo    layouts.Repository
	layoutService layouts.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher layouts.EventPublisher, catalog templates.Provider) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
		catalog:   catalog,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Layout routes first: tiers and templates share its repository
		r.setupLayoutRoutes(api)
		r.setupTierRoutes(api)
		r.setupTemplateRoutes(api)
		r.setupEditorRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		components := r.db.Health(c.Request.Context())
		code, status := http.StatusOK, "healthy"
		for _, component := range components {
			if component.Status == "down" {
				code, status = http.StatusServiceUnavailable, "unhealthy"
			}
		}

		c.JSON(code, gin.H{
			"status":     status,
			"components": components,
			"timestamp":  time.Now(),
			"service":    "venuelayout",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"templates":   len(r.catalog.List()),
			"timestamp":   time.Now(),
		})
	})
}

// setupLayoutRoutes configures layout editing routes
func (r *Router) setupLayoutRoutes(rg *gin.RouterGroup) {
	r.layoutRepo = layouts.NewRepository(r.db.GetPostgreSQL(), r.db.GetRedisClient())
	r.layoutService = layouts.NewService(r.layoutRepo, r.publisher)
	layouts.SetupLayoutRoutes(rg, layouts.NewController(r.layoutService))
}

// setupTierRoutes configures tier boundary and classification routes
func (r *Router) setupTierRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedisClient())
	tierRepo := tiers.NewRepository(r.db.GetPostgreSQL(), cacheService)
	tierService := tiers.NewService(tierRepo, r.layoutRepo, cacheService, r.config.Tiers.MinGap)
	tiers.SetupTierRoutes(rg, tiers.NewController(tierService))
}

// setupTemplateRoutes configures layout template routes
func (r *Router) setupTemplateRoutes(rg *gin.RouterGroup) {
	templateService := templates.NewService(r.catalog, r.layoutRepo, r.layoutService)
	templates.SetupTemplateRoutes(rg, templates.NewController(templateService))
}

// setupEditorRoutes exposes the editor defaults clients start from
func (r *Router) setupEditorRoutes(rg *gin.RouterGroup) {
	settings := editor.SettingsFromConfig(r.config.Editor)
	minGap := r.config.Tiers.MinGap

	rg.GET("/editor/settings", func(c *gin.Context) {
		response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Editor settings retrieved successfully", gin.H{
			"editor":       settings,
			"canvas":       settings.Canvas(),
			"tier_min_gap": minGap,
		}, nil)
	})
}
