package templates

import (
	"errors"
	"net/http"

	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/utils/response"
	"venuelayout/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTemplate), errors.Is(err, layouts.ErrInvalidElement):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, message string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.GetDefault().LogHTTPError(ctx, err, status)
	}
	response.RespondJSON(ctx, response.StatusError, status, message, nil, err.Error())
}

func (c *Controller) ListTemplates(ctx *gin.Context) {
	var filters TemplateFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, response.BindingErrors(err))
		return
	}

	summaries, err := c.service.ListTemplates(ctx.Request.Context(), filters.Category)
	if err != nil {
		respondError(ctx, "Failed to list templates", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Templates retrieved successfully", summaries, nil)
}

func (c *Controller) GetTemplate(ctx *gin.Context) {
	tpl, err := c.service.GetTemplate(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		respondError(ctx, "Failed to get template", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Template retrieved successfully", tpl, nil)
}

func (c *Controller) InstantiateTemplate(ctx *gin.Context) {
	var req InstantiateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
			return
		}
	}

	layout, err := c.service.Instantiate(ctx.Request.Context(), ctx.Param("name"), req, ctx.GetString("user_id"))
	if err != nil {
		respondError(ctx, "Failed to create layout from template", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusCreated, "Layout created from template", layout, nil)
}

func (c *Controller) SeedTemplates(ctx *gin.Context) {
	seeded, err := c.service.SeedBuiltins(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Failed to seed templates", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Templates seeded successfully", SeedResponse{Seeded: seeded}, nil)
}
