package tiers

import (
	"errors"
	"net/http"

	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/utils/response"

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
	case errors.Is(err, ErrInvalidEventID), errors.Is(err, layouts.ErrInvalidLayoutID),
		errors.Is(err, ErrBoundaryOrder), errors.Is(err, ErrBreakpointOrder):
		return http.StatusBadRequest
	case errors.Is(err, layouts.ErrLayoutNotFound), errors.Is(err, ErrBoundariesNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (c *Controller) GetBoundaries(ctx *gin.Context) {
	result, err := c.service.GetBoundaries(ctx.Request.Context(), ctx.Param("eventId"))
	if err != nil {
		response.RespondJSON(ctx, response.StatusError, errorStatus(err), "Failed to get tier boundaries", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Tier boundaries retrieved successfully", result, nil)
}

func (c *Controller) PutBoundaries(ctx *gin.Context) {
	var req PutBoundariesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	result, err := c.service.PutBoundaries(ctx.Request.Context(), ctx.Param("eventId"), req, ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, response.StatusError, errorStatus(err), "Failed to update tier boundaries", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Tier boundaries updated successfully", result, nil)
}

func (c *Controller) ClassifyLayout(ctx *gin.Context) {
	result, err := c.service.ClassifyLayout(ctx.Request.Context(), ctx.Param("eventId"), ctx.Param("layoutId"))
	if err != nil {
		response.RespondJSON(ctx, response.StatusError, errorStatus(err), "Failed to classify layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Layout classified successfully", result, nil)
}

func (c *Controller) ClassifyPoints(ctx *gin.Context) {
	var req ClassifyPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	result, err := c.service.ClassifyPoints(ctx.Request.Context(), ctx.Param("eventId"), req)
	if err != nil {
		response.RespondJSON(ctx, response.StatusError, errorStatus(err), "Failed to classify points", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Points classified successfully", result, nil)
}
