package layouts

import (
	"errors"
	"net/http"

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

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrLayoutNotFound), errors.Is(err, ErrZoneNotFound), errors.Is(err, ErrElementNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateElementID), errors.Is(err, ErrDuplicateZoneID), errors.Is(err, ErrInvalidStatus):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidLayoutID), errors.Is(err, ErrInvalidElement), errors.Is(err, ErrInvalidZone),
		errors.Is(err, ErrInvalidGrid), errors.Is(err, ErrRowLabelOverflow), errors.Is(err, ErrKindImmutable),
		errors.Is(err, ErrUnknownKind), errors.Is(err, ErrKindMismatch):
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

func (c *Controller) CreateLayout(ctx *gin.Context) {
	var req CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	layout, err := c.service.CreateLayout(ctx.Request.Context(), req, ctx.GetString("user_id"))
	if err != nil {
		respondError(ctx, "Failed to create layout", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusCreated, "Layout created successfully", layout, nil)
}

func (c *Controller) GetLayout(ctx *gin.Context) {
	layout, err := c.service.GetLayout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Failed to get layout", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Layout retrieved successfully", layout, nil)
}

func (c *Controller) ListLayouts(ctx *gin.Context) {
	var filters LayoutFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, response.BindingErrors(err))
		return
	}

	result, err := c.service.ListLayouts(ctx.Request.Context(), filters)
	if err != nil {
		respondError(ctx, "Failed to get layouts", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Layouts retrieved successfully", result.Summaries(), nil)
}

func (c *Controller) UpdateLayout(ctx *gin.Context) {
	var req UpdateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	layout, err := c.service.UpdateLayout(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, "Failed to update layout", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Layout updated successfully", layout, nil)
}

func (c *Controller) DeleteLayout(ctx *gin.Context) {
	if err := c.service.DeleteLayout(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, "Failed to delete layout", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Layout deleted successfully", nil, nil)
}

func (c *Controller) PublishLayout(ctx *gin.Context) {
	layout, err := c.service.PublishLayout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Failed to publish layout", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Layout published successfully", layout, nil)
}

func (c *Controller) ArchiveLayout(ctx *gin.Context) {
	layout, err := c.service.ArchiveLayout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Failed to archive layout", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Layout archived successfully", layout, nil)
}

// ELEMENTS

func (c *Controller) AddSeatGrid(ctx *gin.Context) {
	var req AddSeatGridRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	layout, err := c.service.AddSeatGrid(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, "Failed to add seat grid", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusCreated, "Seat grid added successfully", layout, nil)
}

func (c *Controller) RemoveElements(ctx *gin.Context) {
	var req RemoveElementsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	layout, err := c.service.RemoveElements(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, "Failed to remove elements", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Elements removed successfully", layout, nil)
}

func (c *Controller) PatchElements(ctx *gin.Context) {
	var req PatchElementsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	result, err := c.service.PatchElements(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, "Failed to update elements", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Elements updated successfully", result, nil)
}

// PRICE ZONES

func (c *Controller) AddPriceZone(ctx *gin.Context) {
	var req PriceZoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	layout, err := c.service.AddPriceZone(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, "Failed to add price zone", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusCreated, "Price zone added successfully", layout, nil)
}

func (c *Controller) UpdatePriceZone(ctx *gin.Context) {
	var req PriceZoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request data", nil, response.BindingErrors(err))
		return
	}

	layout, err := c.service.UpdatePriceZone(ctx.Request.Context(), ctx.Param("id"), ctx.Param("zoneId"), req)
	if err != nil {
		respondError(ctx, "Failed to update price zone", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Price zone updated successfully", layout, nil)
}

func (c *Controller) RemovePriceZone(ctx *gin.Context) {
	layout, err := c.service.RemovePriceZone(ctx.Request.Context(), ctx.Param("id"), ctx.Param("zoneId"))
	if err != nil {
		respondError(ctx, "Failed to remove price zone", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Price zone removed successfully", layout, nil)
}

// RENDERING VIEWS

func (c *Controller) GetCapacity(ctx *gin.Context) {
	report, err := c.service.GetCapacity(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Failed to get capacity", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Capacity retrieved successfully", report, nil)
}

func (c *Controller) GetDisplayColors(ctx *gin.Context) {
	colors, err := c.service.GetDisplayColors(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Failed to get display colors", err)
		return
	}

	response.RespondJSON(ctx, response.StatusSuccess, http.StatusOK, "Display colors retrieved successfully", colors, nil)
}
