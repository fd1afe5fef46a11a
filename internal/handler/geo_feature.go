package handler

import (
	"net/http"
	"strings"

	"github.com/geoexplorer/backend/internal/constants"
	"github.com/geoexplorer/backend/internal/dto"
	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GeoFeatureHandler struct {
	geoService *service.GeoFeatureService
}

func NewGeoFeatureHandler(geoService *service.GeoFeatureService) *GeoFeatureHandler {
	return &GeoFeatureHandler{geoService: geoService}
}

// GetAll lists features, optionally filtered; a q parameter switches to
// substring search over name and description.
func (h *GeoFeatureHandler) GetAll(c *gin.Context) {
	limit, offset := constants.ParseLimitOffset(c, constants.DefaultLimit)

	if query := strings.TrimSpace(c.Query("q")); query != "" {
		features, err := h.geoService.Search(c.Request.Context(), query, limit)
		if err != nil {
			c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
			return
		}
		c.JSON(http.StatusOK, features)
		return
	}

	features, err := h.geoService.GetAll(c.Request.Context(),
		c.Query("feature_type"), c.Query("region"), limit, offset)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, features)
}

func (h *GeoFeatureHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid feature ID", nil))
		return
	}

	feature, err := h.geoService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, feature)
}

func (h *GeoFeatureHandler) Create(c *gin.Context) {
	var req dto.CreateGeoFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	feature, err := h.geoService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, feature)
}

