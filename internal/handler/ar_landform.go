package handler

import (
	"net/http"

	"github.com/geoexplorer/backend/internal/constants"
	"github.com/geoexplorer/backend/internal/dto"
	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ARLandformHandler struct {
	arService *service.ARLandformService
}

func NewARLandformHandler(arService *service.ARLandformService) *ARLandformHandler {
	return &ARLandformHandler{arService: arService}
}

func (h *ARLandformHandler) GetAll(c *gin.Context) {
	landforms, err := h.arService.GetAll(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, landforms)
}

func (h *ARLandformHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid landform ID", nil))
		return
	}

	landform, err := h.arService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, landform)
}

func (h *ARLandformHandler) Create(c *gin.Context) {
	var req dto.CreateARLandformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	landform, err := h.arService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, landform)
}
