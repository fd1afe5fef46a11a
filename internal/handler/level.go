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

type LevelHandler struct {
	levelService *service.LevelService
}

func NewLevelHandler(levelService *service.LevelService) *LevelHandler {
	return &LevelHandler{levelService: levelService}
}

func (h *LevelHandler) GetAll(c *gin.Context) {
	levels, err := h.levelService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, levels)
}

func (h *LevelHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid level ID", nil))
		return
	}

	level, err := h.levelService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, level)
}

func (h *LevelHandler) Create(c *gin.Context) {
	var req dto.CreateLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	level, err := h.levelService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, level)
}

func (h *LevelHandler) GetUserProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user ID", nil))
		return
	}

	progress, err := h.levelService.GetUserProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *LevelHandler) UpdateUserProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user ID", nil))
		return
	}
	levelID, err := uuid.Parse(c.Param("level_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid level ID", nil))
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	progress, err := h.levelService.UpdateUserProgress(c.Request.Context(), userID, levelID, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, progress)
}
