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

type MistakeHandler struct {
	mistakeService *service.MistakeService
}

func NewMistakeHandler(mistakeService *service.MistakeService) *MistakeHandler {
	return &MistakeHandler{mistakeService: mistakeService}
}

func (h *MistakeHandler) GetAll(c *gin.Context) {
	limit, offset := constants.ParseLimitOffset(c, constants.DefaultLimit)

	filter := dto.MistakeFilter{
		Category:     c.Query("category"),
		MasteryLevel: c.Query("mastery_level"),
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user ID", nil))
			return
		}
		filter.UserID = &userID
	}

	mistakes, err := h.mistakeService.GetAll(c.Request.Context(), filter, limit, offset)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, mistakes)
}

func (h *MistakeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid mistake ID", nil))
		return
	}

	mistake, err := h.mistakeService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, mistake)
}

func (h *MistakeHandler) Create(c *gin.Context) {
	var req dto.CreateMistakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	mistake, err := h.mistakeService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, mistake)
}

func (h *MistakeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid mistake ID", nil))
		return
	}

	var req dto.UpdateMistakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	mistake, err := h.mistakeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, mistake)
}

func (h *MistakeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid mistake ID", nil))
		return
	}

	if err := h.mistakeService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Mistake deleted"))
}
