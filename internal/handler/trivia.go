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

type TriviaHandler struct {
	triviaService *service.TriviaService
}

func NewTriviaHandler(triviaService *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{triviaService: triviaService}
}

func (h *TriviaHandler) GetToday(c *gin.Context) {
	trivia, err := h.triviaService.GetToday(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, trivia)
}

func (h *TriviaHandler) GetAll(c *gin.Context) {
	limit, offset := constants.ParseLimitOffset(c, constants.DefaultLimit)

	items, err := h.triviaService.GetAll(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetByID also serves the literal id "today", since gin cannot route a
// static /today next to the /:id parameter.
func (h *TriviaHandler) GetByID(c *gin.Context) {
	if c.Param("id") == "today" {
		h.GetToday(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid trivia ID", nil))
		return
	}

	trivia, err := h.triviaService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, trivia)
}

func (h *TriviaHandler) Create(c *gin.Context) {
	var req dto.CreateTriviaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	trivia, err := h.triviaService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, trivia)
}
