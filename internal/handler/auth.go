package handler

import (
	"fmt"
	"net/http"

	"github.com/geoexplorer/backend/internal/constants"
	"github.com/geoexplorer/backend/internal/dto"
	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/middleware"
	"github.com/geoexplorer/backend/internal/service"
	"github.com/geoexplorer/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SendCode issues a verification code to an email or phone target
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req dto.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request", apperrors.GetErrorMessage(err)))
		return
	}

	if err := h.authService.SendCode(c.Request.Context(), req.Target, req.Type); err != nil {
		logger.GetLogger().Warn("Send code failed",
			zap.String("target", req.Target),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(
		fmt.Sprintf("验证码已发送至 %s / Verification code sent", req.Target)))
}

// Register creates a new account from a verification code and returns a
// token pair
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request", apperrors.GetErrorMessage(err)))
		return
	}

	pair, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		logger.GetLogger().Warn("Registration failed",
			zap.String("target", req.Target()),
			zap.Error(err),
		)
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, pair)
}

// LoginPassword authenticates with email/phone and password
func (h *AuthHandler) LoginPassword(c *gin.Context) {
	var req dto.LoginPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request", apperrors.GetErrorMessage(err)))
		return
	}

	pair, err := h.authService.LoginWithPassword(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, pair)
}

// LoginCode authenticates with email/phone and a verification code
func (h *AuthHandler) LoginCode(c *gin.Context) {
	var req dto.LoginCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request", apperrors.GetErrorMessage(err)))
		return
	}

	pair, err := h.authService.LoginWithCode(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new token pair, rotating the
// presented token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout revokes a refresh token. Logout is idempotent: the response shape is
// always success, with the success flag reporting whether a live token was
// revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	revoked, err := h.authService.Logout(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildMessageResponse("已登出 / Logged out successfully", revoked))
}

// LogoutAll revokes every active session of the authenticated user
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	count, err := h.authService.LogoutAll(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(
		fmt.Sprintf("Revoked %d active sessions", count)))
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
