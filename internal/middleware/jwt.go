package middleware

import (
	"net/http"
	"strings"

	"github.com/geoexplorer/backend/internal/constants"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/geoexplorer/backend/internal/service"
	"github.com/geoexplorer/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JWTMiddleware struct {
	tokenService *service.TokenService
	userRepo     *repository.UserRepository
}

func NewJWTMiddleware(tokenService *service.TokenService, userRepo *repository.UserRepository) *JWTMiddleware {
	return &JWTMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// RequireAuth validates the bearer access token and resolves the caller to a
// user record. Every failure (missing header, bad signature, expired token,
// deleted user) yields the same 401 response.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.unauthorized(c, "Missing Authorization header")
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			m.unauthorized(c, "Invalid Authorization header format")
			return
		}

		userID, err := m.tokenService.ValidateAccessToken(tokenParts[1])
		if err != nil {
			m.unauthorized(c, "Invalid or expired token")
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			m.unauthorized(c, "Token subject no longer exists")
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

func (m *JWTMiddleware) unauthorized(c *gin.Context, reason string) {
	logger.GetLogger().Warn(reason,
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("client_ip", c.ClientIP()),
	)
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
	c.Abort()
}

// CurrentUser pulls the authenticated user placed in the context by
// RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
