package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/geoexplorer/backend/internal/service"
	"github.com/geoexplorer/backend/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthEngine(t *testing.T) (*gin.Engine, *service.TokenService, *model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	user := &model.User{Name: "Explorer", Level: model.DefaultUserLevel}
	require.NoError(t, users.Create(context.Background(), user))

	tokenService := service.NewTokenService("test-secret", 15*time.Minute)
	jwtMiddleware := NewJWTMiddleware(tokenService, users)

	engine := gin.New()
	engine.GET("/protected", jwtMiddleware.RequireAuth(), func(c *gin.Context) {
		current, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": current.ID})
	})
	return engine, tokenService, user
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	engine, tokens, user := newAuthEngine(t)

	token, err := tokens.IssueAccessToken(user.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), user.ID.String())
}

func TestRequireAuthRejections(t *testing.T) {
	engine, tokens, user := newAuthEngine(t)

	expired := service.NewTokenService("test-secret", -time.Minute)
	expiredToken, err := expired.IssueAccessToken(user.ID)
	require.NoError(t, err)

	wrongSecret := service.NewTokenService("other-secret", 15*time.Minute)
	forgedToken, err := wrongSecret.IssueAccessToken(user.ID)
	require.NoError(t, err)

	// Token for a user that no longer exists
	orphanToken, err := tokens.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expiredToken},
		{"wrong secret", "Bearer " + forgedToken},
		{"unknown subject", "Bearer " + orphanToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			engine.ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
