package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/geoexplorer/backend/config"
	"github.com/geoexplorer/backend/internal/dto"
	"github.com/geoexplorer/backend/internal/middleware"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/geoexplorer/backend/internal/service"
	"github.com/geoexplorer/backend/pkg/database"
	"github.com/geoexplorer/backend/pkg/logger"
	pkgredis "github.com/geoexplorer/backend/pkg/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type captureNotifier struct {
	code string
}

func (n *captureNotifier) SendCode(_ context.Context, _, code, _ string) error {
	n.code = code
	return nil
}

type authTestServer struct {
	engine   *gin.Engine
	notifier *captureNotifier
}

func newAuthTestServer(t *testing.T) *authTestServer {
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

	mr := miniredis.RunT(t)
	cache := pkgredis.NewClientFromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), logger.GetLogger())

	users := repository.NewUserRepository(db)
	codes := repository.NewVerificationCodeRepository(db)
	tokens := repository.NewRefreshTokenRepository(db)

	notifier := &captureNotifier{}
	verification := service.NewVerificationService(codes, notifier, 5*time.Minute, 6)
	tokenService := service.NewTokenService("test-secret", 15*time.Minute)
	authService := service.NewAuthService(users, tokens, verification, tokenService, service.NewPasswordHasher(),
		cache, 7*24*time.Hour, config.RateLimitConfig{SendCodeMax: 100, SendCodeWindow: time.Minute})

	authHandler := NewAuthHandler(authService)
	jwtMiddleware := middleware.NewJWTMiddleware(tokenService, users)

	engine := gin.New()
	auth := engine.Group("/api/auth")
	{
		auth.POST("/send-code", authHandler.SendCode)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login/password", authHandler.LoginPassword)
		auth.POST("/login/code", authHandler.LoginCode)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", jwtMiddleware.RequireAuth(), authHandler.Me)
		auth.POST("/logout-all", jwtMiddleware.RequireAuth(), authHandler.LogoutAll)
	}

	return &authTestServer{engine: engine, notifier: notifier}
}

func (s *authTestServer) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *authTestServer) get(t *testing.T, path, accessToken string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	s.engine.ServeHTTP(w, req)
	return w
}

// registerUser runs the send-code plus register flow over HTTP.
func (s *authTestServer) registerUser(t *testing.T, email, password string) dto.TokenPairResponse {
	t.Helper()

	w := s.post(t, "/api/auth/send-code", gin.H{"target": email, "type": "register"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.post(t, "/api/auth/register", gin.H{
		"email":    email,
		"code":     s.notifier.code,
		"name":     "Explorer",
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair dto.TokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return pair
}

func TestAuthRegisterAndMe(t *testing.T) {
	srv := newAuthTestServer(t)

	pair := srv.registerUser(t, "user@example.com", "secret123")
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "bearer", pair.TokenType)
	require.Equal(t, 900, pair.ExpiresIn)

	w := srv.get(t, "/api/auth/me", pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "Explorer", me.Name)
	require.Equal(t, "user@example.com", *me.Email)
	require.True(t, me.IsVerified)

	// Without a token the profile is off limits
	w = srv.get(t, "/api/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRegisterConflict(t *testing.T) {
	srv := newAuthTestServer(t)

	srv.registerUser(t, "user@example.com", "secret123")

	w := srv.post(t, "/api/auth/send-code", gin.H{"target": "user@example.com", "type": "register"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthRegisterBadPayloads(t *testing.T) {
	srv := newAuthTestServer(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"no identifier", gin.H{"code": "123456", "name": "X", "password": "secret123"}},
		{"short password", gin.H{"email": "user@example.com", "code": "123456", "name": "X", "password": "abc"}},
		{"non-numeric code", gin.H{"email": "user@example.com", "code": "abcdef", "name": "X", "password": "secret123"}},
		{"bad email", gin.H{"email": "nope", "code": "123456", "name": "X", "password": "secret123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.post(t, "/api/auth/register", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthLoginPassword(t *testing.T) {
	srv := newAuthTestServer(t)

	srv.registerUser(t, "user@example.com", "secret123")

	w := srv.post(t, "/api/auth/login/password", gin.H{"email": "user@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong password and unknown account return the same status
	w = srv.post(t, "/api/auth/login/password", gin.H{"email": "user@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.post(t, "/api/auth/login/password", gin.H{"email": "nobody@example.com", "password": "secret123"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthLoginCode(t *testing.T) {
	srv := newAuthTestServer(t)

	srv.registerUser(t, "user@example.com", "secret123")

	w := srv.post(t, "/api/auth/send-code", gin.H{"target": "user@example.com", "type": "login"})
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.post(t, "/api/auth/login/code", gin.H{"email": "user@example.com", "code": srv.notifier.code})
	require.Equal(t, http.StatusOK, w.Code)

	// The code is spent
	w = srv.post(t, "/api/auth/login/code", gin.H{"email": "user@example.com", "code": srv.notifier.code})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRefreshRotationChain(t *testing.T) {
	srv := newAuthTestServer(t)

	pair := srv.registerUser(t, "user@example.com", "secret123")

	w := srv.post(t, "/api/auth/refresh", gin.H{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	var rotated dto.TokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rotated))
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Replaying the spent token fails, the rotated one still works
	w = srv.post(t, "/api/auth/refresh", gin.H{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.post(t, "/api/auth/refresh", gin.H{"refresh_token": rotated.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthLogoutEnvelope(t *testing.T) {
	srv := newAuthTestServer(t)

	pair := srv.registerUser(t, "user@example.com", "secret123")

	w := srv.post(t, "/api/auth/logout", gin.H{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	var first map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.Equal(t, true, first["success"])

	// Logging out twice stays 200 but reports nothing was revoked
	w = srv.post(t, "/api/auth/logout", gin.H{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	var second map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Equal(t, false, second["success"])
}

func TestAuthLogoutAll(t *testing.T) {
	srv := newAuthTestServer(t)

	pair := srv.registerUser(t, "user@example.com", "secret123")

	w := srv.post(t, "/api/auth/login/password", gin.H{"email": "user@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	var second dto.TokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout-all", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Both refresh tokens are dead
	w = srv.post(t, "/api/auth/refresh", gin.H{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = srv.post(t, "/api/auth/refresh", gin.H{"refresh_token": second.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
