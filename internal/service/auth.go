package service

import (
	"context"
	"errors"
	"time"

	"github.com/geoexplorer/backend/config"
	"github.com/geoexplorer/backend/internal/dto"
	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/geoexplorer/backend/pkg/logger"
	"github.com/geoexplorer/backend/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService orchestrates registration, login, token refresh, and logout.
type AuthService struct {
	users        *repository.UserRepository
	tokens       *repository.RefreshTokenRepository
	verification *VerificationService
	tokenService *TokenService
	hasher       *PasswordHasher
	cache        redis.Client
	refreshTTL   time.Duration
	rateLimit    config.RateLimitConfig
}

func NewAuthService(
	users *repository.UserRepository,
	tokens *repository.RefreshTokenRepository,
	verification *VerificationService,
	tokenService *TokenService,
	hasher *PasswordHasher,
	cache redis.Client,
	refreshTTL time.Duration,
	rateLimit config.RateLimitConfig,
) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		verification: verification,
		tokenService: tokenService,
		hasher:       hasher,
		cache:        cache,
		refreshTTL:   refreshTTL,
		rateLimit:    rateLimit,
	}
}

// SendCode issues a verification code after checking the purpose against the
// account state: register requires a fresh target, login an existing one.
func (s *AuthService) SendCode(ctx context.Context, target, purpose string) error {
	allowed, err := s.cache.Allow(ctx, "send-code:"+target, s.rateLimit.SendCodeMax, s.rateLimit.SendCodeWindow)
	if err != nil {
		// Rate limiting is best-effort; a broken limiter must not lock
		// everyone out.
		logger.GetLogger().Warn("Send-code rate limiter unavailable",
			zap.String("target", target),
			zap.Error(err),
		)
	} else if !allowed {
		logger.GetLogger().Warn("Send-code rate limit exceeded",
			zap.String("target", target),
		)
		return apperrors.NewDomainError("VALIDATION_ERROR", "验证码发送过于频繁 / Too many code requests")
	}

	user, err := s.users.GetByTarget(ctx, target)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	exists := err == nil && user != nil

	switch purpose {
	case model.CodePurposeRegister:
		if exists {
			return apperrors.ErrAlreadyRegistered
		}
	case model.CodePurposeLogin:
		if !exists {
			return apperrors.ErrUserNotFound
		}
	}

	if _, err := s.verification.Issue(ctx, target, purpose); err != nil {
		return err
	}

	logger.GetLogger().Info("Verification code sent",
		zap.String("target", target),
		zap.String("purpose", purpose),
	)
	return nil
}

// Register creates a verified account after redeeming a register code, then
// signs the new user in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenPairResponse, error) {
	existing, err := s.users.GetByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyRegistered
	}

	ok, err := s.verification.Redeem(ctx, req.Target(), req.Code, model.CodePurposeRegister)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCode
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:         req.Name,
		PasswordHash: &passwordHash,
		Level:        model.DefaultUserLevel,
		IsVerified:   true,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.AvatarURL != "" {
		user.AvatarURL = &req.AvatarURL
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.GetLogger().Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("target", req.Target()),
	)

	return s.issueTokenPair(ctx, user.ID)
}

// LoginWithPassword authenticates by email/phone and password. Unknown
// account, account without a password, and wrong password all collapse into
// the same invalid-credentials error so responses cannot be used to probe
// which accounts exist.
func (s *AuthService) LoginWithPassword(ctx context.Context, req *dto.LoginPasswordRequest) (*dto.TokenPairResponse, error) {
	user, err := s.users.GetByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if user.PasswordHash == nil || !s.hasher.Verify(req.Password, *user.PasswordHash) {
		logger.GetLogger().Warn("Password login failed",
			zap.String("user_id", user.ID.String()),
		)
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.GetLogger().Info("User logged in with password",
		zap.String("user_id", user.ID.String()),
	)
	return s.issueTokenPair(ctx, user.ID)
}

// LoginWithCode authenticates by email/phone and a login verification code.
func (s *AuthService) LoginWithCode(ctx context.Context, req *dto.LoginCodeRequest) (*dto.TokenPairResponse, error) {
	user, err := s.users.GetByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	ok, err := s.verification.Redeem(ctx, req.Target(), req.Code, model.CodePurposeLogin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCode
	}

	logger.GetLogger().Info("User logged in with code",
		zap.String("user_id", user.ID.String()),
	)
	return s.issueTokenPair(ctx, user.ID)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair issued. The conditional revoke is the race arbiter; if two concurrent
// calls present the same token only one revocation lands, and the loser gets
// an invalid-token error.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	tokenHash := s.tokenService.HashRefreshToken(refreshToken)

	userID, err := s.tokens.FindUserIDByHash(ctx, tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	revoked, err := s.tokens.Revoke(ctx, tokenHash)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !revoked {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	logger.GetLogger().Info("Refresh token rotated",
		zap.String("user_id", userID.String()),
	)
	return s.issueTokenPair(ctx, userID)
}

// Logout revokes the presented refresh token. Always succeeds; the return
// value reports whether a live token was actually revoked.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (bool, error) {
	tokenHash := s.tokenService.HashRefreshToken(refreshToken)
	revoked, err := s.tokens.Revoke(ctx, tokenHash)
	if err != nil {
		return false, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return revoked, nil
}

// LogoutAll revokes every active refresh token of the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.tokens.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	logger.GetLogger().Info("All sessions revoked",
		zap.String("user_id", userID.String()),
		zap.Int64("count", count),
	)
	return count, nil
}

// CleanupExpired removes expired verification codes and refresh tokens.
func (s *AuthService) CleanupExpired(ctx context.Context) {
	codes, err := s.verification.CleanupExpired(ctx)
	if err != nil {
		logger.GetLogger().Error("Verification code cleanup failed", zap.Error(err))
	}
	tokens, err := s.tokens.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.GetLogger().Error("Refresh token cleanup failed", zap.Error(err))
	}
	if codes > 0 || tokens > 0 {
		logger.GetLogger().Info("Expired auth records cleaned up",
			zap.Int64("verification_codes", codes),
			zap.Int64("refresh_tokens", tokens),
		)
	}
}

// issueTokenPair mints an access token and a fresh refresh token, persisting
// only the refresh token's digest.
func (s *AuthService) issueTokenPair(ctx context.Context, userID uuid.UUID) (*dto.TokenPairResponse, error) {
	accessToken, err := s.tokenService.IssueAccessToken(userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshSecret, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	record := &model.RefreshToken{
		UserID:    userID,
		TokenHash: s.tokenService.HashRefreshToken(refreshSecret),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshSecret,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokenService.AccessTokenTTL().Seconds()),
	}, nil
}
