package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// refreshTokenBytes is the entropy of an opaque refresh token before encoding.
const refreshTokenBytes = 48

// tokenTypeAccess tags JWTs usable as API credentials. Validation rejects any
// other type so a token minted for one purpose cannot stand in for another.
const tokenTypeAccess = "access"

// ErrInvalidToken is the single outcome for every access-token validation
// failure. Callers cannot tell a bad signature from an expired or mistyped
// token.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and validates signed access tokens and generates the
// opaque refresh-token secrets alongside their storage digests.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// AccessTokenTTL returns the configured access-token lifetime.
func (s *TokenService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// IssueAccessToken creates a signed short-lived JWT for the user.
func (s *TokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"exp":  now.Add(s.accessTTL).Unix(),
		"iat":  now.Unix(),
		"type": tokenTypeAccess,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken verifies signature, expiry, and type tag, returning the
// subject user id. Every failure collapses to ErrInvalidToken.
func (s *TokenService) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	if typ, _ := claims["type"].(string); typ != tokenTypeAccess {
		return uuid.Nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

// GenerateRefreshToken produces a cryptographically random opaque secret.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRefreshToken returns the deterministic one-way digest stored in place
// of the secret; it doubles as the lookup key.
func (s *TokenService) HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
