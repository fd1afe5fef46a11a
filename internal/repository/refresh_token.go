package repository

import (
	"context"
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindUserIDByHash resolves an active token digest to its user. A record
// counts as active only while unrevoked and unexpired.
func (r *RefreshTokenRepository) FindUserIDByHash(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error) {
	var token model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked = ? AND expires_at > ?", tokenHash, false, now).
		First(&token).Error
	if err != nil {
		return uuid.Nil, err
	}
	return token.UserID, nil
}

// Revoke marks the matching unrevoked record revoked and reports whether the
// transition happened. The revoked flag flips in a single conditional UPDATE,
// so a token raced through two Refresh calls rotates exactly once.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("token_hash = ? AND revoked = ?", tokenHash, false).
		Update("revoked", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RevokeAllForUser revokes every active token of a user ("log out everywhere").
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	return result.RowsAffected, result.Error
}

// DeleteExpired removes tokens past their expiry.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.RefreshToken{})
	return result.RowsAffected, result.Error
}
