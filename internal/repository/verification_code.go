package repository

import (
	"context"
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"gorm.io/gorm"
)

type VerificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

func (r *VerificationCodeRepository) Create(ctx context.Context, code *model.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// InvalidateUnused marks every unused code for the target as used, across
// both purposes. Called before issuing a new code so only the latest one can
// ever redeem.
func (r *VerificationCodeRepository) InvalidateUnused(ctx context.Context, target string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.VerificationCode{}).
		Where("target = ? AND used = ?", target, false).
		Update("used", true)
	return result.RowsAffected, result.Error
}

// Redeem consumes a matching unused, unexpired code. The used flag flips in a
// single conditional UPDATE, so concurrent redemptions of the same code see
// exactly one winner; there is no read-then-write window.
func (r *VerificationCodeRepository) Redeem(ctx context.Context, target, code, purpose string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.VerificationCode{}).
		Where("target = ? AND code = ? AND purpose = ? AND used = ? AND expires_at > ?",
			target, code, purpose, false, now).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteExpired removes codes past their expiry regardless of used state.
// Maintenance only; redemption already rejects expired codes.
func (r *VerificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.VerificationCode{})
	return result.RowsAffected, result.Error
}
