package repository

import (
	"context"
	"errors"

	"github.com/geoexplorer/backend/internal/dto"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTarget looks up a user by a send-code target, which is an email when
// it contains '@' and a phone number otherwise.
func (r *UserRepository) GetByTarget(ctx context.Context, target string) (*model.User, error) {
	if dto.IsEmailTarget(target) {
		return r.GetByEmail(ctx, target)
	}
	return r.GetByPhone(ctx, target)
}

// GetByEmailOrPhone returns the first user matching either identifier.
// Empty identifiers are skipped.
func (r *UserRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*model.User, error) {
	if email != "" {
		user, err := r.GetByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if phone != "" {
		return r.GetByPhone(ctx, phone)
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update applies a partial update and returns the fresh record.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.User, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
