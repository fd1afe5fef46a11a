package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultUserLevel is the rank assigned to freshly registered accounts.
const DefaultUserLevel = "初学者"

// User is an identity record. Email and phone are optional individually but
// at least one is always present; both are unique lookup keys. PasswordHash
// is nil for code-only accounts.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name         string     `gorm:"column:name;not null"`
	Email        *string    `gorm:"column:email;uniqueIndex"`
	Phone        *string    `gorm:"column:phone;uniqueIndex"`
	PasswordHash *string    `gorm:"column:password_hash"`
	AvatarURL    *string    `gorm:"column:avatar_url"`
	Level        string     `gorm:"column:level;not null;default:''"`
	TotalStars   int        `gorm:"column:total_stars;not null;default:0"`
	IsVerified   bool       `gorm:"column:is_verified;not null;default:false"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
