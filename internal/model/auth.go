package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification code purposes
const (
	CodePurposeRegister = "register"
	CodePurposeLogin    = "login"
)

// VerificationCode is a one-time numeric code bound to an email or phone
// target. At most one unused code per target is current: issuing a new code
// marks every prior unused code for the target as used.
type VerificationCode struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Target    string    `gorm:"column:target;not null;index"`
	Code      string    `gorm:"column:code;not null"`
	Purpose   string    `gorm:"column:purpose;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	Used      bool      `gorm:"column:used;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}

func (v *VerificationCode) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// RefreshToken stores only the SHA-256 digest of the opaque secret handed to
// the client; the raw secret is never persisted. Revocation is monotonic.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	TokenHash string    `gorm:"column:token_hash;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	Revoked   bool      `gorm:"column:revoked;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
