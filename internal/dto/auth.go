package dto

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
)

// IsEmailTarget reports whether a target string is email-shaped rather than
// phone-shaped.
func IsEmailTarget(target string) bool {
	return strings.Contains(target, "@")
}

// ValidateTarget checks that target is either a valid email address or a
// phone number (optional leading +, 7-15 digits after stripping spaces and
// dashes).
func ValidateTarget(target string) error {
	if emailPattern.MatchString(target) {
		return nil
	}
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(target)
	if phonePattern.MatchString(normalized) {
		return nil
	}
	return apperrors.NewDomainError("VALIDATION_ERROR", "target must be a valid email or phone number")
}

// validateEmailOrPhone enforces the cross-field rule shared by the register
// and login requests: at least one identifier, and each present identifier
// well-formed.
func validateEmailOrPhone(email, phone string) error {
	if email == "" && phone == "" {
		return apperrors.NewDomainError("VALIDATION_ERROR", "at least one of email or phone must be provided")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return apperrors.NewDomainError("VALIDATION_ERROR", "invalid email address")
	}
	if phone != "" {
		normalized := strings.NewReplacer(" ", "", "-", "").Replace(phone)
		if !phonePattern.MatchString(normalized) {
			return apperrors.NewDomainError("VALIDATION_ERROR", "invalid phone number")
		}
	}
	return nil
}

type SendCodeRequest struct {
	Target string `json:"target" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=register login"`
}

func (r *SendCodeRequest) Validate() error {
	return ValidateTarget(r.Target)
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	Code      string `json:"code" binding:"required,len=6,numeric"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Password  string `json:"password" binding:"required,min=6,max=100"`
	AvatarURL string `json:"avatar_url"`
}

func (r *RegisterRequest) Validate() error {
	return validateEmailOrPhone(r.Email, r.Phone)
}

// Target returns the identifier the verification code was delivered to.
func (r *RegisterRequest) Target() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Phone
}

type LoginPasswordRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginPasswordRequest) Validate() error {
	return validateEmailOrPhone(r.Email, r.Phone)
}

type LoginCodeRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty,phone"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

func (r *LoginCodeRequest) Validate() error {
	return validateEmailOrPhone(r.Email, r.Phone)
}

func (r *LoginCodeRequest) Target() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Phone
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPairResponse is returned by every successful authentication event.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // access token expiry in seconds
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Level      string    `json:"level"`
	TotalStars int       `json:"total_stars"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserResponse maps a user record to its API shape
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		AvatarURL:  u.AvatarURL,
		Level:      u.Level,
		TotalStars: u.TotalStars,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}
