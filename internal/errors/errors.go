package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match wrapped domain errors by code
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors.
//
// Credential failures on the login paths all map to ErrInvalidCredentials so
// responses never reveal whether an account exists, has a password, or which
// check failed.
var (
	// Account errors
	ErrUserNotFound      = NewDomainError("USER_NOT_FOUND", "账号不存在 / Account not found")
	ErrAlreadyRegistered = NewDomainError("ALREADY_REGISTERED", "该账号已被注册 / Account already registered")

	// Authentication errors
	ErrInvalidCredentials  = NewDomainError("INVALID_CREDENTIALS", "账号或密码错误 / Invalid credentials")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrInvalidCode         = NewDomainError("INVALID_CODE", "验证码无效或已过期 / Invalid or expired verification code")
	ErrInvalidRefreshToken = NewDomainError("INVALID_REFRESH_TOKEN", "无效的刷新令牌 / Invalid refresh token")

	// Validation errors
	ErrValidation = NewDomainError("VALIDATION_ERROR", "invalid input")

	// Resource errors
	ErrNotFound = NewDomainError("NOT_FOUND", "resource not found")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case "VALIDATION_ERROR", "INVALID_CODE":
		return http.StatusBadRequest

	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "INVALID_REFRESH_TOKEN":
		return http.StatusUnauthorized

	case "USER_NOT_FOUND", "NOT_FOUND":
		return http.StatusNotFound

	case "ALREADY_REGISTERED":
		return http.StatusConflict

	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
