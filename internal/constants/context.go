package constants

// Gin context keys set by the auth middleware
const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
)
