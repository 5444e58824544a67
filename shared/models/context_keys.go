package models

// Gin context keys populated by the auth middleware. Handlers read these
// instead of re-decoding the token; token_type and expiry are deliberately
// not forwarded.
const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
	ContextRoleIDKey = "role_id"
)
