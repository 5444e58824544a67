package models

import "github.com/golang-jwt/jwt/v5"

// Token types stamped into the token_type claim. Every service in the
// system dispatches on these values, so they are part of the wire contract.
const (
	TokenTypeAccess        = "access"
	TokenTypeRefresh       = "refresh"
	TokenTypeResetPassword = "reset_password"
	TokenTypeEmailChange   = "email_change"
)

// TokenClaims is the signed payload shared by all Trainova services.
// The JSON keys are bit-exact: every downstream service decodes them with
// the same shared secret, without calling the auth service at runtime.
type TokenClaims struct {
	UserID          string `json:"user_id"`
	RoleID          int    `json:"role_id"`
	Email           string `json:"email"`
	TokenType       string `json:"token_type"`
	PasswordVersion int    `json:"password_version"`
	jwt.RegisteredClaims
}

// IsType reports whether the claims carry the expected token_type.
func (c *TokenClaims) IsType(tokenType string) bool {
	return c != nil && c.TokenType == tokenType
}
