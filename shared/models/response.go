package models

// Error codes returned in ErrorResponse.Code.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_error"
	ErrCodeWrongCredentials = "wrong_credentials"
	ErrCodeDuplicateEmail   = "duplicate_email"
	ErrCodeUserNotFound     = "user_not_found"
	ErrCodeNotFound         = "not_found"
	ErrCodeTokenInvalid     = "token_invalid"
	ErrCodeTokenExpired     = "token_expired"
	ErrCodeForbidden        = "forbidden"
	ErrCodeInternal         = "internal_error"
)

// ErrorResponse is the JSON error body returned by every service.
// Clients key on the human-readable "detail" string; "code" exists for
// machine handling.
type ErrorResponse struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

// TokenPairResponse is returned by login/register/refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // always "bearer"
}
