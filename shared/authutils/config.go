package authutils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config carries the token subsystem settings. Secret and Algorithm must be
// identical across all services: downstream services re-verify tokens
// locally and never call the auth service.
type Config struct {
	Secret                string        // JWT_SECRET
	Algorithm             string        // JWT_ALGORITHM (HS256, HS384, HS512)
	AccessTokenTTL        time.Duration // ACCESS_TOKEN_EXPIRE_SECONDS
	RefreshTokenTTL       time.Duration // REFRESH_TOKEN_EXPIRE_SECONDS
	ResetPasswordTokenTTL time.Duration // RESET_PASSWORD_TOKEN_EXPIRE_MINUTES
}

// signingMethod resolves the configured algorithm name to a jwt.SigningMethod.
// Only shared-secret HMAC variants are supported.
func signingMethod(name string) (jwt.SigningMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported JWT algorithm %q", name)
	}
}

func validateSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT secret cannot be empty")
	}
	return nil
}
