package authutils

import (
	"fmt"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// defaultResetPasswordTTL applies when the config leaves the reset lifetime
// unset and the caller gives no override.
const defaultResetPasswordTTL = 30 * time.Minute

// Issuer builds signed token payloads. Issuance is a pure function of the
// secret, the algorithm and the wall clock: no I/O, no shared mutable state.
type Issuer struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

// NewIssuer creates an Issuer from the shared token config.
func NewIssuer(cfg Config) (*Issuer, error) {
	if err := validateSecret(cfg.Secret); err != nil {
		return nil, err
	}
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	resetTTL := cfg.ResetPasswordTokenTTL
	if resetTTL <= 0 {
		resetTTL = defaultResetPasswordTTL
	}
	return &Issuer{
		secret:     []byte(cfg.Secret),
		method:     method,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		resetTTL:   resetTTL,
	}, nil
}

// CreateAccessToken issues an access token. expireMinutes overrides the
// configured lifetime when positive; passwordVersion is stamped from the
// user's current password-change counter.
func (i *Issuer) CreateAccessToken(userID string, roleID int, email string, expireMinutes int, passwordVersion int) (string, error) {
	ttl := i.accessTTL
	if expireMinutes > 0 {
		ttl = time.Duration(expireMinutes) * time.Minute
	}
	return i.sign(userID, roleID, email, models.TokenTypeAccess, ttl, passwordVersion)
}

// CreateRefreshToken issues a refresh token with the configured refresh lifetime.
func (i *Issuer) CreateRefreshToken(userID string, roleID int, email string, passwordVersion int) (string, error) {
	return i.sign(userID, roleID, email, models.TokenTypeRefresh, i.refreshTTL, passwordVersion)
}

// CreateResetPasswordToken issues a reset_password token. The verifier
// exempts this type from expiry rejection; a second code-matching step gates
// actual use, so a stale link reads as "used" rather than "expired".
func (i *Issuer) CreateResetPasswordToken(userID string, roleID int, email string, expireMinutes int, passwordVersion int) (string, error) {
	ttl := i.resetTTL
	if expireMinutes > 0 {
		ttl = time.Duration(expireMinutes) * time.Minute
	}
	return i.sign(userID, roleID, email, models.TokenTypeResetPassword, ttl, passwordVersion)
}

// CreateEmailChangeToken issues an email_change token bound to the new
// address the user is switching to.
func (i *Issuer) CreateEmailChangeToken(userID string, roleID int, newEmail string, expireMinutes int, passwordVersion int) (string, error) {
	ttl := i.resetTTL
	if expireMinutes > 0 {
		ttl = time.Duration(expireMinutes) * time.Minute
	}
	return i.sign(userID, roleID, newEmail, models.TokenTypeEmailChange, ttl, passwordVersion)
}

func (i *Issuer) sign(userID string, roleID int, email, tokenType string, ttl time.Duration, passwordVersion int) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID:          userID,
		RoleID:          roleID,
		Email:           email,
		TokenType:       tokenType,
		PasswordVersion: passwordVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}
