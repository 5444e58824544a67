package service

import (
	"context"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"
)

// AuthService covers the full token lifecycle: issuance at login/register,
// local verification with blacklist consultation, rotation, revocation and
// the reset-password / email-change flows.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, *models.TokenPairResponse, error)
	Login(ctx context.Context, email, password string) (*models.TokenPairResponse, error)

	// Logout blacklists the presented tokens. It never fails: a revocation
	// store outage degrades to the tokens remaining valid until expiry.
	Logout(ctx context.Context, accessToken, refreshToken string)

	// Refresh rotates a token pair. The refresh token must decode, carry
	// token_type "refresh", not be revoked, and its password_version must
	// match the user's live counter.
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPairResponse, error)

	// VerifyAccessToken is the issuing-service verification path: decode
	// plus a revocation-store lookup. Downstream services use the shared
	// verifier directly and skip the lookup.
	VerifyAccessToken(ctx context.Context, tokenString string) (*models.TokenClaims, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error

	RequestEmailChange(ctx context.Context, userID, newEmail string) error
	ConfirmEmailChange(ctx context.Context, token string) error

	// CleanExpiredTokens sweeps the blacklist and returns the rows removed.
	CleanExpiredTokens(ctx context.Context) (int64, error)
}
