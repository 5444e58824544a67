package authutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// minTokenLength: anything shorter cannot be a three-part compact JWT and is
// rejected before any cryptographic work.
const minTokenLength = 10

// Verifier validates signed tokens. Verification is purely a function of
// (token, shared secret, algorithm, current time); every service holds its
// own Verifier and never calls the auth service.
//
// Decode never lets a jwt library error escape: all failures collapse into
// the models.ErrToken* sentinels so callers cannot build an oracle out of
// the rejection reason.
type Verifier struct {
	secret []byte
	alg    string
	logger *zap.Logger
}

// NewVerifier creates a Verifier. A nil logger falls back to a no-op.
func NewVerifier(cfg Config, logger *zap.Logger) (*Verifier, error) {
	if err := validateSecret(cfg.Secret); err != nil {
		return nil, err
	}
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		secret: []byte(cfg.Secret),
		alg:    method.Alg(),
		logger: logger.Named("TokenVerifier"),
	}, nil
}

// Decode parses and validates a token string.
//
// reset_password tokens are exempt from expiry rejection: the reset flow
// tolerates a stale link surfacing as "used" downstream, and a separate
// code-matching step gates actual use. That requires a first decode that
// skips claims validation to see token_type, then a strict re-decode for
// every other type. A single library call cannot both ignore expiry and
// dispatch on the payload, hence the two passes.
func (v *Verifier) Decode(tokenString string) (*models.TokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if len(tokenString) < minTokenLength {
		v.logger.Debug("Rejected token shorter than minimal plausible length", zap.Int("length", len(tokenString)))
		return nil, models.ErrTokenMalformed
	}

	// Pass one: signature verified, claims validation (exp, nbf) skipped.
	peek := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, peek, v.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, v.mapParseError(err)
	}

	if peek.TokenType == models.TokenTypeResetPassword {
		return peek, nil
	}

	// Pass two: full validation including expiry.
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc)
	if err != nil {
		return nil, v.mapParseError(err)
	}
	if !token.Valid {
		v.logger.Warn("Token reported invalid despite no parsing error")
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// IsValid reports whether the token decodes and, when expectedType is
// non-empty, carries that token_type.
func (v *Verifier) IsValid(tokenString, expectedType string) bool {
	claims, err := v.Decode(tokenString)
	if err != nil {
		return false
	}
	if expectedType != "" && claims.TokenType != expectedType {
		return false
	}
	return true
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	if token.Method.Alg() != v.alg {
		return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
	}
	return v.secret, nil
}

func (v *Verifier) mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		v.logger.Warn("Failed to parse token: malformed")
		return models.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		v.logger.Debug("Token verification failed: expired")
		return models.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		v.logger.Warn("Token verification failed: invalid signature")
		return models.ErrTokenInvalid
	default:
		v.logger.Warn("Failed to parse or verify token", zap.Error(err))
		return models.ErrTokenInvalid
	}
}
