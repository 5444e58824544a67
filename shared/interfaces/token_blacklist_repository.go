package interfaces

import (
	"context"
	"time"
)

// TokenBlacklistRepository is the durable record of explicitly revoked
// tokens. It is the only persisted state in the token subsystem and is
// owned by the auth service's database.
type TokenBlacklistRepository interface {
	// Add records a revoked token until its natural expiry. The insert is
	// idempotent: re-adding the same token is a silent no-op. A store
	// failure is reported as false, never as an error; logout degrades to
	// "token stays valid until expiry" instead of failing the request.
	Add(ctx context.Context, token string, expiresAt time.Time) bool

	// IsBlacklisted checks the token by exact string match. Behavior on a
	// store failure is a configured policy: fail-open (false) by default,
	// fail-closed (true) when strict revocation is preferred over
	// availability.
	IsBlacklisted(ctx context.Context, token string) bool

	// CleanExpired deletes every entry past its expires_at and returns the
	// number removed. Set-based and safe to run concurrently.
	CleanExpired(ctx context.Context) (int64, error)
}
