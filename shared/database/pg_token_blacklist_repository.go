package database

import (
	"context"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/interfaces"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var _ interfaces.TokenBlacklistRepository = (*pgTokenBlacklistRepository)(nil)

type pgTokenBlacklistRepository struct {
	db         *pgxpool.Pool
	failClosed bool
	logger     *zap.Logger
}

// NewPgTokenBlacklistRepository creates the Postgres-backed revocation store.
//
// failClosed selects the policy for lookups while the store is unreachable:
// false (default) treats the token as not revoked so requests keep working
// through an outage; true rejects everything until the store recovers. This
// availability/consistency tradeoff is a deployment decision, not a hidden
// default.
func NewPgTokenBlacklistRepository(db *pgxpool.Pool, failClosed bool, logger *zap.Logger) interfaces.TokenBlacklistRepository {
	return &pgTokenBlacklistRepository{
		db:         db,
		failClosed: failClosed,
		logger:     logger.Named("PgTokenBlacklistRepo"),
	}
}

// Add inserts a revoked token. The unique constraint on token plus
// ON CONFLICT DO NOTHING makes the insert idempotent; the database provides
// the row-level atomicity, no application locking is involved.
func (r *pgTokenBlacklistRepository) Add(ctx context.Context, token string, expiresAt time.Time) bool {
	query := `INSERT INTO token_blacklist (token, expires_at) VALUES ($1, $2) ON CONFLICT (token) DO NOTHING`
	_, err := r.db.Exec(ctx, query, token, expiresAt)
	if err != nil {
		// Fail soft: logout must not fail because the store is down. The
		// token then simply stays valid until its natural expiry.
		r.logger.Error("Failed to add token to blacklist", zap.Error(err), zap.Time("expiresAt", expiresAt))
		return false
	}
	r.logger.Debug("Token blacklisted", zap.Time("expiresAt", expiresAt))
	return true
}

// IsBlacklisted performs a point lookup by the exact token string.
func (r *pgTokenBlacklistRepository) IsBlacklisted(ctx context.Context, token string) bool {
	query := `SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = $1)`
	var revoked bool
	err := r.db.QueryRow(ctx, query, token).Scan(&revoked)
	if err != nil {
		r.logger.Error("Failed to check token blacklist, applying configured failure policy",
			zap.Error(err), zap.Bool("failClosed", r.failClosed))
		return r.failClosed
	}
	return revoked
}

// CleanExpired removes every entry whose expiry has passed. Run at process
// startup and from the administrative sweep endpoint.
func (r *pgTokenBlacklistRepository) CleanExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM token_blacklist WHERE expires_at < now()`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		r.logger.Error("Failed to clean expired blacklist entries", zap.Error(err))
		return 0, err
	}
	removed := tag.RowsAffected()
	r.logger.Info("Cleaned expired blacklist entries", zap.Int64("removed", removed))
	return removed, nil
}
