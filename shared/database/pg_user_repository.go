package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnlksnvv/Trainova-sub001/shared/interfaces"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var _ interfaces.UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db *pgxpool.Pool, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// CreateUser inserts a new user into the database.
func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, role_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, password_version, created_at`
	err := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.RoleID).
		Scan(&user.ID, &user.PasswordVersion, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create user with duplicate email", zap.String("email", user.Email))
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	r.logger.Info("User created", zap.String("userID", user.ID.String()), zap.String("email", user.Email))
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, role_id, password_version, created_at
	          FROM users WHERE id = $1`
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.RoleID, &user.PasswordVersion, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by ID", zap.String("id", id.String()))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email.
func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, role_id, password_version, created_at
	          FROM users WHERE email = $1`
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.RoleID, &user.PasswordVersion, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return user, nil
}

// UpdatePassword stores a new password hash and bumps password_version, so
// every token issued before the change stops matching the live counter.
func (r *pgUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) (int, error) {
	query := `UPDATE users
	          SET password_hash = $2, password_version = password_version + 1
	          WHERE id = $1
	          RETURNING password_version`
	var version int
	err := r.db.QueryRow(ctx, query, userID, passwordHash).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrUserNotFound
		}
		r.logger.Error("Failed to update password hash", zap.Error(err), zap.String("userID", userID.String()))
		return 0, fmt.Errorf("failed to update password hash: %w", err)
	}
	r.logger.Info("Password updated, version bumped", zap.String("userID", userID.String()), zap.Int("passwordVersion", version))
	return version, nil
}

// UpdateEmail changes the user's email address.
func (r *pgUserRepository) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error {
	query := `UPDATE users SET email = $2 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, userID, email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to update email", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to update email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("Email updated", zap.String("userID", userID.String()))
	return nil
}
