package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ProfileRepository persists fitness profiles.
type ProfileRepository interface {
	CreateEmpty(ctx context.Context, userID uuid.UUID) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

var _ ProfileRepository = (*pgProfileRepository)(nil)

type pgProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPgProfileRepository(db *pgxpool.Pool, logger *zap.Logger) ProfileRepository {
	return &pgProfileRepository{
		db:     db,
		logger: logger.Named("PgProfileRepo"),
	}
}

// CreateEmpty inserts a blank profile row for a freshly registered user.
// Re-delivered registration events hit the conflict clause and are no-ops.
func (r *pgProfileRepository) CreateEmpty(ctx context.Context, userID uuid.UUID) error {
	query := `INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to create empty profile", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to create empty profile: %w", err)
	}
	return nil
}

func (r *pgProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT user_id, first_name, last_name, birth_date, gender, height_cm, weight_kg, goal, updated_at
	          FROM profiles WHERE user_id = $1`
	profile := &models.Profile{}
	err := pgxscan.Get(ctx, r.db, profile, query, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		r.logger.Error("Failed to get profile", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (r *pgProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `UPDATE profiles
	          SET first_name = $2, last_name = $3, birth_date = $4, gender = $5,
	              height_cm = $6, weight_kg = $7, goal = $8, updated_at = now()
	          WHERE user_id = $1
	          RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.FirstName, profile.LastName, profile.BirthDate,
		profile.Gender, profile.HeightCm, profile.WeightKg, profile.Goal).
		Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrProfileNotFound
		}
		r.logger.Error("Failed to update profile", zap.Error(err), zap.String("userID", profile.UserID.String()))
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
