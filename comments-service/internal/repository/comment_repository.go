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

// CommentRepository persists course comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]*models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ CommentRepository = (*pgCommentRepository)(nil)

type pgCommentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPgCommentRepository(db *pgxpool.Pool, logger *zap.Logger) CommentRepository {
	return &pgCommentRepository{
		db:     db,
		logger: logger.Named("PgCommentRepo"),
	}
}

func (r *pgCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (course_id, user_id, text)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, comment.CourseID, comment.UserID, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create comment", zap.Error(err), zap.String("courseID", comment.CourseID.String()))
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `SELECT id, course_id, user_id, text, created_at FROM comments WHERE id = $1`
	comment := &models.Comment{}
	err := pgxscan.Get(ctx, r.db, comment, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCommentNotFound
		}
		r.logger.Error("Failed to get comment", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (r *pgCommentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	query := `SELECT id, course_id, user_id, text, created_at
	          FROM comments WHERE course_id = $1
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`
	var comments []*models.Comment
	err := pgxscan.Select(ctx, r.db, &comments, query, courseID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list comments", zap.Error(err), zap.String("courseID", courseID.String()))
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete comment", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCommentNotFound
	}
	return nil
}
