package service

import (
	"context"
	"strings"

	"github.com/dnlksnvv/Trainova-sub001/comments-service/internal/repository"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	maxCommentLen   = 2000
)

// CommentService handles course comments. Deletion is allowed to the author
// and to admins.
type CommentService interface {
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListComments(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, requesterID uuid.UUID, requesterRole int) error
}

var _ CommentService = (*commentServiceImpl)(nil)

type commentServiceImpl struct {
	repo   repository.CommentRepository
	logger *zap.Logger
}

func NewCommentService(repo repository.CommentRepository, logger *zap.Logger) CommentService {
	return &commentServiceImpl{
		repo:   repo,
		logger: logger.Named("CommentService"),
	}
}

func (s *commentServiceImpl) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	comment.Text = strings.TrimSpace(comment.Text)
	if comment.Text == "" || len(comment.Text) > maxCommentLen {
		return nil, models.ErrInvalidInput
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info("Comment created",
		zap.String("id", comment.ID.String()),
		zap.String("courseID", comment.CourseID.String()),
		zap.String("userID", comment.UserID.String()))
	return comment, nil
}

func (s *commentServiceImpl) ListComments(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByCourse(ctx, courseID, limit, offset)
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, requesterID uuid.UUID, requesterRole int) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != requesterID && !models.IsAdmin(requesterRole) {
		return models.ErrForbidden
	}
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return err
	}
	s.logger.Info("Comment deleted", zap.String("id", commentID.String()), zap.String("requesterID", requesterID.String()))
	return nil
}
