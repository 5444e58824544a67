package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dnlksnvv/Trainova-sub001/comments-service/internal/service"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger.Named("CommentHandler"),
	}
}

func (h *CommentHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/courses/:id/comments", h.listByCourse)
	router.POST("/comments", authMiddleware, h.create)
	router.DELETE("/comments/:id", authMiddleware, h.delete)
}

type createCommentRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Text     string    `json:"text" binding:"required"`
}

func (h *CommentHandler) create(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString(models.ContextUserIDKey))
	if err != nil {
		zap.L().Error("Malformed user id in request context", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Invalid or expired token"})
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	comment := &models.Comment{
		CourseID: req.CourseID,
		UserID:   userID,
		Text:     req.Text,
	}
	created, err := h.commentService.CreateComment(c.Request.Context(), comment)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CommentHandler) listByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid course id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	comments, err := h.commentService.ListComments(c.Request.Context(), courseID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *CommentHandler) delete(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid comment id"})
		return
	}
	requesterID, err := uuid.Parse(c.GetString(models.ContextUserIDKey))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Invalid or expired token"})
		return
	}

	err = h.commentService.DeleteComment(c.Request.Context(), commentID, requesterID, c.GetInt(models.ContextRoleIDKey))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrCommentNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodeNotFound, Detail: "Comment not found"})
	case errors.Is(err, models.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Code: models.ErrCodeForbidden, Detail: "Access denied"})
	case errors.Is(err, models.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Detail: "Comment text must be non-empty and at most 2000 characters"})
	default:
		zap.L().Error("Unhandled internal error in comment handler", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Code: models.ErrCodeInternal, Detail: "An unexpected internal error occurred"})
	}
}
