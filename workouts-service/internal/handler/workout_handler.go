package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"
	"github.com/dnlksnvv/Trainova-sub001/workouts-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	logger         *zap.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, logger *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		logger:         logger.Named("WorkoutHandler"),
	}
}

func (h *WorkoutHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	group := router.Group("/workouts")
	group.Use(authMiddleware)
	{
		group.POST("", h.create)
		group.GET("", h.list)
		group.GET("/:id", h.get)
		group.PUT("/:id", h.update)
		group.DELETE("/:id", h.delete)
	}
}

type workoutRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Intensity       string    `json:"intensity"`
	PerformedAt     time.Time `json:"performed_at" binding:"required"`
}

func (h *WorkoutHandler) create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.DurationMinutes < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Detail: "Duration must be non-negative"})
		return
	}

	workout := &models.Workout{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		PerformedAt:     req.PerformedAt,
	}
	created, err := h.workoutService.CreateWorkout(c.Request.Context(), workout)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WorkoutHandler) list(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if workouts == nil {
		workouts = []*models.Workout{}
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

func (h *WorkoutHandler) get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathID(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathID(c)
	if !ok {
		return
	}

	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	workout := &models.Workout{
		ID:              workoutID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		PerformedAt:     req.PerformedAt,
	}
	updated, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, workout)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WorkoutHandler) delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString(models.ContextUserIDKey))
	if err != nil {
		zap.L().Error("Malformed user id in request context", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Invalid or expired token"})
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid workout id"})
		return uuid.Nil, false
	}
	return id, true
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrWorkoutNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodeNotFound, Detail: "Workout not found"})
	default:
		zap.L().Error("Unhandled internal error in workout handler", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Code: models.ErrCodeInternal, Detail: "An unexpected internal error occurred"})
	}
}
