package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dnlksnvv/Trainova-sub001/course-service/internal/service"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourseHandler struct {
	courseService service.CourseService
	logger        *zap.Logger
}

func NewCourseHandler(courseService service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger.Named("CourseHandler"),
	}
}

// RegisterRoutes mounts the catalog. Reads are open; writes sit behind the
// auth middleware plus the admin gate.
func (h *CourseHandler) RegisterRoutes(router *gin.Engine, authMiddleware, adminOnly gin.HandlerFunc) {
	router.GET("/courses", h.list)
	router.GET("/courses/:id", h.get)

	admin := router.Group("/courses")
	admin.Use(authMiddleware, adminOnly)
	{
		admin.POST("", h.create)
		admin.PUT("/:id", h.update)
		admin.DELETE("/:id", h.delete)
	}
}

type courseRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Level         string `json:"level"`
	DurationWeeks int    `json:"duration_weeks"`
}

func (h *CourseHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	courses, err := h.courseService.ListCourses(c.Request.Context(), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.DurationWeeks < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Detail: "Duration must be non-negative"})
		return
	}

	course := &models.Course{
		Title:         req.Title,
		Description:   req.Description,
		Level:         req.Level,
		DurationWeeks: req.DurationWeeks,
	}
	created, err := h.courseService.CreateCourse(c.Request.Context(), course)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CourseHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	course := &models.Course{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Level:         req.Level,
		DurationWeeks: req.DurationWeeks,
	}
	updated, err := h.courseService.UpdateCourse(c.Request.Context(), course)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CourseHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid course id"})
		return uuid.Nil, false
	}
	return id, true
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrCourseNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodeNotFound, Detail: "Course not found"})
	default:
		zap.L().Error("Unhandled internal error in course handler", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Code: models.ErrCodeInternal, Detail: "An unexpected internal error occurred"})
	}
}
