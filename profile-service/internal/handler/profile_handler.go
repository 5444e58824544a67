package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/profile-service/internal/service"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger.Named("ProfileHandler"),
	}
}

// RegisterRoutes mounts the profile endpoints. authMiddleware is the shared
// bearer-token middleware built from the common verifier.
func (h *ProfileHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/profile", authMiddleware, h.getOwnProfile)
	router.PUT("/profile", authMiddleware, h.updateOwnProfile)
	router.GET("/profiles/:user_id", authMiddleware, h.getProfileByID)
}

type updateProfileRequest struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    string     `json:"gender"`
	HeightCm  float64    `json:"height_cm"`
	WeightKg  float64    `json:"weight_kg"`
	Goal      string     `json:"goal"`
}

func (h *ProfileHandler) getOwnProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) updateOwnProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}
	if req.HeightCm < 0 || req.WeightKg < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Detail: "Height and weight must be non-negative"})
		return
	}

	profile := &models.Profile{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
		HeightCm:  req.HeightCm,
		WeightKg:  req.WeightKg,
		Goal:      req.Goal,
	}
	updated, err := h.profileService.UpdateProfile(c.Request.Context(), profile)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProfileHandler) getProfileByID(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid user id"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), targetID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString(models.ContextUserIDKey))
	if err != nil {
		zap.L().Error("Malformed user id in request context", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Detail: "Invalid or expired token"})
		return uuid.Nil, false
	}
	return userID, true
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrProfileNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodeNotFound, Detail: "Profile not found"})
	default:
		zap.L().Error("Unhandled internal error in profile handler", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Code: models.ErrCodeInternal, Detail: "An unexpected internal error occurred"})
	}
}
