package handler

import (
	"net/http"

	"github.com/dnlksnvv/Trainova-sub001/motivation-service/internal/service"
	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type MotivationHandler struct {
	quotes *service.QuoteService
	logger zerolog.Logger
}

func NewMotivationHandler(quotes *service.QuoteService, logger zerolog.Logger) *MotivationHandler {
	return &MotivationHandler{
		quotes: quotes,
		logger: logger.With().Str("component", "MotivationHandler").Logger(),
	}
}

func (h *MotivationHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/motivation/daily", authMiddleware, h.daily)
}

func (h *MotivationHandler) daily(c *gin.Context) {
	quote, err := h.quotes.DailyQuote(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to serve daily quote")
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Code: models.ErrCodeInternal, Detail: "An unexpected internal error occurred"})
		return
	}
	c.JSON(http.StatusOK, quote)
}
