package handler

import (
	"fmt"
	"net/http"
	"unicode"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/gin-gonic/gin"
)

// validatePassword enforces the password policy shared by register and
// password-reset confirm.
func validatePassword(password string) string {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Sprintf("Password length must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}
	var (
		hasLetter bool
		hasDigit  bool
	)
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
		if hasLetter && hasDigit {
			return ""
		}
	}
	return "Password must contain at least one letter and one digit"
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request data: " + err.Error()})
		return
	}
	if msg := validatePassword(req.Password); msg != "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Detail: msg})
		return
	}

	user, tokens, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"id":            user.ID.String(),
		"email":         user.Email,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"token_type":    tokens.TokenType,
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginFailuresTotal.Inc()
		handleServiceError(c, err)
		return
	}

	loginsTotal.Inc()
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		tokenVerificationsTotal.WithLabelValues("refresh", "failure").Inc()
		handleServiceError(c, err)
		return
	}

	refreshesTotal.Inc()
	tokenVerificationsTotal.WithLabelValues("refresh", "success").Inc()

	c.JSON(http.StatusOK, tokens)
}

// logout revokes the caller's access token (taken from the middleware) and,
// when supplied, the refresh token from the body. It always returns 200 for
// an authenticated caller.
func (h *AuthHandler) logout(c *gin.Context) {
	accessToken := c.GetString(contextAccessTokenKey)

	// The body is optional: a logout without refresh_token still revokes
	// the access token.
	var req logoutRequest
	_ = c.ShouldBindJSON(&req)

	h.authService.Logout(c.Request.Context(), accessToken, req.RefreshToken)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *AuthHandler) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString(models.ContextUserIDKey),
		"email":   c.GetString(models.ContextEmailKey),
		"role_id": c.GetInt(models.ContextRoleIDKey),
	})
}

// requestPasswordReset answers 200 regardless of whether the email is
// registered, so the endpoint cannot be used to probe for accounts.
func (h *AuthHandler) requestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		handleServiceError(c, err)
		return
	}

	passwordResetsRequestedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset link has been sent"})
}

func (h *AuthHandler) confirmPasswordReset(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}
	if msg := validatePassword(req.NewPassword); msg != "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeValidation, Detail: msg})
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}

	passwordResetsCompletedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

func (h *AuthHandler) requestEmailChange(c *gin.Context) {
	var req emailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	userID := c.GetString(models.ContextUserIDKey)
	if err := h.authService.RequestEmailChange(c.Request.Context(), userID, req.NewEmail); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confirmation link sent to the new address"})
}

func (h *AuthHandler) confirmEmailChange(c *gin.Context) {
	var req emailChangeConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Detail: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.authService.ConfirmEmailChange(c.Request.Context(), req.Token); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email has been updated"})
}
