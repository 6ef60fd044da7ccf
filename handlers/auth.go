package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/resumeready/backend/auth"
	"github.com/resumeready/backend/mailer"
	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/storage"
	"github.com/resumeready/backend/utils"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	users       UserStore
	jwtService  *auth.JWTService
	googleAuth  *auth.GoogleAuthService
	mailer      mailer.Mailer
	frontendURL string
	resetTTL    time.Duration
	logger      *logrus.Entry
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	users UserStore,
	jwtService *auth.JWTService,
	googleAuth *auth.GoogleAuthService,
	m mailer.Mailer,
	frontendURL string,
	resetTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		users:       users,
		jwtService:  jwtService,
		googleAuth:  googleAuth,
		mailer:      m,
		frontendURL: frontendURL,
		resetTTL:    resetTTL,
		logger:      utils.Component("auth"),
	}
}

// Signup handles user registration with email/password
// @Summary Register a new user
// @Description Register a new user with name, email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Registration request"
// @Success 200 {object} models.MessageResponse "Registration successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body or email already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Registration failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		Provider:     models.ProviderEmail,
	}

	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Email already exists",
				Code:  http.StatusBadRequest,
			})
			return
		}
		requestLog(c, h.logger).WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Registration failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	requestLog(c, h.logger).WithField("user_id", user.ID).Info("User registered")
	c.JSON(http.StatusOK, models.MessageResponse{Message: "User registered successfully!"})
}

// Login handles user login with email/password
// @Summary Login user
// @Description Login with email and password to get a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid credentials"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			requestLog(c, h.logger).WithError(err).Error("Failed to load user")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Login failed",
				Code:  http.StatusInternalServerError,
			})
			return
		}
		invalidCredentials(c)
		return
	}

	if user.PasswordHash == "" && user.Provider == models.ProviderGoogle {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "This account uses Google Sign-In. Please login with Google.",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		invalidCredentials(c)
		return
	}

	h.issueToken(c, user)
}

// GoogleLogin handles Google SSO authentication
// @Summary Login with Google
// @Description Login or register using a Google ID token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.GoogleAuthRequest true "Google auth request"
// @Success 200 {object} models.LoginResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid Google token"
// @Failure 503 {object} models.ErrorResponse "Google sign-in not configured"
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.googleAuth.Enabled() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: "Google sign-in is not configured",
			Code:  http.StatusServiceUnavailable,
		})
		return
	}

	var req models.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	googleUser, err := h.googleAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		requestLog(c, h.logger).WithError(err).Warn("Failed to verify Google token")
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Invalid Google token",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	email := normalizeEmail(googleUser.Email)
	user, err := h.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		user = &models.User{
			Name:     googleUser.Name,
			Email:    email,
			Provider: models.ProviderGoogle,
			GoogleID: googleUser.GoogleID,
		}
		if err := h.users.CreateUser(ctx, user); err != nil {
			requestLog(c, h.logger).WithError(err).Error("Failed to create Google user")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to create account",
				Code:  http.StatusInternalServerError,
			})
			return
		}
		requestLog(c, h.logger).WithField("user_id", user.ID).Info("New Google user created")
	case err != nil:
		requestLog(c, h.logger).WithError(err).Error("Failed to load user")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Login failed",
			Code:  http.StatusInternalServerError,
		})
		return
	case user.GoogleID == "":
		if err := h.users.LinkGoogleAccount(ctx, user.ID, googleUser.GoogleID); err != nil {
			requestLog(c, h.logger).WithError(err).Warn("Failed to link Google account")
		} else {
			user.GoogleID = googleUser.GoogleID
		}
	}

	h.issueToken(c, user)
}

// ForgotPassword emails a password reset link
// @Summary Request a password reset
// @Description Sends a reset link valid for one hour to the account email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} models.MessageResponse "Reset link sent"
// @Failure 400 {object} models.ErrorResponse "Email not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	email := normalizeEmail(req.Email)

	token, err := auth.NewResetToken()
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to generate reset token")
		resetFailed(c)
		return
	}

	if err := h.users.SetResetToken(ctx, email, token, time.Now().Add(h.resetTTL)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Email not found",
				Code:  http.StatusBadRequest,
			})
			return
		}
		requestLog(c, h.logger).WithError(err).Error("Failed to store reset token")
		resetFailed(c)
		return
	}

	if err := h.mailer.Send(ctx, email, "Password Reset", mailer.ResetPasswordBody(h.frontendURL, token)); err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to send reset email")
		resetFailed(c)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password reset link sent to email"})
}

// ResetPassword sets a new password using a reset token
// @Summary Reset password
// @Description Replaces the password when the reset token is valid and unexpired
// @Tags Auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body models.ResetPasswordRequest true "New password"
// @Success 200 {object} models.MessageResponse "Password reset"
// @Failure 400 {object} models.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to hash password")
		resetFailed(c)
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), c.Param("token"), hashedPassword); err != nil {
		if errors.Is(err, storage.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  http.StatusBadRequest,
			})
			return
		}
		requestLog(c, h.logger).WithError(err).Error("Failed to reset password")
		resetFailed(c)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password reset successfully"})
}

func (h *AuthHandler) issueToken(c *gin.Context, user *models.User) {
	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		requestLog(c, h.logger).WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to generate token",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	requestLog(c, h.logger).WithField("user_id", user.ID).Info("User logged in")
	c.JSON(http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

func invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: "Invalid credentials",
		Code:  http.StatusBadRequest,
	})
}

func resetFailed(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "Password reset failed",
		Code:  http.StatusInternalServerError,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
