package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	iauth "github.com/bookhaven/backend/internal/auth"
	appErrors "github.com/bookhaven/backend/pkg/errors"
	"github.com/bookhaven/backend/pkg/logger"
	"github.com/bookhaven/backend/pkg/response"
)

// AuthHandler exposes the authentication flows over HTTP.
type AuthHandler struct {
	svc *iauth.Service
	log *zap.Logger
}

// NewAuthHandler wires the auth service into gin handlers.
func NewAuthHandler(svc *iauth.Service) (*AuthHandler, error) {
	if svc == nil {
		return nil, errors.New("auth handler: service is required")
	}
	return &AuthHandler{svc: svc, log: logger.WithModule("handlers.auth")}, nil
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), iauth.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		if errors.Is(err, iauth.ErrEmailTaken) {
			response.Error(c, appErrors.ErrEmailTaken)
			return
		}
		h.fail(c, "register", err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Account created. Please verify your email.",
	})
}

// GET /api/auth/verify-email?token=...
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.NewBadRequest("token is required"))
		return
	}

	if err := h.svc.VerifyEmail(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, iauth.ErrTokenExpired), errors.Is(err, iauth.ErrTokenInvalid):
			response.Error(c, appErrors.ErrActionTokenInvalid)
		case errors.Is(err, iauth.ErrAccountNotFound):
			response.Error(c, appErrors.NewNotFound("Invalid verification token."))
		case errors.Is(err, iauth.ErrAlreadyVerified):
			response.Error(c, appErrors.ErrEmailAlreadyVerified)
		default:
			h.fail(c, "verify email", err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Email verified successfully."})
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, iauth.ErrAccountNotFound):
			response.Error(c, appErrors.NewNotFound("User not found."))
		case errors.Is(err, iauth.ErrAlreadyVerified):
			response.Error(c, appErrors.ErrEmailAlreadyVerified)
		default:
			h.fail(c, "resend verification", err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Verification email sent."})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	pair, _, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, iauth.ErrInvalidCredentials):
			response.Error(c, appErrors.ErrInvalidCredentials)
		case errors.Is(err, iauth.ErrEmailNotVerified):
			response.Error(c, appErrors.ErrEmailNotVerified)
		default:
			h.fail(c, "login", err)
		}
		return
	}

	response.Success(c, http.StatusOK, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// POST /api/auth/refresh-token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindAndValidate(c, &req) {
		return
	}

	accessToken, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, iauth.ErrRefreshRejected) {
			response.Error(c, appErrors.ErrRefreshTokenInvalid)
			return
		}
		h.fail(c, "refresh", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"accessToken": accessToken})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
		h.fail(c, "logout", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully."})
}

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, iauth.ErrAccountNotFound) {
			response.Error(c, appErrors.NewNotFound("User not found."))
			return
		}
		h.fail(c, "forgot password", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password reset email sent."})
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128"`
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, iauth.ErrTokenExpired), errors.Is(err, iauth.ErrTokenInvalid):
			response.Error(c, appErrors.ErrActionTokenInvalid)
		case errors.Is(err, iauth.ErrAccountNotFound):
			response.Error(c, appErrors.ErrActionTokenInvalid)
		default:
			h.fail(c, "reset password", err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password reset successfully."})
}

// fail logs the full error internally and surfaces a generic 500.
func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	h.log.Error(op+" failed", zap.Error(err))
	response.Error(c, appErrors.ErrInternalServer)
}
