package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhaven/backend/internal/handlers"
)

func registerAuthRoutes(engine *gin.Engine, requireAuth gin.HandlerFunc, h *handlers.AuthHandler) {
	auth := engine.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", h.ResendVerification)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/refresh-token", h.Refresh)
	}

	auth.POST("/logout", requireAuth, h.Logout)
}
