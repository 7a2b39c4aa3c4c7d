package routes

import (
	"ledger-core/internal/handler"
	"ledger-core/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证模块路由
func RegisterAuthRoutes(rg *gin.RouterGroup, h *handler.AuthHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	profile := rg.Group("/profile")
	profile.Use(middleware.Auth())
	{
		profile.GET("", h.Profile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/change-password", h.ChangePassword)
	}
}
