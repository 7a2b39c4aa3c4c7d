package routes

import (
	"ledger-core/internal/handler"

	"github.com/gin-gonic/gin"
)

func RegisterDepositRoutes(rg *gin.RouterGroup, h *handler.DepositHandler) {
	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.Create)
		deposits.GET("", h.List)
		deposits.GET("/address/:coin", h.Address)
	}
}
