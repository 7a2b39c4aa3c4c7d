package routes

import (
	"ledger-core/internal/handler"

	"github.com/gin-gonic/gin"
)

func RegisterKYCRoutes(rg *gin.RouterGroup, h *handler.KYCHandler) {
	kyc := rg.Group("/kyc")
	{
		kyc.GET("/status", h.Status)
		kyc.POST("/submit", h.Submit)
	}
}
