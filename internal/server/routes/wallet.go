package routes

import (
	"ledger-core/internal/handler"

	"github.com/gin-gonic/gin"
)

func RegisterWalletRoutes(rg *gin.RouterGroup, h *handler.WalletHandler) {
	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.Balances)
		wallet.POST("/track-copy", h.TrackCopy)
		wallet.GET("/copy-history", h.CopyHistory)
	}
}
