package routes

import (
	"ledger-core/internal/handler"

	"github.com/gin-gonic/gin"
)

func RegisterLedgerRoutes(rg *gin.RouterGroup, h *handler.LedgerHandler) {
	ledger := rg.Group("/ledger")
	{
		ledger.GET("/accounts", h.ListAccounts)
		ledger.GET("/accounts/:id/balance", h.AccountBalance)
		ledger.POST("/transactions", h.CreateTransaction)
		ledger.GET("/transactions", h.ListTransactions)
	}
}
