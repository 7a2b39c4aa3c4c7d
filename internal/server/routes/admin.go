package routes

import (
	"ledger-core/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 管理端路由，调用方需先挂 Auth + AdminOnly 中间件
func RegisterAdminRoutes(rg *gin.RouterGroup, deposits *handler.DepositHandler, kyc *handler.KYCHandler, support *handler.SupportHandler, ledger *handler.LedgerHandler) {
	rg.GET("/deposits", deposits.ListAll)
	rg.POST("/deposits/:id/confirm", deposits.Confirm)
	rg.POST("/deposits/:id/reject", deposits.Reject)
	rg.POST("/deposits/resend-emails", deposits.ResendEmails)

	rg.GET("/kyc", kyc.List)
	rg.POST("/kyc/:id/review", kyc.Review)

	rg.GET("/support/tickets", support.ListAll)
	rg.POST("/support/tickets/:id/replies", support.AdminReply)

	rg.POST("/ledger/accounts", ledger.CreateAccount)
}
