package routes

import (
	"ledger-core/internal/handler"

	"github.com/gin-gonic/gin"
)

func RegisterSupportRoutes(rg *gin.RouterGroup, h *handler.SupportHandler) {
	support := rg.Group("/support/tickets")
	{
		support.POST("", h.Create)
		support.GET("", h.List)
		support.POST("/:ticket_id/replies", h.Reply)
	}
}
