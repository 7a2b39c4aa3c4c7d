package routes

import (
	"ledger-core/internal/handler"

	"github.com/gin-gonic/gin"
)

func RegisterNotificationRoutes(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	notifs := rg.Group("/notifications")
	{
		notifs.GET("", h.List)
		notifs.GET("/unread-count", h.UnreadCount)
		notifs.POST("/:id/read", h.MarkRead)
		notifs.POST("/read-all", h.MarkAllRead)
	}
}
