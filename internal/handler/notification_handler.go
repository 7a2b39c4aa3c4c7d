package handler

import (
	"strconv"

	"ledger-core/internal/handler/response"
	"ledger-core/internal/middleware"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifs *service.NotificationService
}

func NewNotificationHandler(notifs *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifs: notifs}
}

// List 通知列表，最新在前
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.notifs.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, list)
}

// UnreadCount 未读数 (带缓存)
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifs.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, gin.H{"unread": count})
}

// MarkRead 标记已读，重复调用幂等
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("invalid notification id"))
		return
	}

	if err := h.notifs.MarkRead(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}

// MarkAllRead 全部已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notifs.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, gin.H{"updated": updated})
}
