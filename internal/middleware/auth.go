package middleware

import (
	"strings"

	"ledger-core/internal/handler/response"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

// gin context keys
const (
	CtxUserID  = "uid"
	CtxIsAdmin = "is_admin"
)

// Auth 解析 Bearer Token 并把 uid / is_admin 写入 context
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, errno.ErrTokenInvalid)
			c.Abort()
			return
		}

		userID, isAdmin, err := service.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, errno.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxIsAdmin, isAdmin)
		c.Next()
	}
}

// AdminOnly 要求已登录且 is_admin，放在 Auth 之后
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			response.Error(c, errno.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID 从 context 取出当前登录用户 ID
func UserID(c *gin.Context) uint64 {
	v, _ := c.Get(CtxUserID)
	id, _ := v.(uint64)
	return id
}
