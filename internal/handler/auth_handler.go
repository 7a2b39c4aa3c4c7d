package handler

import (
	"ledger-core/internal/handler/request"
	"ledger-core/internal/handler/response"
	"ledger-core/internal/middleware"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"
	"ledger-core/pkg/validator"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register 用户注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "注册参数"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}

	response.Success(c, gin.H{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
	})
}

// Login 登录并签发 Token
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "登录参数"
// @Success 200 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}

	response.Success(c, gin.H{
		"token":    token,
		"user_id":  user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
	})
}

// Profile 当前用户资料
// @Summary 查询个人资料
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新显示名
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Name); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}

// ChangePassword 修改密码 (需旧密码)
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}

// ForgotPassword 发送重置邮件。无论邮箱是否存在都返回成功
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.users.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, gin.H{"message": "If the email exists, a reset link has been sent."})
}

// ResetPassword 用重置 Token 设置新密码
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}
