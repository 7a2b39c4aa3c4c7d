package handler

import (
	"strconv"

	"ledger-core/internal/handler/request"
	"ledger-core/internal/handler/response"
	"ledger-core/internal/middleware"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"
	"ledger-core/pkg/validator"

	"github.com/gin-gonic/gin"
)

type SupportHandler struct {
	support *service.SupportService
}

func NewSupportHandler(support *service.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

// Create 开工单
// @Summary 创建客服工单
// @Tags Support
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateTicketRequest true "工单参数"
// @Success 200 {object} response.Response
// @Router /api/v1/support/tickets [post]
func (h *SupportHandler) Create(c *gin.Context) {
	var req request.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	ticket, err := h.support.Create(c.Request.Context(), middleware.UserID(c), req.Department, req.Subject, req.Message)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, ticket)
}

// List 当前用户的工单 (内部备注不可见)
func (h *SupportHandler) List(c *gin.Context) {
	tickets, err := h.support.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, tickets)
}

// Reply 用户追加回复，closed 工单会被重新打开
func (h *SupportHandler) Reply(c *gin.Context) {
	ticketID := c.Param("ticket_id")

	var req request.TicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.support.UserReply(c.Request.Context(), middleware.UserID(c), ticketID, req.Message); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}

// ListAll 管理端: 全部工单 (含内部备注)
func (h *SupportHandler) ListAll(c *gin.Context) {
	tickets, err := h.support.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, tickets)
}

// AdminReply 管理端: 回复工单，可选内部备注和状态变更
func (h *SupportHandler) AdminReply(c *gin.Context) {
	rowID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("invalid ticket id"))
		return
	}

	var req request.AdminTicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.support.AdminReply(c.Request.Context(), middleware.UserID(c), rowID, req.Message, req.IsInternal, req.Status); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}
