package handler

import (
	"strconv"

	"ledger-core/internal/handler/request"
	"ledger-core/internal/handler/response"
	"ledger-core/internal/middleware"
	"ledger-core/internal/model"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"
	"ledger-core/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DepositHandler struct {
	deposits *service.DepositService
}

func NewDepositHandler(deposits *service.DepositService) *DepositHandler {
	return &DepositHandler{deposits: deposits}
}

// Address 查询币种收款地址
// @Summary 查询充值地址
// @Tags Deposit
// @Produce json
// @Security BearerAuth
// @Param coin path string true "币种"
// @Success 200 {object} response.Response
// @Router /api/v1/deposits/address/{coin} [get]
func (h *DepositHandler) Address(c *gin.Context) {
	coin := model.CoinType(c.Param("coin"))
	address, err := h.deposits.Address(coin)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, gin.H{
		"coin_type": coin,
		"display":   coin.Display(),
		"address":   address,
	})
}

// Create 登记一笔充值，等待管理员确认
// @Summary 创建充值记录
// @Tags Deposit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateDepositRequest true "充值参数"
// @Success 200 {object} response.Response
// @Router /api/v1/deposits [post]
func (h *DepositHandler) Create(c *gin.Context) {
	var req request.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	var amount *decimal.Decimal
	if req.Amount != nil && *req.Amount != "" {
		d, err := decimal.NewFromString(*req.Amount)
		if err != nil || d.LessThanOrEqual(decimal.Zero) {
			response.Error(c, errno.ErrInvalidAmount)
			return
		}
		amount = &d
	}

	deposit, err := h.deposits.Create(c.Request.Context(), middleware.UserID(c), model.CoinType(req.CoinType), amount)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, deposit)
}

// List 当前用户的充值记录
func (h *DepositHandler) List(c *gin.Context) {
	deposits, err := h.deposits.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, deposits)
}

// ListAll 管理端: 充值列表，?status= 过滤
func (h *DepositHandler) ListAll(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != model.DepositStatusPending &&
		status != model.DepositStatusConfirmed && status != model.DepositStatusRejected {
		response.Error(c, errno.ErrBind.WithMessage("invalid status filter"))
		return
	}

	deposits, err := h.deposits.ListAll(c.Request.Context(), status)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, deposits)
}

// Confirm 管理端: 确认充值 (幂等，重复确认不会二次入账)
// @Summary 确认充值
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deposit ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/deposits/{id}/confirm [post]
func (h *DepositHandler) Confirm(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("invalid deposit id"))
		return
	}

	if err := h.deposits.Confirm(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}

// Reject 管理端: 驳回充值
func (h *DepositHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("invalid deposit id"))
		return
	}

	var req request.RejectDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.deposits.Reject(c.Request.Context(), id, middleware.UserID(c), req.Notes); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}

// ResendEmails 管理端: 重发未送达的确认邮件
func (h *DepositHandler) ResendEmails(c *gin.Context) {
	queued, err := h.deposits.ResendPendingEmails(c.Request.Context())
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, gin.H{"queued": queued})
}
