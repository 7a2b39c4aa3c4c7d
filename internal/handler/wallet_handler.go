package handler

import (
	"ledger-core/internal/handler/request"
	"ledger-core/internal/handler/response"
	"ledger-core/internal/middleware"
	"ledger-core/internal/model"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"
	"ledger-core/pkg/validator"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	wallets  *service.WalletService
	deposits *service.DepositService
	tracking *service.TrackingService
}

func NewWalletHandler(wallets *service.WalletService, deposits *service.DepositService, tracking *service.TrackingService) *WalletHandler {
	return &WalletHandler{wallets: wallets, deposits: deposits, tracking: tracking}
}

// Balances 七币种余额
// @Summary 查询钱包余额
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/wallet [get]
func (h *WalletHandler) Balances(c *gin.Context) {
	wallet, err := h.wallets.Balances(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}

	balances := make(map[string]string, len(model.AllCoins()))
	for _, coin := range model.AllCoins() {
		balances[string(coin)] = wallet.Balance(coin).StringFixed(2)
	}
	response.Success(c, gin.H{
		"user_id":  wallet.UserID,
		"balances": balances,
	})
}

// TrackCopy 记录一次收款地址复制，并返回该币种地址
func (h *WalletHandler) TrackCopy(c *gin.Context) {
	var req request.TrackCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	coin := model.CoinType(req.CoinType)
	address, err := h.deposits.Address(coin)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}

	t := &model.WalletCopyTracking{
		UserID:        middleware.UserID(c),
		CoinType:      coin,
		WalletAddress: address,
		IPAddress:     c.ClientIP(), // X-Forwarded-For aware
		UserAgent:     c.Request.UserAgent(),
	}
	if err := h.tracking.TrackWalletCopy(c.Request.Context(), t); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, gin.H{"address": address})
}

// CopyHistory 当前用户的地址复制历史
func (h *WalletHandler) CopyHistory(c *gin.Context) {
	list, err := h.tracking.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, list)
}
