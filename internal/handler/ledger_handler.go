package handler

import (
	"strconv"
	"time"

	"ledger-core/internal/handler/request"
	"ledger-core/internal/handler/response"
	"ledger-core/internal/middleware"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"
	"ledger-core/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	ledger *service.LedgerService
}

func NewLedgerHandler(ledger *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// CreateAccount 管理端: 新建会计科目
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	var req request.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	account, err := h.ledger.CreateAccount(c.Request.Context(), req.Name, req.Code, req.AccountType, req.ParentID)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, account)
}

// ListAccounts 科目表
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.ledger.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, accounts)
}

// AccountBalance 科目余额 (借方合计 - 贷方合计)
func (h *LedgerHandler) AccountBalance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("invalid account id"))
		return
	}

	balance, err := h.ledger.AccountBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, gin.H{"account_id": id, "balance": balance.StringFixed(2)})
}

// CreateTransaction 创建复式记账交易，借贷必须平衡
// @Summary 创建记账交易
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateTransactionRequest true "交易参数"
// @Success 200 {object} response.Response
// @Router /api/v1/ledger/transactions [post]
func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("date must be YYYY-MM-DD"))
		return
	}

	entries := make([]service.EntryInput, 0, len(req.Entries))
	for _, e := range req.Entries {
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			response.Error(c, errno.ErrInvalidAmount)
			return
		}
		entries = append(entries, service.EntryInput{
			AccountID: e.AccountID,
			EntryType: e.EntryType,
			Amount:    amount,
		})
	}

	txn, err := h.ledger.CreateTransaction(c.Request.Context(), middleware.UserID(c), req.Reference, req.Description, date, entries)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, txn)
}

// ListTransactions 当前用户的记账交易
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	txns, err := h.ledger.ListTransactions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, txns)
}
