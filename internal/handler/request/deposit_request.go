package request

type CreateDepositRequest struct {
	CoinType string `json:"coin_type" binding:"required"`
	// 金额可空: 用户可先登记充值意向，由管理员核对链上金额后补录
	Amount *string `json:"amount"`
}

type RejectDepositRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}
