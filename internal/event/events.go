package event

// Topic 常量
const (
	TopicDepositEvents = "ledger_events_deposit"
)

// DepositConfirmedEvent 充值确认事件
// Topic: ledger_events_deposit
type DepositConfirmedEvent struct {
	DepositID   uint64 `json:"deposit_id"`
	UserID      uint64 `json:"user_id"`
	CoinType    string `json:"coin_type"`
	Amount      string `json:"amount"` // Decimal string, 可为空
	ConfirmedBy uint64 `json:"confirmed_by"`
	ConfirmedAt string `json:"confirmed_at"`
}

// DepositRejectedEvent 充值驳回事件
// Topic: ledger_events_deposit
type DepositRejectedEvent struct {
	DepositID  uint64 `json:"deposit_id"`
	UserID     uint64 `json:"user_id"`
	CoinType   string `json:"coin_type"`
	RejectedBy uint64 `json:"rejected_by"`
}
