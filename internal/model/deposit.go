package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 充值状态
const (
	DepositStatusPending   = "pending"
	DepositStatusConfirmed = "confirmed"
	DepositStatusRejected  = "rejected"
)

// DepositTransaction 充值记录表
// 记录的是用户"声称已向共享地址打款"，链上不做校验，确认是管理员的人工信任行为。
// 不变式: EmailSent 只能在 status = confirmed 之后变为 true; ConfirmedAt 至多写入一次
type DepositTransaction struct {
	ID            uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64           `gorm:"not null;index" json:"user_id"`
	CoinType      CoinType         `gorm:"type:varchar(20);not null" json:"coin_type"`
	Amount        *decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount,omitempty"` // USD 等值，可为空
	WalletAddress string           `gorm:"type:varchar(255);not null" json:"wallet_address"`
	Status        string           `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AdminNotes    string           `gorm:"type:text" json:"admin_notes"`
	EmailSent     bool             `gorm:"not null;default:false" json:"email_sent"`
	CreatedAt     time.Time        `json:"created_at"`
	ConfirmedAt   *time.Time       `json:"confirmed_at,omitempty"`
	ProcessedBy   *uint64          `json:"processed_by,omitempty"`
}

func (DepositTransaction) TableName() string {
	return "deposit_transactions"
}
