package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 账户类型 (Chart of Accounts)
const (
	AccountTypeAsset     = "ASSET"
	AccountTypeLiability = "LIABILITY"
	AccountTypeEquity    = "EQUITY"
	AccountTypeRevenue   = "REVENUE"
	AccountTypeExpense   = "EXPENSE"
)

// 记账方向
const (
	EntryDebit  = "DEBIT"
	EntryCredit = "CREDIT"
)

// Account 会计科目表
type Account struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Code        string    `gorm:"type:varchar(20);not null;unique" json:"code"`
	AccountType string    `gorm:"type:varchar(20);not null" json:"account_type"`
	ParentID    *uint64   `gorm:"index" json:"parent_id,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Transaction 复式记账交易表，每笔交易拥有一组分录
type Transaction struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference   string         `gorm:"type:varchar(50);not null;unique" json:"reference"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	UserID      uint64         `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Entries     []JournalEntry `gorm:"foreignKey:TransactionID" json:"entries,omitempty"`
}

// JournalEntry 复式记账分录。不变式: 每笔交易 DEBIT 合计 == CREDIT 合计
type JournalEntry struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID uint64          `gorm:"not null;index" json:"transaction_id"`
	AccountID     uint64          `gorm:"not null;index" json:"account_id"`
	EntryType     string          `gorm:"type:varchar(10);not null" json:"entry_type"` // DEBIT, CREDIT
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
}

func (Account) TableName() string {
	return "accounts"
}

func (Transaction) TableName() string {
	return "transactions"
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
