package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInsufficientBalance 余额不足时扣减被拒绝，不做截断
var ErrInsufficientBalance = errors.New("insufficient balance")

// Wallet 用户钱包 (与用户一对一)
// 七个独立的非负余额字段，均为 USD 等值
type Wallet struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint64          `gorm:"not null;uniqueIndex" json:"user_id"`
	BitcoinBalance  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"bitcoin_balance"`
	EthereumBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"ethereum_balance"`
	RippleBalance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"ripple_balance"`
	StellarBalance  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"stellar_balance"`
	USDTBalance     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"usdt_balance"`
	BNBBalance      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"bnb_balance"`
	BNBTigerBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"bnb_tiger_balance"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// balanceField 返回币种对应余额字段的指针
func (w *Wallet) balanceField(coin CoinType) *decimal.Decimal {
	switch coin {
	case CoinBitcoin:
		return &w.BitcoinBalance
	case CoinEthereum:
		return &w.EthereumBalance
	case CoinRipple:
		return &w.RippleBalance
	case CoinStellar:
		return &w.StellarBalance
	case CoinUSDT:
		return &w.USDTBalance
	case CoinBNB:
		return &w.BNBBalance
	case CoinBNBTiger:
		return &w.BNBTigerBalance
	}
	return nil
}

// BalanceColumn 币种对应的数据库列名
func BalanceColumn(coin CoinType) string {
	switch coin {
	case CoinUSDT:
		return "usdt_balance"
	case CoinBNB:
		return "bnb_balance"
	case CoinBNBTiger:
		return "bnb_tiger_balance"
	default:
		return string(coin) + "_balance"
	}
}

// Balance 查询指定币种的余额
func (w *Wallet) Balance(coin CoinType) decimal.Decimal {
	if f := w.balanceField(coin); f != nil {
		return *f
	}
	return decimal.Zero
}

// Credit 增加余额，金额必须为正，余额无上限
func (w *Wallet) Credit(coin CoinType, amount decimal.Decimal) error {
	f := w.balanceField(coin)
	if f == nil {
		return errors.New("unsupported coin type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("credit amount must be positive")
	}
	*f = f.Add(amount)
	return nil
}

// Debit 扣减余额，余额不足时拒绝且不做任何修改
func (w *Wallet) Debit(coin CoinType, amount decimal.Decimal) error {
	f := w.balanceField(coin)
	if f == nil {
		return errors.New("unsupported coin type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("debit amount must be positive")
	}
	if f.LessThan(amount) {
		return ErrInsufficientBalance
	}
	*f = f.Sub(amount)
	return nil
}
