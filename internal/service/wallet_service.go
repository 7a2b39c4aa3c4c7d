package service

import (
	"context"
	"errors"

	"ledger-core/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be a positive decimal")
	ErrUnsupportedCoin     = errors.New("unsupported coin type")
)

type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// GetOrCreateTx 在事务内查询或创建用户钱包
func (s *WalletService) GetOrCreateTx(tx *gorm.DB, userID uint64) (*model.Wallet, error) {
	var wallet model.Wallet
	err := lockForUpdate(tx).Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = model.Wallet{UserID: userID}
		if err := tx.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Balances 查询用户全部币种余额 (钱包不存在则创建)
func (s *WalletService) Balances(ctx context.Context, userID uint64) (*model.Wallet, error) {
	var wallet *model.Wallet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := s.GetOrCreateTx(tx, userID)
		if err != nil {
			return err
		}
		wallet = w
		return nil
	})
	return wallet, err
}

// CreditTx 在事务内为指定币种增加余额
// 金额必须为正，余额无上限
func (s *WalletService) CreditTx(tx *gorm.DB, userID uint64, coin model.CoinType, amount decimal.Decimal) error {
	if !coin.Valid() {
		return ErrUnsupportedCoin
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	wallet, err := s.GetOrCreateTx(tx, userID)
	if err != nil {
		return err
	}
	if err := wallet.Credit(coin, amount); err != nil {
		return err
	}
	return tx.Model(wallet).Update(model.BalanceColumn(coin), wallet.Balance(coin)).Error
}

// Credit 为指定币种增加余额 (独立事务)
func (s *WalletService) Credit(ctx context.Context, userID uint64, coin model.CoinType, amount decimal.Decimal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.CreditTx(tx, userID, coin, amount)
	})
}

// Debit 扣减余额。余额不足时返回 ErrInsufficientBalance，不做任何修改
func (s *WalletService) Debit(ctx context.Context, userID uint64, coin model.CoinType, amount decimal.Decimal) error {
	if !coin.Valid() {
		return ErrUnsupportedCoin
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := s.GetOrCreateTx(tx, userID)
		if err != nil {
			return err
		}
		if err := wallet.Debit(coin, amount); err != nil {
			if errors.Is(err, model.ErrInsufficientBalance) {
				return ErrInsufficientBalance
			}
			return err
		}
		return tx.Model(wallet).Update(model.BalanceColumn(coin), wallet.Balance(coin)).Error
	})
}
