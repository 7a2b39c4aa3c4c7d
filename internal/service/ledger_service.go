package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ledger-core/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountCodeTaken  = errors.New("account code already exists")
	ErrBadAccountType    = errors.New("invalid account type")
	ErrNoEntries         = errors.New("transaction requires at least two entries")
	ErrBadEntryType      = errors.New("entry type must be DEBIT or CREDIT")
	ErrBadEntryAmount    = errors.New("entry amount must be positive")
	ErrUnbalancedEntries = errors.New("debit and credit totals do not balance")
	ErrReferenceTaken    = errors.New("transaction reference already exists")
	ErrInactiveAccount   = errors.New("account is inactive")
)

// EntryInput 创建交易时的单条分录入参
type EntryInput struct {
	AccountID uint64
	EntryType string
	Amount    decimal.Decimal
}

type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

func validAccountType(t string) bool {
	switch t {
	case model.AccountTypeAsset, model.AccountTypeLiability, model.AccountTypeEquity,
		model.AccountTypeRevenue, model.AccountTypeExpense:
		return true
	}
	return false
}

// CreateAccount 新建会计科目，code 全局唯一
func (s *LedgerService) CreateAccount(ctx context.Context, name, code, accountType string, parentID *uint64) (*model.Account, error) {
	if !validAccountType(accountType) {
		return nil, ErrBadAccountType
	}

	account := model.Account{
		Name:        name,
		Code:        code,
		AccountType: accountType,
		ParentID:    parentID,
		IsActive:    true,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Account{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAccountCodeTaken
		}
		if parentID != nil {
			var parent model.Account
			if err := tx.First(&parent, *parentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAccountNotFound
				}
				return err
			}
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListAccounts 科目列表，按 code 排序
func (s *LedgerService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.WithContext(ctx).Order("code ASC").Find(&accounts).Error
	return accounts, err
}

// CreateTransaction 创建一笔复式记账交易。
// 校验: 至少两条分录、方向合法、金额为正、借贷合计相等、所有科目存在且激活。
// reference 唯一，重复提交同一 reference 直接拒绝，保证幂等。
func (s *LedgerService) CreateTransaction(ctx context.Context, userID uint64, reference, description string, date time.Time, entries []EntryInput) (*model.Transaction, error) {
	if len(entries) < 2 {
		return nil, ErrNoEntries
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrBadEntryAmount
		}
		switch strings.ToUpper(e.EntryType) {
		case model.EntryDebit:
			debitTotal = debitTotal.Add(e.Amount)
		case model.EntryCredit:
			creditTotal = creditTotal.Add(e.Amount)
		default:
			return nil, ErrBadEntryType
		}
	}
	if !debitTotal.Equal(creditTotal) {
		return nil, ErrUnbalancedEntries
	}

	txn := model.Transaction{
		Reference:   reference,
		Description: description,
		Date:        date,
		UserID:      userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Transaction{}).Where("reference = ?", reference).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrReferenceTaken
		}

		accountIDs := make([]uint64, 0, len(entries))
		for _, e := range entries {
			accountIDs = append(accountIDs, e.AccountID)
		}
		var accounts []model.Account
		if err := tx.Where("id IN ?", accountIDs).Find(&accounts).Error; err != nil {
			return err
		}
		active := make(map[uint64]bool, len(accounts))
		for _, a := range accounts {
			active[a.ID] = a.IsActive
		}
		for _, e := range entries {
			isActive, found := active[e.AccountID]
			if !found {
				return ErrAccountNotFound
			}
			if !isActive {
				return ErrInactiveAccount
			}
		}

		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		rows := make([]model.JournalEntry, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, model.JournalEntry{
				TransactionID: txn.ID,
				AccountID:     e.AccountID,
				EntryType:     strings.ToUpper(e.EntryType),
				Amount:        e.Amount,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Preload("Entries").First(&txn, txn.ID).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactions 按日期倒序返回用户的记账交易 (含分录)
func (s *LedgerService) ListTransactions(ctx context.Context, userID uint64) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Entries").
		Order("date DESC, id DESC").
		Find(&txns).Error
	return txns, err
}

// AccountBalance 计算科目余额: 借方合计减贷方合计
func (s *LedgerService) AccountBalance(ctx context.Context, accountID uint64) (decimal.Decimal, error) {
	var account model.Account
	if err := s.db.WithContext(ctx).First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, err
	}

	type row struct {
		EntryType string
		Total     decimal.Decimal
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&model.JournalEntry{}).
		Select("entry_type, COALESCE(SUM(amount), 0) AS total").
		Where("account_id = ?", accountID).
		Group("entry_type").
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, r := range rows {
		if r.EntryType == model.EntryDebit {
			balance = balance.Add(r.Total)
		} else {
			balance = balance.Sub(r.Total)
		}
	}
	return balance, nil
}
