package service

import (
	"context"
	"testing"
	"time"

	"ledger-core/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLedgerFixture(t *testing.T) (*gorm.DB, *LedgerService, uint64, map[string]uint64) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	user := createTestUser(t, db, "alice@example.com")

	accounts := map[string]uint64{}
	for code, def := range map[string][2]string{
		"1000": {"Cash", model.AccountTypeAsset},
		"2000": {"Customer Deposits", model.AccountTypeLiability},
		"4000": {"Fee Revenue", model.AccountTypeRevenue},
	} {
		a, err := ledger.CreateAccount(context.Background(), def[0], code, def[1], nil)
		require.NoError(t, err)
		accounts[code] = a.ID
	}
	return db, ledger, user.ID, accounts
}

func entryDate() time.Time {
	return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestCreateBalancedTransaction(t *testing.T) {
	_, ledger, userID, accounts := newLedgerFixture(t)

	txn, err := ledger.CreateTransaction(context.Background(), userID, "INV-001", "Deposit received", entryDate(), []EntryInput{
		{AccountID: accounts["1000"], EntryType: model.EntryDebit, Amount: decimal.RequireFromString("100.00")},
		{AccountID: accounts["2000"], EntryType: model.EntryCredit, Amount: decimal.RequireFromString("100.00")},
	})
	require.NoError(t, err)
	assert.Len(t, txn.Entries, 2)

	// 借方余额
	balance, err := ledger.AccountBalance(context.Background(), accounts["1000"])
	require.NoError(t, err)
	assert.Equal(t, "100.00", balance.StringFixed(2))

	// 贷方科目余额为负 (借减贷)
	balance, err = ledger.AccountBalance(context.Background(), accounts["2000"])
	require.NoError(t, err)
	assert.Equal(t, "-100.00", balance.StringFixed(2))
}

func TestUnbalancedTransactionRejected(t *testing.T) {
	db, ledger, userID, accounts := newLedgerFixture(t)

	_, err := ledger.CreateTransaction(context.Background(), userID, "INV-002", "bad", entryDate(), []EntryInput{
		{AccountID: accounts["1000"], EntryType: model.EntryDebit, Amount: decimal.RequireFromString("100.00")},
		{AccountID: accounts["2000"], EntryType: model.EntryCredit, Amount: decimal.RequireFromString("99.99")},
	})
	assert.ErrorIs(t, err, ErrUnbalancedEntries)

	// 拒绝时不落任何行
	var count int64
	db.Model(&model.Transaction{}).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&model.JournalEntry{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestTransactionValidation(t *testing.T) {
	_, ledger, userID, accounts := newLedgerFixture(t)

	_, err := ledger.CreateTransaction(context.Background(), userID, "INV-003", "one leg", entryDate(), []EntryInput{
		{AccountID: accounts["1000"], EntryType: model.EntryDebit, Amount: decimal.RequireFromString("1.00")},
	})
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = ledger.CreateTransaction(context.Background(), userID, "INV-004", "bad type", entryDate(), []EntryInput{
		{AccountID: accounts["1000"], EntryType: "TRANSFER", Amount: decimal.RequireFromString("1.00")},
		{AccountID: accounts["2000"], EntryType: model.EntryCredit, Amount: decimal.RequireFromString("1.00")},
	})
	assert.ErrorIs(t, err, ErrBadEntryType)

	_, err = ledger.CreateTransaction(context.Background(), userID, "INV-005", "negative", entryDate(), []EntryInput{
		{AccountID: accounts["1000"], EntryType: model.EntryDebit, Amount: decimal.RequireFromString("-1.00")},
		{AccountID: accounts["2000"], EntryType: model.EntryCredit, Amount: decimal.RequireFromString("-1.00")},
	})
	assert.ErrorIs(t, err, ErrBadEntryAmount)

	_, err = ledger.CreateTransaction(context.Background(), userID, "INV-006", "ghost account", entryDate(), []EntryInput{
		{AccountID: 9999, EntryType: model.EntryDebit, Amount: decimal.RequireFromString("1.00")},
		{AccountID: accounts["2000"], EntryType: model.EntryCredit, Amount: decimal.RequireFromString("1.00")},
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDuplicateReferenceRejected(t *testing.T) {
	_, ledger, userID, accounts := newLedgerFixture(t)

	entries := []EntryInput{
		{AccountID: accounts["1000"], EntryType: model.EntryDebit, Amount: decimal.RequireFromString("10.00")},
		{AccountID: accounts["4000"], EntryType: model.EntryCredit, Amount: decimal.RequireFromString("10.00")},
	}
	_, err := ledger.CreateTransaction(context.Background(), userID, "INV-DUP", "first", entryDate(), entries)
	require.NoError(t, err)

	_, err = ledger.CreateTransaction(context.Background(), userID, "INV-DUP", "second", entryDate(), entries)
	assert.ErrorIs(t, err, ErrReferenceTaken)
}

func TestAccountCodeUnique(t *testing.T) {
	_, ledger, _, _ := newLedgerFixture(t)

	_, err := ledger.CreateAccount(context.Background(), "Duplicate Cash", "1000", model.AccountTypeAsset, nil)
	assert.ErrorIs(t, err, ErrAccountCodeTaken)

	_, err = ledger.CreateAccount(context.Background(), "Weird", "9999", "PLASMA", nil)
	assert.ErrorIs(t, err, ErrBadAccountType)
}
