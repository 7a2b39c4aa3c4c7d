package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ledger-core/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []string // recipient addresses
	failNext bool
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errors.New("smtp connection refused")
	}
	f.sent = append(f.sent, to)
	return nil
}

func confirmedDeposit(t *testing.T, db *gorm.DB, userID uint64) *model.DepositTransaction {
	t.Helper()
	amount := decimal.RequireFromString("25.00")
	deposit := model.DepositTransaction{
		UserID:   userID,
		CoinType: model.CoinBitcoin,
		Amount:   &amount,
		Status:   model.DepositStatusConfirmed,
	}
	require.NoError(t, db.Create(&deposit).Error)
	return &deposit
}

func TestSendDepositConfirmation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice@example.com")
	deposit := confirmedDeposit(t, db, user.ID)

	sender := &fakeSender{}
	emails := NewEmailService(db, sender, "https://vault.example.com")

	require.NoError(t, emails.SendDepositConfirmation(context.Background(), deposit.ID))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com", sender.sent[0])

	var reloaded model.DepositTransaction
	require.NoError(t, db.First(&reloaded, deposit.ID).Error)
	assert.True(t, reloaded.EmailSent)

	// 重复入队不再发信
	require.NoError(t, emails.SendDepositConfirmation(context.Background(), deposit.ID))
	assert.Len(t, sender.sent, 1)
}

func TestSendDepositConfirmationRetryAfterFailure(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "bob@example.com")
	deposit := confirmedDeposit(t, db, user.ID)

	sender := &fakeSender{failNext: true}
	emails := NewEmailService(db, sender, "https://vault.example.com")

	// 发送失败不置位，下次重试还会发
	require.Error(t, emails.SendDepositConfirmation(context.Background(), deposit.ID))
	var reloaded model.DepositTransaction
	require.NoError(t, db.First(&reloaded, deposit.ID).Error)
	assert.False(t, reloaded.EmailSent)

	require.NoError(t, emails.SendDepositConfirmation(context.Background(), deposit.ID))
	assert.Len(t, sender.sent, 1)
}

func TestSendDepositConfirmationGuards(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "carol@example.com")

	sender := &fakeSender{}
	emails := NewEmailService(db, sender, "https://vault.example.com")

	err := emails.SendDepositConfirmation(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrDepositNotFound)

	pending := model.DepositTransaction{UserID: user.ID, CoinType: model.CoinEthereum, Status: model.DepositStatusPending}
	require.NoError(t, db.Create(&pending).Error)
	assert.Error(t, emails.SendDepositConfirmation(context.Background(), pending.ID))
	assert.Empty(t, sender.sent)
}
