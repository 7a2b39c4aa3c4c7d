package service

import (
	"context"
	"testing"

	"ledger-core/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletCreditAndDebit(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	user := createTestUser(t, db, "alice@example.com")

	require.NoError(t, wallets.Credit(context.Background(), user.ID, model.CoinBitcoin, decimal.RequireFromString("30.00")))
	require.NoError(t, wallets.Credit(context.Background(), user.ID, model.CoinBitcoin, decimal.RequireFromString("12.50")))
	require.NoError(t, wallets.Debit(context.Background(), user.ID, model.CoinBitcoin, decimal.RequireFromString("10.00")))

	wallet, err := wallets.Balances(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "32.50", wallet.Balance(model.CoinBitcoin).StringFixed(2))

	// 其他币种不受影响
	assert.True(t, wallet.Balance(model.CoinEthereum).IsZero())
}

func TestWalletDebitInsufficient(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	user := createTestUser(t, db, "bob@example.com")

	require.NoError(t, wallets.Credit(context.Background(), user.ID, model.CoinUSDT, decimal.RequireFromString("5.00")))

	err := wallets.Debit(context.Background(), user.ID, model.CoinUSDT, decimal.RequireFromString("5.01"))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// 失败的扣款不留痕
	wallet, err := wallets.Balances(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.00", wallet.Balance(model.CoinUSDT).StringFixed(2))
}

func TestWalletRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)
	user := createTestUser(t, db, "carol@example.com")

	assert.ErrorIs(t, wallets.Credit(context.Background(), user.ID, model.CoinBitcoin, decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, wallets.Credit(context.Background(), user.ID, model.CoinBitcoin, decimal.RequireFromString("-1")), ErrInvalidAmount)
	assert.ErrorIs(t, wallets.Credit(context.Background(), user.ID, model.CoinType("doge"), decimal.RequireFromString("1")), ErrUnsupportedCoin)
}

func TestWalletCreatedOnDemand(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db)

	// 用户没有钱包行时查询返回零余额
	user := model.User{Username: "x@example.com", Email: "x@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	wallet, err := wallets.Balances(context.Background(), user.ID)
	require.NoError(t, err)
	for _, coin := range model.AllCoins() {
		assert.True(t, wallet.Balance(coin).IsZero())
	}
}
