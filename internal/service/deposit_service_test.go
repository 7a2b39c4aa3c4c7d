package service

import (
	"context"
	"sync"
	"testing"

	"ledger-core/internal/model"
	"ledger-core/pkg/cache"
	"ledger-core/pkg/monitor"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeDispatcher 记录入队的邮件任务
type fakeDispatcher struct {
	mu       sync.Mutex
	deposits []uint64
	fail     bool
}

func (f *fakeDispatcher) DispatchDepositConfirmation(ctx context.Context, depositID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return assert.AnError
	}
	f.deposits = append(f.deposits, depositID)
	return nil
}

func testAddresses() map[model.CoinType]string {
	addrs := make(map[model.CoinType]string)
	for _, coin := range model.AllCoins() {
		addrs[coin] = "addr-" + string(coin)
	}
	return addrs
}

func newDepositFixture(t *testing.T) (*gorm.DB, *DepositService, *WalletService, *fakeDispatcher) {
	db := newTestDB(t)
	notifs := NewNotificationService(db, cache.NewMemoryCache(0, 0))
	wallets := NewWalletService(db)
	dispatcher := &fakeDispatcher{}
	deposits := NewDepositService(db, wallets, notifs, dispatcher, testAddresses())
	return db, deposits, wallets, dispatcher
}

func TestDepositConfirmCreditsWallet(t *testing.T) {
	db, deposits, wallets, dispatcher := newDepositFixture(t)
	user := createTestUser(t, db, "alice@example.com")
	admin := createTestUser(t, db, "admin@example.com")

	amount := decimal.RequireFromString("100.00")
	dep, err := deposits.Create(context.Background(), user.ID, model.CoinBitcoin, &amount)
	require.NoError(t, err)
	assert.Equal(t, model.DepositStatusPending, dep.Status)
	assert.Equal(t, "addr-bitcoin", dep.WalletAddress)

	require.NoError(t, deposits.Confirm(context.Background(), dep.ID, admin.ID))

	// 入账金额与充值金额一致
	wallet, err := wallets.Balances(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance(model.CoinBitcoin).Equal(amount),
		"balance = %s, want %s", wallet.Balance(model.CoinBitcoin), amount)

	// 状态和审计字段
	var reloaded model.DepositTransaction
	require.NoError(t, db.First(&reloaded, dep.ID).Error)
	assert.Equal(t, model.DepositStatusConfirmed, reloaded.Status)
	require.NotNil(t, reloaded.ProcessedBy)
	assert.Equal(t, admin.ID, *reloaded.ProcessedBy)
	assert.NotNil(t, reloaded.ConfirmedAt)

	// deposit_confirmed 通知
	var n model.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, model.NotifDepositConfirmed).First(&n).Error)
	assert.Contains(t, n.Title, "Deposit #")

	// Outbox 事件在同一事务内落库
	var outbox int64
	db.Model(&model.OutboxMessage{}).Where("topic = ?", "ledger_events_deposit").Count(&outbox)
	assert.EqualValues(t, 1, outbox)

	// 确认邮件已入队
	assert.Equal(t, []uint64{dep.ID}, dispatcher.deposits)
}

func TestDepositConfirmIsIdempotent(t *testing.T) {
	db, deposits, wallets, _ := newDepositFixture(t)
	user := createTestUser(t, db, "bob@example.com")
	admin := createTestUser(t, db, "admin@example.com")

	amount := decimal.RequireFromString("50.00")
	dep, err := deposits.Create(context.Background(), user.ID, model.CoinEthereum, &amount)
	require.NoError(t, err)

	counterBefore := testutil.ToFloat64(
		monitor.Business.DepositConfirmedTotal.WithLabelValues(string(model.CoinEthereum)))

	// 重复确认不会二次入账、不会重复通知
	require.NoError(t, deposits.Confirm(context.Background(), dep.ID, admin.ID))
	require.NoError(t, deposits.Confirm(context.Background(), dep.ID, admin.ID))
	require.NoError(t, deposits.Confirm(context.Background(), dep.ID, admin.ID))

	// 确认计数只在第一次确认时累加
	counterAfter := testutil.ToFloat64(
		monitor.Business.DepositConfirmedTotal.WithLabelValues(string(model.CoinEthereum)))
	assert.Equal(t, 1.0, counterAfter-counterBefore)

	wallet, err := wallets.Balances(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance(model.CoinEthereum).Equal(amount))

	var notifCount int64
	db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, model.NotifDepositConfirmed).
		Count(&notifCount)
	assert.EqualValues(t, 1, notifCount)

	// confirmed_at 只写入一次
	var first, second model.DepositTransaction
	require.NoError(t, db.First(&first, dep.ID).Error)
	require.NoError(t, deposits.Confirm(context.Background(), dep.ID, admin.ID))
	require.NoError(t, db.First(&second, dep.ID).Error)
	assert.Equal(t, first.ConfirmedAt.Unix(), second.ConfirmedAt.Unix())
}

func TestDepositConfirmNilAmount(t *testing.T) {
	db, deposits, wallets, _ := newDepositFixture(t)
	user := createTestUser(t, db, "carol@example.com")
	admin := createTestUser(t, db, "admin@example.com")

	dep, err := deposits.Create(context.Background(), user.ID, model.CoinRipple, nil)
	require.NoError(t, err)

	// 金额为空: 确认成功但不入账
	require.NoError(t, deposits.Confirm(context.Background(), dep.ID, admin.ID))

	wallet, err := wallets.Balances(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance(model.CoinRipple).IsZero())

	var n model.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, model.NotifDepositConfirmed).First(&n).Error)
}

func TestDepositRejectOnlyPending(t *testing.T) {
	db, deposits, _, _ := newDepositFixture(t)
	user := createTestUser(t, db, "dave@example.com")
	admin := createTestUser(t, db, "admin@example.com")

	amount := decimal.RequireFromString("10.00")
	dep, err := deposits.Create(context.Background(), user.ID, model.CoinUSDT, &amount)
	require.NoError(t, err)

	require.NoError(t, deposits.Reject(context.Background(), dep.ID, admin.ID, "no funds on chain"))

	var reloaded model.DepositTransaction
	require.NoError(t, db.First(&reloaded, dep.ID).Error)
	assert.Equal(t, model.DepositStatusRejected, reloaded.Status)
	assert.Equal(t, "no funds on chain", reloaded.AdminNotes)

	// rejected 不可再确认，也不可再驳回
	assert.ErrorIs(t, deposits.Confirm(context.Background(), dep.ID, admin.ID), ErrDepositRejected)
	assert.ErrorIs(t, deposits.Reject(context.Background(), dep.ID, admin.ID, "again"), ErrDepositNotPending)
}

func TestDepositConfirmNotFound(t *testing.T) {
	db, deposits, _, _ := newDepositFixture(t)
	admin := createTestUser(t, db, "admin@example.com")
	assert.ErrorIs(t, deposits.Confirm(context.Background(), 9999, admin.ID), ErrDepositNotFound)
}

func TestDepositUnsupportedCoin(t *testing.T) {
	db, deposits, _, _ := newDepositFixture(t)
	user := createTestUser(t, db, "erin@example.com")

	_, err := deposits.Create(context.Background(), user.ID, model.CoinType("dogecoin"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedCoin)

	_, err = deposits.Address(model.CoinType("dogecoin"))
	assert.ErrorIs(t, err, ErrUnsupportedCoin)
}

func TestResendPendingEmails(t *testing.T) {
	db, deposits, _, dispatcher := newDepositFixture(t)
	user := createTestUser(t, db, "frank@example.com")
	admin := createTestUser(t, db, "admin@example.com")

	amount := decimal.RequireFromString("5.00")
	dep, err := deposits.Create(context.Background(), user.ID, model.CoinBNB, &amount)
	require.NoError(t, err)
	require.NoError(t, deposits.Confirm(context.Background(), dep.ID, admin.ID))

	// email_sent 仍为 false，重发接口会再次入队
	dispatcher.deposits = nil
	queued, err := deposits.ResendPendingEmails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, queued)
	assert.Equal(t, []uint64{dep.ID}, dispatcher.deposits)

	// email_sent 置位后不再重发
	require.NoError(t, db.Model(&model.DepositTransaction{}).Where("id = ?", dep.ID).Update("email_sent", true).Error)
	queued, err = deposits.ResendPendingEmails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, queued)
}
