package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"ledger-core/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlertMailer struct {
	mu     sync.Mutex
	bodies []string
}

func (f *fakeAlertMailer) DispatchAdminAlert(_ context.Context, _, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, body)
	return nil
}

func TestTrackWalletCopyAlertsAdmin(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice@example.com")
	alerts := &fakeAlertMailer{}
	tracking := NewTrackingService(db, alerts)

	err := tracking.TrackWalletCopy(context.Background(), &model.WalletCopyTracking{
		UserID:        user.ID,
		CoinType:      model.CoinBitcoin,
		WalletAddress: "bc1qexampleaddress",
		IPAddress:     "203.0.113.7",
		UserAgent:     "Mozilla/5.0",
	})
	require.NoError(t, err)

	require.Len(t, alerts.bodies, 1)
	assert.True(t, strings.Contains(alerts.bodies[0], "alice@example.com"))
	assert.True(t, strings.Contains(alerts.bodies[0], "bc1qexampleaddress"))

	list, err := tracking.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.CoinBitcoin, list[0].CoinType)
}

func TestTrackWalletCopyRejectsUnknownCoin(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "bob@example.com")
	tracking := NewTrackingService(db, &fakeAlertMailer{})

	err := tracking.TrackWalletCopy(context.Background(), &model.WalletCopyTracking{
		UserID:        user.ID,
		CoinType:      model.CoinType("doge"),
		WalletAddress: "Dexampleaddress",
	})
	assert.ErrorIs(t, err, ErrUnsupportedCoin)

	list, err := tracking.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTrackWalletCopyNilMailer(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "carol@example.com")
	tracking := NewTrackingService(db, nil)

	err := tracking.TrackWalletCopy(context.Background(), &model.WalletCopyTracking{
		UserID:        user.ID,
		CoinType:      model.CoinEthereum,
		WalletAddress: "0xexampleaddress",
	})
	require.NoError(t, err)
}
