package service

import (
	"context"
	"testing"

	"ledger-core/internal/model"
	"ledger-core/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifFixture(t *testing.T) (*NotificationService, uint64) {
	db := newTestDB(t)
	notifs := NewNotificationService(db, cache.NewMemoryCache(0, 0))
	user := createTestUser(t, db, "alice@example.com")
	return notifs, user.ID
}

func seedNotification(t *testing.T, notifs *NotificationService, userID uint64, title string) *model.Notification {
	t.Helper()
	n := &model.Notification{UserID: userID, Type: model.NotifGeneral, Title: title, Message: "m"}
	require.NoError(t, notifs.Create(context.Background(), n))
	return n
}

func TestUnreadCountTracksWrites(t *testing.T) {
	notifs, userID := newNotifFixture(t)

	count, err := notifs.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	seedNotification(t, notifs, userID, "a")
	seedNotification(t, notifs, userID, "b")

	// 写入后缓存被失效，计数立即可见
	count, err = notifs.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	notifs, userID := newNotifFixture(t)
	n := seedNotification(t, notifs, userID, "once")

	require.NoError(t, notifs.MarkRead(context.Background(), userID, n.ID))

	list, err := notifs.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsRead)
	require.NotNil(t, list[0].ReadAt)
	firstReadAt := *list[0].ReadAt

	// 再次标记: 无错误且 read_at 不变
	require.NoError(t, notifs.MarkRead(context.Background(), userID, n.ID))
	list, err = notifs.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, firstReadAt.Unix(), list[0].ReadAt.Unix())
}

func TestMarkReadOwnerScoped(t *testing.T) {
	notifs, userID := newNotifFixture(t)
	n := seedNotification(t, notifs, userID, "mine")

	err := notifs.MarkRead(context.Background(), userID+1, n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkAllRead(t *testing.T) {
	notifs, userID := newNotifFixture(t)
	seedNotification(t, notifs, userID, "a")
	seedNotification(t, notifs, userID, "b")
	seedNotification(t, notifs, userID, "c")

	updated, err := notifs.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated)

	count, err := notifs.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// 再跑一遍: 没有可更新的行
	updated, err = notifs.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, updated)
}
