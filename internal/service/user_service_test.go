package service

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"

	"ledger-core/internal/model"
	"ledger-core/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeResetMailer struct {
	mu   sync.Mutex
	urls []string
}

func (f *fakeResetMailer) DispatchPasswordReset(_ context.Context, _, _, resetURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, resetURL)
	return nil
}

func newUserFixture(t *testing.T) (*gorm.DB, *UserService, *fakeResetMailer) {
	db := newTestDB(t)
	notifs := NewNotificationService(db, cache.NewMemoryCache(0, 0))
	mailer := &fakeResetMailer{}
	return db, NewUserService(db, notifs, mailer), mailer
}

func TestRegisterAndLogin(t *testing.T) {
	db, users, _ := newUserFixture(t)

	user, err := users.Register(context.Background(), "alice@example.com", "Alice", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	// 注册即开钱包并发欢迎通知
	var wallet model.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&wallet).Error)
	var notif model.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&notif).Error)
	assert.Equal(t, model.NotifSystem, notif.Type)

	token, logged, err := users.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	uid, isAdmin, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, uid)
	assert.False(t, isAdmin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, users, _ := newUserFixture(t)

	_, err := users.Register(context.Background(), "alice@example.com", "Alice", "s3cret-pass")
	require.NoError(t, err)
	_, err = users.Register(context.Background(), "alice@example.com", "Imposter", "other-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	_, users, _ := newUserFixture(t)

	_, err := users.Register(context.Background(), "alice@example.com", "Alice", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = users.Login(context.Background(), "alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrBadCredentials)

	// 不存在的邮箱同样返回凭证错误，不泄露用户是否存在
	_, _, err = users.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestChangePasswordChecksOld(t *testing.T) {
	_, users, _ := newUserFixture(t)

	user, err := users.Register(context.Background(), "alice@example.com", "Alice", "old-pass-123")
	require.NoError(t, err)

	err = users.ChangePassword(context.Background(), user.ID, "not-the-old-one", "new-pass-123")
	assert.ErrorIs(t, err, ErrWrongOldPassword)

	require.NoError(t, users.ChangePassword(context.Background(), user.ID, "old-pass-123", "new-pass-123"))

	_, _, err = users.Login(context.Background(), "alice@example.com", "old-pass-123")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, _, err = users.Login(context.Background(), "alice@example.com", "new-pass-123")
	assert.NoError(t, err)
}

func TestForgotPasswordFlow(t *testing.T) {
	_, users, mailer := newUserFixture(t)

	_, err := users.Register(context.Background(), "alice@example.com", "Alice", "old-pass-123")
	require.NoError(t, err)

	// 未知邮箱静默成功，不发邮件
	require.NoError(t, users.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, mailer.urls)

	require.NoError(t, users.ForgotPassword(context.Background(), "alice@example.com"))
	require.Len(t, mailer.urls, 1)
	assert.True(t, strings.Contains(mailer.urls[0], "/reset-password?token="))

	parsed, err := url.Parse(mailer.urls[0])
	require.NoError(t, err)
	resetToken := parsed.Query().Get("token")
	require.NotEmpty(t, resetToken)

	require.NoError(t, users.ResetPassword(context.Background(), resetToken, "brand-new-pass"))
	_, _, err = users.Login(context.Background(), "alice@example.com", "brand-new-pass")
	assert.NoError(t, err)
}

func TestResetRejectsAccessToken(t *testing.T) {
	_, users, _ := newUserFixture(t)

	_, err := users.Register(context.Background(), "alice@example.com", "Alice", "s3cret-pass")
	require.NoError(t, err)
	token, _, err := users.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	// 登录 token 不能当重置 token 用
	err = users.ResetPassword(context.Background(), token, "hijacked-pass")
	assert.ErrorIs(t, err, ErrBadResetToken)

	err = users.ResetPassword(context.Background(), "garbage.token.here", "hijacked-pass")
	assert.ErrorIs(t, err, ErrBadResetToken)
}

func TestUpdateProfile(t *testing.T) {
	_, users, _ := newUserFixture(t)

	user, err := users.Register(context.Background(), "alice@example.com", "Alice", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, users.UpdateProfile(context.Background(), user.ID, "Alice Cooper"))
	profile, err := users.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", profile.Name)
}
