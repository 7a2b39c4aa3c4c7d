package service

import (
	"context"
	"fmt"
	"testing"

	"ledger-core/internal/model"
	"ledger-core/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupportFixture(t *testing.T) (*SupportService, *NotificationService, func(string) *model.User) {
	db := newTestDB(t)
	notifs := NewNotificationService(db, cache.NewMemoryCache(0, 0))
	support := NewSupportService(db, notifs)
	mkUser := func(email string) *model.User { return createTestUser(t, db, email) }
	return support, notifs, mkUser
}

func TestTicketIDsAreSequential(t *testing.T) {
	support, _, mkUser := newSupportFixture(t)
	user := mkUser("alice@example.com")

	for i := 1; i <= 3; i++ {
		ticket, err := support.Create(context.Background(), user.ID, model.DeptTechnical, "Login issue", "I cannot log in")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ST-%05d", i), ticket.TicketID)
		assert.Equal(t, model.TicketStatusOpen, ticket.Status)
	}
}

func TestTicketCreateNotifiesUser(t *testing.T) {
	support, notifs, mkUser := newSupportFixture(t)
	user := mkUser("bob@example.com")

	ticket, err := support.Create(context.Background(), user.ID, model.DeptBilling, "Refund", "Please refund")
	require.NoError(t, err)

	list, err := notifs.List(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.NotifSupportTicket, list[0].Type)
	assert.Contains(t, list[0].Message, ticket.TicketID)
	require.NotNil(t, list[0].SupportTicketID)
	assert.Equal(t, ticket.ID, *list[0].SupportTicketID)
}

func TestInternalRepliesHiddenFromUser(t *testing.T) {
	support, _, mkUser := newSupportFixture(t)
	user := mkUser("carol@example.com")
	admin := mkUser("admin@example.com")

	ticket, err := support.Create(context.Background(), user.ID, model.DeptKYC, "KYC stuck", "My KYC is pending")
	require.NoError(t, err)

	require.NoError(t, support.AdminReply(context.Background(), admin.ID, ticket.ID, "check their docs", true, ""))
	require.NoError(t, support.AdminReply(context.Background(), admin.ID, ticket.ID, "We are reviewing your documents.", false, model.TicketStatusInProgress))

	mine, err := support.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Replies, 1)
	assert.Equal(t, "We are reviewing your documents.", mine[0].Replies[0].Message)

	all, err := support.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Replies, 2)
}

func TestUserReplyReopensClosedTicket(t *testing.T) {
	support, _, mkUser := newSupportFixture(t)
	user := mkUser("dave@example.com")
	admin := mkUser("admin@example.com")

	ticket, err := support.Create(context.Background(), user.ID, model.DeptGeneral, "Question", "How do deposits work?")
	require.NoError(t, err)

	require.NoError(t, support.AdminReply(context.Background(), admin.ID, ticket.ID, "Answered.", false, model.TicketStatusClosed))

	all, err := support.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusClosed, all[0].Status)
	assert.NotNil(t, all[0].ClosedAt)

	require.NoError(t, support.UserReply(context.Background(), user.ID, ticket.TicketID, "One more thing..."))

	all, err = support.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusOpen, all[0].Status)
	assert.Nil(t, all[0].ClosedAt)
}

func TestUserReplyOwnerScoped(t *testing.T) {
	support, _, mkUser := newSupportFixture(t)
	user := mkUser("erin@example.com")
	other := mkUser("mallory@example.com")

	ticket, err := support.Create(context.Background(), user.ID, model.DeptAccount, "Rename", "Change my name")
	require.NoError(t, err)

	err = support.UserReply(context.Background(), other.ID, ticket.TicketID, "hijack")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}
