package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swingconnect/internal/models"
	"swingconnect/pkg/errorx"
)

func seedNotifications(t *testing.T, f *fixture, recipientID uint, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		notif, err := f.notifications.Create(context.Background(), recipientID,
			models.NotificationTypeSystem, "系统通知", fmt.Sprintf("第 %d 条", i+1), Related{})
		require.NoError(t, err)
		ids = append(ids, notif.ID)
	}
	return ids
}

func TestListNotifications_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	ids := seedNotifications(t, f, alice.ID, 3)

	items, cursor, hasMore, err := f.notifications.List(ctx, alice.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, hasMore)
	assert.Equal(t, ids[2], items[0].ID)
	assert.Equal(t, ids[1], items[1].ID)

	items, _, hasMore, err = f.notifications.List(ctx, alice.ID, 2, cursor)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, hasMore)
	assert.Equal(t, ids[0], items[0].ID)
}

func TestListNotifications_OnlyOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	seedNotifications(t, f, alice.ID, 2)

	items, _, _, err := f.notifications.List(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMarkNotificationRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	ids := seedNotifications(t, f, alice.ID, 2)

	count, err := f.notifications.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, f.notifications.MarkRead(ctx, ids[0], alice.ID))

	count, err = f.notifications.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 别人的通知标不了
	err = f.notifications.MarkRead(ctx, ids[1], bob.ID)
	assert.ErrorIs(t, err, errorx.ErrNotFound)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	seedNotifications(t, f, alice.ID, 3)

	require.NoError(t, f.notifications.MarkAllRead(ctx, alice.ID))

	count, err := f.notifications.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
