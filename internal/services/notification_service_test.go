package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juaconnect_backend/internal/models"
	"juaconnect_backend/pkg/apperrors"
)

func TestNotifications_UnreadFirstOrdering(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")

	env.notifications.Dispatch(client.ID, "First", "first message", models.NotificationTypeSystem, nil, nil)
	env.notifications.Dispatch(client.ID, "Second", "second message", models.NotificationTypeSystem, nil, nil)
	env.notifications.Dispatch(client.ID, "Third", "third message", models.NotificationTypeSystem, nil, nil)

	notifs := env.notificationsFor(t, client.ID)
	require.Len(t, notifs, 3)

	// Reading one pushes it behind every unread notification.
	require.NoError(t, env.notifications.MarkAsRead(client.ID, notifs[0].ID))

	reordered := env.notificationsFor(t, client.ID)
	require.Len(t, reordered, 3)
	assert.False(t, reordered[0].IsRead)
	assert.False(t, reordered[1].IsRead)
	assert.True(t, reordered[2].IsRead)
	assert.Equal(t, notifs[0].ID, reordered[2].ID)

	count, err := env.notifications.GetUnreadCount(client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNotifications_ReadAllScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signupClient(t, "wanjiku")
	bob := env.signupClient(t, "njeri")

	env.notifications.Dispatch(alice.ID, "A1", "for alice", models.NotificationTypeSystem, nil, nil)
	env.notifications.Dispatch(alice.ID, "A2", "for alice", models.NotificationTypeSystem, nil, nil)
	env.notifications.Dispatch(bob.ID, "B1", "for bob", models.NotificationTypeSystem, nil, nil)

	require.NoError(t, env.notifications.MarkAllAsRead(alice.ID))

	aliceCount, err := env.notifications.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceCount)

	bobCount, err := env.notifications.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobCount)
}

func TestNotifications_RecipientOnlyAccess(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signupClient(t, "wanjiku")
	intruder := env.signupClient(t, "njeri")

	env.notifications.Dispatch(owner.ID, "Private", "owner only", models.NotificationTypeSystem, nil, nil)
	notifs := env.notificationsFor(t, owner.ID)
	require.Len(t, notifs, 1)

	err := env.notifications.MarkAsRead(intruder.ID, notifs[0].ID)
	assertForbidden(t, err)

	err = env.notifications.DeleteNotification(intruder.ID, notifs[0].ID)
	assertForbidden(t, err)

	require.NoError(t, env.notifications.DeleteNotification(owner.ID, notifs[0].ID))
	assert.Empty(t, env.notificationsFor(t, owner.ID))

	err = env.notifications.MarkAsRead(owner.ID, notifs[0].ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestNotifications_ListIncludesUnreadCount(t *testing.T) {
	env := newTestEnv(t)
	client := env.signupClient(t, "wanjiku")

	env.notifications.Dispatch(client.ID, "One", "msg", models.NotificationTypeSystem, nil, nil)
	env.notifications.Dispatch(client.ID, "Two", "msg", models.NotificationTypeSystem, nil, nil)

	resp, err := env.notifications.GetUserNotifications(client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.UnreadCount)
	require.Len(t, resp.Notifications, 2)

	require.NoError(t, env.notifications.MarkAsRead(client.ID, resp.Notifications[0].ID))

	resp, err = env.notifications.GetUserNotifications(client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UnreadCount)
}
