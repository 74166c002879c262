package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/i18n"
	"marketplace/internal/infrastructure/kvstore"
)

func systemNote(text string) NotificationInput {
	return SystemNotice(text, "")
}

func TestAddNotification_ThenFetchShowsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := NewNotificationStore(env.storage, env.translator, "alice", env.opts...)
	receiver := NewNotificationStore(env.storage, env.translator, "bob", env.opts...)

	sender.AddNotification(ctx, "bob", systemNote("first"))
	env.clock.Advance(time.Second)
	sender.AddNotification(ctx, "bob", systemNote("second"))

	// the sender's own list is untouched
	assert.Empty(t, sender.Notifications())
	// the receiver only sees it after an explicit fetch
	assert.Equal(t, 0, receiver.UnreadCount())

	list := receiver.FetchNotifications(ctx, "bob")
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.False(t, list[0].IsRead)
	assert.Equal(t, 2, receiver.UnreadCount())
}

func TestAddNotification_ForSessionUserUpdatesMemory(t *testing.T) {
	env := newTestEnv(t)
	store := NewNotificationStore(env.storage, env.translator, "bob", env.opts...)

	store.AddNotification(context.Background(), "bob", systemNote("hello"))

	require.Len(t, store.Notifications(), 1)
	assert.Equal(t, 1, store.UnreadCount())
}

func TestAddNotification_CapsAtFifty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := NewNotificationStore(env.storage, env.translator, "", env.opts...)

	for i := 0; i < 51; i++ {
		store.AddNotification(ctx, "bob", systemNote(fmt.Sprintf("n%d", i)))
		env.clock.Advance(time.Millisecond)
	}

	var stored []entity.UserNotification
	kvstore.LoadJSON(ctx, env.storage, repository.NotificationsKey("bob"), &stored)
	require.Len(t, stored, entity.MaxNotificationsPerUser)
	assert.Equal(t, "n50", stored[0].Message)
	assert.Equal(t, "n1", stored[len(stored)-1].Message)
}

func TestAddNotification_RenderedOnceAtCreation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := NewNotificationStore(env.storage, env.translator, "bob", env.opts...)

	in := NotificationInput{
		Type:         entity.NotificationAdStatusUpdate,
		MessageKey:   i18n.KeyAdApproved,
		Replacements: map[string]string{"companyName": "Acme"},
	}
	store.AddNotification(ctx, "bob", in)

	env.translator.SetLanguage(i18n.LangIndonesian)
	env.clock.Advance(time.Second)
	store.AddNotification(ctx, "bob", in)

	list := store.FetchNotifications(ctx, "bob")
	require.Len(t, list, 2)
	assert.Equal(t, "Iklan Anda untuk Acme telah disetujui", list[0].Message)
	assert.Equal(t, "Your advertisement for Acme has been approved", list[1].Message)
}

func TestMarkAllAsRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := NewNotificationStore(env.storage, env.translator, "bob", env.opts...)

	store.AddNotification(ctx, "bob", systemNote("a"))
	env.clock.Advance(time.Second)
	store.AddNotification(ctx, "bob", systemNote("b"))
	require.Equal(t, 2, store.UnreadCount())

	store.MarkAllAsRead(ctx, "bob")
	assert.Equal(t, 0, store.UnreadCount())

	var stored []entity.UserNotification
	kvstore.LoadJSON(ctx, env.storage, repository.NotificationsKey("bob"), &stored)
	require.Len(t, stored, 2)
	for _, n := range stored {
		assert.True(t, n.IsRead)
	}
	assert.Equal(t, "b", stored[0].Message)
}

func TestFetchNotifications_MalformedPartitionIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.storage.Set(ctx, repository.NotificationsKey("bob"), "{not json"))

	store := NewNotificationStore(env.storage, env.translator, "bob", env.opts...)
	assert.Empty(t, store.FetchNotifications(ctx, "bob"))
	assert.Equal(t, 0, store.UnreadCount())
}

func TestAddNotification_CorruptPartitionLeftAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.storage.Set(ctx, repository.NotificationsKey("bob"), "{not json"))

	store := NewNotificationStore(env.storage, env.translator, "", env.opts...)
	n := store.AddNotification(ctx, "bob", systemNote("x"))
	require.NotNil(t, n)

	raw, found, err := env.storage.Get(ctx, repository.NotificationsKey("bob"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "{not json", raw)
	assert.Empty(t, env.pusher.events)
}

func TestAddNotification_OrderUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	notifier := NewNotificationStore(env.storage, env.translator, "", env.opts...)

	n := notifier.AddNotification(ctx, "alice", OrderUpdateNotice("42", "shipped", "/orders/42"))
	require.NotNil(t, n)
	assert.Equal(t, entity.NotificationOrderUpdate, n.Type)
	assert.Equal(t, "Order 42 is now shipped", n.Message)
	assert.Equal(t, "/orders/42", n.Link)

	sys := notifier.AddNotification(ctx, "alice", SystemNotice("Maintenance tonight", ""))
	assert.Equal(t, entity.NotificationSystem, sys.Type)
	assert.Equal(t, "Maintenance tonight", sys.Message)
}
