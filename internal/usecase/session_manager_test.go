package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_OneSessionPerUser(t *testing.T) {
	env := newTestEnv(t)
	m := NewSessionManager(env.storage, env.translator, env.opts...)
	ctx := context.Background()

	first := m.Get(ctx, alice)
	second := m.Get(ctx, alice)
	assert.Same(t, first, second)

	m.Get(ctx, bob)
	assert.Equal(t, 2, m.Count())
}

func TestSessionManager_AnonymousSessionNotRetained(t *testing.T) {
	env := newTestEnv(t)
	m := NewSessionManager(env.storage, env.translator, env.opts...)
	ctx := context.Background()

	s := m.Get(ctx, nil)
	require.NotNil(t, s.Conversations)
	assert.Nil(t, s.User)
	assert.Equal(t, 0, m.Count())

	_, err := s.Conversations.StartConversation(ctx, bikeBySeller)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSessionManager_SessionsShareStorage(t *testing.T) {
	env := newTestEnv(t)
	m := NewSessionManager(env.storage, env.translator, env.opts...)
	ctx := context.Background()

	buyer := m.Get(ctx, alice)
	convID, err := buyer.Conversations.StartConversation(ctx, bikeBySeller)
	require.NoError(t, err)
	require.NotNil(t, buyer.Conversations.SendMessage(ctx, convID, "hi"))

	seller := m.Get(ctx, bob)
	conv, ok := seller.Conversations.GetConversationByID(convID)
	require.True(t, ok)
	assert.Len(t, conv.Messages, 1)

	list := seller.Notifications.FetchNotifications(ctx, "bob")
	require.Len(t, list, 1)
	assert.Equal(t, 1, seller.Notifications.UnreadCount())
}

func TestSessionManager_NotificationIDsUniqueAcrossSessions(t *testing.T) {
	env := newTestEnv(t)
	m := NewSessionManager(env.storage, env.translator, env.opts...)
	ctx := context.Background()

	a := m.Get(ctx, alice).Notifications.AddNotification(ctx, "bob", systemNote("from alice"))
	b := m.Notifier().AddNotification(ctx, "bob", systemNote("from system"))

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Greater(t, b.ID, a.ID)
}
