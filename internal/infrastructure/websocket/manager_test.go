package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerClient(t *testing.T, m *Manager, userID string) *Client {
	t.Helper()
	c := &Client{UserID: userID, Send: make(chan []byte, sendBufferSize)}
	require.True(t, m.AddClient(c))
	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		_, ok := m.clients[userID][c]
		return ok
	}, time.Second, 5*time.Millisecond)
	return c
}

func TestManager_PushReachesEveryTab(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	tab1 := registerClient(t, m, "u1")
	tab2 := registerClient(t, m, "u1")
	other := registerClient(t, m, "u2")

	m.Push("u1", EventNotification, map[string]string{"message": "hi"})

	for _, c := range []*Client{tab1, tab2} {
		select {
		case raw := <-c.Send:
			var msg WSMessage
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, EventNotification, msg.Type)
		case <-time.After(time.Second):
			t.Fatal("expected event")
		}
	}
	assert.Len(t, other.Send, 0)
}

func TestManager_Unregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	c := registerClient(t, m, "u1")
	m.RemoveClient(c)

	require.Eventually(t, func() bool { return !m.IsOnline("u1") }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, m.SendToUser("u1", []byte("x")))
}

func TestManager_StoppedLoopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Start(ctx)
	c := registerClient(t, m, "u1")

	cancel()
	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("registration loop did not stop")
	}

	_, open := <-c.Send
	assert.False(t, open)

	removed := make(chan struct{})
	go func() {
		m.RemoveClient(c)
		close(removed)
	}()
	select {
	case <-removed:
	case <-time.After(time.Second):
		t.Fatal("RemoveClient blocked after shutdown")
	}

	assert.False(t, m.AddClient(&Client{UserID: "u2", Send: make(chan []byte, 1)}))
	assert.False(t, m.IsOnline("u1"))
}

func TestManager_HandlePing(t *testing.T) {
	m := NewManager()
	c := &Client{UserID: "u1", Send: make(chan []byte, 1)}

	m.HandleClientMessage(c, []byte(`{"type":"ping"}`))

	var msg WSMessage
	require.NoError(t, json.Unmarshal(<-c.Send, &msg))
	assert.Equal(t, EventPong, msg.Type)
}
