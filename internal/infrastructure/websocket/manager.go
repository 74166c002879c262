package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"marketplace/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// Client is one open socket of an authenticated user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
	}
}

// Manager tracks open sockets per user. A user may have several tabs open.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the registration loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.register:
				m.mutex.Lock()
				if m.clients[client.UserID] == nil {
					m.clients[client.UserID] = make(map[*Client]struct{})
				}
				m.clients[client.UserID][client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: %s", client.UserID)

			case client := <-m.unregister:
				m.removeClient(client)
				logger.Debug("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				m.closeAll()
				close(m.done)
				return
			}
		}
	}()
}

// AddClient hands client to the registration loop. It reports false once the
// loop has stopped.
func (m *Manager) AddClient(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

// RemoveClient unregisters client. After shutdown the client is dropped
// directly so callers never block on a stopped loop.
func (m *Manager) RemoveClient(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
		m.removeClient(client)
	}
}

func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	set, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; ok {
		delete(set, client)
		close(client.Send)
	}
	if len(set) == 0 {
		delete(m.clients, client.UserID)
	}
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for userID, set := range m.clients {
		for client := range set {
			close(client.Send)
		}
		delete(m.clients, userID)
	}
}

// IsOnline reports whether userID has at least one open socket.
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients[userID]) > 0
}

// SendToUser delivers message to every socket of userID. Slow clients are
// skipped rather than blocking the caller.
func (m *Manager) SendToUser(userID string, message []byte) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	delivered := 0
	for client := range m.clients[userID] {
		select {
		case client.Send <- message:
			delivered++
		default:
			logger.Warn("WebSocket: send buffer full for user %s, dropping event", userID)
		}
	}
	return delivered
}

// ReadPump reads client frames until the connection drops.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.RemoveClient(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump drains Send into the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
