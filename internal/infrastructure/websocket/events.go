package websocket

import (
	"encoding/json"
	"time"

	"marketplace/pkg/logger"
)

const (
	EventPing                = "ping"
	EventPong                = "pong"
	EventNotification        = "notification"
	EventConversationUpdated = "conversation_updated"
	EventError               = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HandleClientMessage answers the few frames a client may send. Everything
// else flows server to client.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.sendToClient(client, newEvent(EventError, map[string]string{"error": "Invalid message format"}))
		return
	}

	switch msg.Type {
	case EventPing:
		m.sendToClient(client, newEvent(EventPong, map[string]string{"status": "alive"}))
	default:
		m.sendToClient(client, newEvent(EventError, map[string]string{"error": "Unknown message type"}))
	}
}

// Push sends a typed event to every socket userID has open.
func (m *Manager) Push(userID, eventType string, data interface{}) {
	payload, err := json.Marshal(newEvent(eventType, data))
	if err != nil {
		logger.Error("WebSocket: failed to encode %s event for %s: %v", eventType, userID, err)
		return
	}
	m.SendToUser(userID, payload)
}

func (m *Manager) sendToClient(client *Client, msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.Send <- payload:
	default:
		logger.Warn("WebSocket: send buffer full for user %s", client.UserID)
	}
}

func newEvent(eventType string, data interface{}) WSMessage {
	return WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
