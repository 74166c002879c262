package entity

import "time"

// Message is immutable once appended to its conversation.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
