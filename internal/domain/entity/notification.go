package entity

import "time"

type NotificationType string

const (
	NotificationNewMessage     NotificationType = "new_message"
	NotificationAdStatusUpdate NotificationType = "ad_status_update"
	NotificationOrderUpdate    NotificationType = "order_update"
	NotificationSystem         NotificationType = "system"
)

// MaxNotificationsPerUser caps the persisted history of a partition.
const MaxNotificationsPerUser = 50

type UserNotification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"` // rendered once, at creation
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
