package handler

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"
)

type sendNotificationRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1,max=100,dive,required"`
	Type    string   `json:"type" validate:"required,oneof=system order_update"`
	Text    string   `json:"text" validate:"required_if=Type system,max=500"`
	OrderID string   `json:"order_id" validate:"required_if=Type order_update,max=64"`
	Status  string   `json:"status" validate:"required_if=Type order_update,max=64"`
	Link    string   `json:"link" validate:"omitempty,max=200"`
}

type NotificationHandler struct {
	sessions *usecase.SessionManager
}

func NewNotificationHandler(sessions *usecase.SessionManager) *NotificationHandler {
	return &NotificationHandler{sessions: sessions}
}

// ListNotifications reloads the caller's notifications from storage.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	s := session(c, h.sessions)
	if s.User == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	list := s.Notifications.FetchNotifications(c.Request().Context(), s.User.ID)
	return response.Success(c, map[string]interface{}{
		"notifications": list,
		"unread_count":  s.Notifications.UnreadCount(),
	})
}

// UnreadCount reports unread entries of the list last loaded by this session.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	s := session(c, h.sessions)
	return response.Success(c, map[string]int{
		"unread_count": s.Notifications.UnreadCount(),
	})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	s := session(c, h.sessions)
	if s.User == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	s.Notifications.MarkAllAsRead(c.Request().Context(), s.User.ID)
	return response.Success(c, map[string]interface{}{
		"notifications": s.Notifications.Notifications(),
		"unread_count":  0,
	})
}

// SendNotification lets an admin post a system announcement or an order
// status update to one or more users.
func (h *NotificationHandler) SendNotification(c echo.Context) error {
	var req sendNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.SystemNotice(req.Text, req.Link)
	if entity.NotificationType(req.Type) == entity.NotificationOrderUpdate {
		input = usecase.OrderUpdateNotice(req.OrderID, req.Status, req.Link)
	}

	notifier := h.sessions.Notifier()
	sent := make([]*entity.UserNotification, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		sent = append(sent, notifier.AddNotification(c.Request().Context(), userID, input))
	}

	return response.Created(c, sent)
}
