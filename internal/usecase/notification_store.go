package usecase

import (
	"context"
	"sort"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/i18n"
	"marketplace/internal/infrastructure/kvstore"
	ws "marketplace/internal/infrastructure/websocket"
	"marketplace/pkg/logger"
)

type NotificationInput struct {
	Type         entity.NotificationType
	MessageKey   string
	Replacements map[string]string
	Link         string
}

// SystemNotice is a free-text announcement from the operators.
func SystemNotice(text, link string) NotificationInput {
	return NotificationInput{
		Type:         entity.NotificationSystem,
		MessageKey:   i18n.KeySystem,
		Replacements: map[string]string{"text": text},
		Link:         link,
	}
}

// OrderUpdateNotice tells a user that one of their orders changed status.
func OrderUpdateNotice(orderID, status, link string) NotificationInput {
	return NotificationInput{
		Type:         entity.NotificationOrderUpdate,
		MessageKey:   i18n.KeyOrderUpdate,
		Replacements: map[string]string{"orderId": orderID, "status": status},
		Link:         link,
	}
}

// Notifier enqueues a notification into any user's partition.
type Notifier interface {
	AddNotification(ctx context.Context, userID string, input NotificationInput) *entity.UserNotification
}

// NotificationStore holds the loaded notification list of one session user.
// A store built with an empty userID only writes to other partitions.
type NotificationStore struct {
	storage    repository.Storage
	translator *i18n.Translator
	cfg        storeConfig
	ids        *idSource

	mu            sync.RWMutex
	userID        string
	notifications []entity.UserNotification
}

func NewNotificationStore(storage repository.Storage, translator *i18n.Translator, userID string, opts ...StoreOption) *NotificationStore {
	cfg := newStoreConfig(opts)
	return &NotificationStore{
		storage:    storage,
		translator: translator,
		cfg:        cfg,
		ids:        cfg.ids,
		userID:     userID,
	}
}

// AddNotification renders the message now, in the active language, and
// prepends it to userID's persisted list, keeping the newest 50. The list is
// read fresh from storage since userID is usually someone else. Only when
// userID is this session's user does the in-memory list follow.
func (s *NotificationStore) AddNotification(ctx context.Context, userID string, input NotificationInput) *entity.UserNotification {
	if userID == "" {
		return nil
	}

	id, now := s.ids.next()
	n := entity.UserNotification{
		ID:        id,
		Type:      input.Type,
		Message:   s.translator.T(input.MessageKey, input.Replacements),
		Link:      input.Link,
		IsRead:    false,
		CreatedAt: now,
	}

	var written []entity.UserNotification
	ok := kvstore.MirrorWrite(ctx, s.storage, repository.NotificationsKey(userID), func(list []entity.UserNotification) []entity.UserNotification {
		list = append([]entity.UserNotification{n}, list...)
		written = capNotifications(list)
		return written
	})
	if !ok {
		logger.Warn("Notification %d for user %s was not persisted", n.ID, userID)
		return &n
	}

	if userID == s.userID {
		s.mu.Lock()
		s.notifications = written
		s.mu.Unlock()
	}

	s.cfg.push(userID, ws.EventNotification, n)
	return &n
}

// FetchNotifications replaces the in-memory list with userID's persisted one.
func (s *NotificationStore) FetchNotifications(ctx context.Context, userID string) []entity.UserNotification {
	var list []entity.UserNotification
	kvstore.LoadJSON(ctx, s.storage, repository.NotificationsKey(userID), &list)

	s.mu.Lock()
	s.notifications = list
	s.mu.Unlock()

	return cloneNotifications(list)
}

// MarkAllAsRead flags every persisted notification of userID as read.
func (s *NotificationStore) MarkAllAsRead(ctx context.Context, userID string) {
	var list []entity.UserNotification
	kvstore.LoadJSON(ctx, s.storage, repository.NotificationsKey(userID), &list)

	for i := range list {
		list[i].IsRead = true
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	list = capNotifications(list)

	kvstore.SaveJSON(ctx, s.storage, repository.NotificationsKey(userID), list)

	s.mu.Lock()
	s.notifications = list
	s.mu.Unlock()
}

func (s *NotificationStore) Notifications() []entity.UserNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotifications(s.notifications)
}

// UnreadCount counts unread entries of the loaded list only.
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func capNotifications(list []entity.UserNotification) []entity.UserNotification {
	if len(list) > entity.MaxNotificationsPerUser {
		return list[:entity.MaxNotificationsPerUser]
	}
	return list
}

func cloneNotifications(list []entity.UserNotification) []entity.UserNotification {
	out := make([]entity.UserNotification, len(list))
	copy(out, list)
	return out
}
