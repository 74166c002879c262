package usecase

import (
	"context"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/i18n"
)

// Session bundles the per-user stores of one signed-in user.
type Session struct {
	User          *entity.User
	Conversations *ConversationStore
	Notifications *NotificationStore
}

// SessionManager creates one Session per user id on first use and keeps it
// for the life of the process.
type SessionManager struct {
	storage    repository.Storage
	translator *i18n.Translator
	opts       []StoreOption

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(storage repository.Storage, translator *i18n.Translator, opts ...StoreOption) *SessionManager {
	cfg := newStoreConfig(opts)
	// Notifications for one partition can come from any session, so every
	// session draws ids from the same sequence.
	shared := append(append([]StoreOption(nil), opts...), withIDSource(cfg.ids))

	return &SessionManager{
		storage:    storage,
		translator: translator,
		opts:       shared,
		sessions:   make(map[string]*Session),
	}
}

// Get returns the session of user, creating and loading it if needed. A nil
// user gets a fresh anonymous session that is not retained.
func (m *SessionManager) Get(ctx context.Context, user *entity.User) *Session {
	if user == nil {
		notifications := m.Notifier()
		return &Session{
			Notifications: notifications,
			Conversations: NewConversationStore(ctx, m.storage, notifications, nil, m.opts...),
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[user.ID]; ok {
		return s
	}

	notifications := NewNotificationStore(m.storage, m.translator, user.ID, m.opts...)
	s := &Session{
		User:          user,
		Notifications: notifications,
		Conversations: NewConversationStore(ctx, m.storage, notifications, user, m.opts...),
	}
	m.sessions[user.ID] = s
	return s
}

// Count reports how many user sessions are live.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Notifier returns a store that writes notifications into any partition
// without holding a session list of its own.
func (m *SessionManager) Notifier() *NotificationStore {
	return NewNotificationStore(m.storage, m.translator, "", m.opts...)
}
