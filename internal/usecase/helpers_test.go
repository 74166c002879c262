package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	adapterrepo "marketplace/internal/adapter/repository"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/i18n"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type pushedEvent struct {
	userID    string
	eventType string
	data      interface{}
}

type recordingPusher struct {
	mu     sync.Mutex
	events []pushedEvent
}

func (p *recordingPusher) Push(userID, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pushedEvent{userID: userID, eventType: eventType, data: data})
}

func (p *recordingPusher) eventsFor(userID string) []pushedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []pushedEvent
	for _, e := range p.events {
		if e.userID == userID {
			out = append(out, e)
		}
	}
	return out
}

// failingStorage fails every operation on keys listed in failKeys.
type failingStorage struct {
	repository.Storage
	failKeys map[string]bool
}

func (s *failingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failKeys[key] {
		return "", false, context.DeadlineExceeded
	}
	return s.Storage.Get(ctx, key)
}

func (s *failingStorage) Set(ctx context.Context, key, value string) error {
	if s.failKeys[key] {
		return context.DeadlineExceeded
	}
	return s.Storage.Set(ctx, key, value)
}

var (
	alice = &entity.User{ID: "alice", Name: "Alice", Role: entity.RoleUser}
	bob   = &entity.User{ID: "bob", Name: "Bob", Role: entity.RoleUser}
	admin = &entity.User{ID: "root", Name: "Admin", Role: entity.RoleAdmin}

	bikeBySeller = &entity.Product{
		ID:         "p1",
		SellerID:   "bob",
		SellerName: "Bob",
		Name:       "Bike",
		ImageURL:   "https://img/bike.png",
	}
)

type testEnv struct {
	storage    repository.Storage
	clock      *fakeClock
	pusher     *recordingPusher
	translator *i18n.Translator
	opts       []StoreOption
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := newFakeClock(time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC))
	pusher := &recordingPusher{}
	return &testEnv{
		storage:    adapterrepo.NewMemoryStorage(),
		clock:      clock,
		pusher:     pusher,
		translator: i18n.NewTranslator(i18n.LangEnglish),
		opts:       []StoreOption{WithClock(clock.Now), WithPusher(pusher), WithLocation(time.UTC)},
	}
}

func (e *testEnv) session(t *testing.T, user *entity.User) (*ConversationStore, *NotificationStore) {
	t.Helper()
	n := NewNotificationStore(e.storage, e.translator, userIDOf(user), e.opts...)
	c := NewConversationStore(context.Background(), e.storage, n, user, e.opts...)
	return c, n
}

func userIDOf(u *entity.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
