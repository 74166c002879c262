package usecase

import (
	"sync"
	"time"
)

// Clock returns the current time. Stores take one so tests can pin it.
type Clock func() time.Time

// RealtimePusher delivers an event to a user's open sockets, if any.
type RealtimePusher interface {
	Push(userID, eventType string, data interface{})
}

type storeConfig struct {
	clock    Clock
	pusher   RealtimePusher
	location *time.Location
	ids      *idSource
}

type StoreOption func(*storeConfig)

func WithClock(clock Clock) StoreOption {
	return func(c *storeConfig) { c.clock = clock }
}

func WithPusher(pusher RealtimePusher) StoreOption {
	return func(c *storeConfig) { c.pusher = pusher }
}

// WithLocation sets the zone whose calendar days bound discount code validity.
func WithLocation(loc *time.Location) StoreOption {
	return func(c *storeConfig) { c.location = loc }
}

// withIDSource lets several stores share one id sequence.
func withIDSource(ids *idSource) StoreOption {
	return func(c *storeConfig) { c.ids = ids }
}

func newStoreConfig(opts []StoreOption) storeConfig {
	cfg := storeConfig{
		clock:    time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = newIDSource(cfg.clock)
	}
	return cfg
}

func (c storeConfig) push(userID, eventType string, data interface{}) {
	if c.pusher != nil {
		c.pusher.Push(userID, eventType, data)
	}
}

// idSource hands out creation-timestamp ids in unix milliseconds. Two ids
// minted in the same millisecond are bumped so they stay strictly increasing.
type idSource struct {
	mu    sync.Mutex
	last  int64
	clock Clock
}

func newIDSource(clock Clock) *idSource {
	return &idSource{clock: clock}
}

func (s *idSource) next() (int64, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	id := now.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id, now
}
