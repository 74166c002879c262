package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionSendMessage       = "send_message"
	ActionStartConversation = "start_conversation"
	ActionSubmitAd          = "submit_ad"
)

// Policy sizes the bucket of one action: Burst tokens, one token back every Every.
type Policy struct {
	Burst int
	Every time.Duration
}

// DefaultPolicies returns the per-action limits, with messagesPerMinute
// applied to message sending.
func DefaultPolicies(messagesPerMinute int) map[string]Policy {
	if messagesPerMinute <= 0 {
		messagesPerMinute = 10
	}
	return map[string]Policy{
		ActionSendMessage:       {Burst: messagesPerMinute, Every: time.Minute / time.Duration(messagesPerMinute)},
		ActionStartConversation: {Burst: 20, Every: 3 * time.Minute},
		ActionSubmitAd:          {Burst: 5, Every: 12 * time.Minute},
	}
}

var fallbackPolicy = Policy{Burst: 20, Every: 3 * time.Second}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// take consumes a token at now, or reports how long until one is available.
func (b *bucket) take(now time.Time) (bool, time.Duration) {
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	policies map[string]Policy
	buckets  map[string]*bucket
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(policies map[string]Policy) *RateLimiter {
	return &RateLimiter{
		policies: policies,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allow consumes a token for userID's action. When refused it returns how
// long until the next token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action
	now := rl.now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		p, known := rl.policies[action]
		if !known {
			p = fallbackPolicy
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Every(p.Every), p.Burst)}
		rl.buckets[key] = b
	}

	return b.take(now)
}

// Cleanup drops buckets untouched for an hour.
func (rl *RateLimiter) Cleanup() {
	now := rl.now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > time.Hour {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}
