package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/i18n"
	"marketplace/internal/infrastructure/kvstore"
	ws "marketplace/internal/infrastructure/websocket"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

// ErrNotAuthenticated is returned by StartConversation when the session has no user.
var ErrNotAuthenticated = errors.Unauthorized("You must be signed in to start a conversation", nil)

// ConversationStore holds the conversation partition of one session user.
// Every conversation exists twice, once per participant partition, and each
// write here is replayed into the other participant's partition on a best
// effort basis.
type ConversationStore struct {
	storage  repository.Storage
	notifier Notifier
	cfg      storeConfig
	ids      *idSource

	mu            sync.RWMutex
	user          *entity.User
	conversations []entity.Conversation
}

// NewConversationStore binds a store to user, which may be nil for an
// anonymous session, and loads the user's partition.
func NewConversationStore(ctx context.Context, storage repository.Storage, notifier Notifier, user *entity.User, opts ...StoreOption) *ConversationStore {
	cfg := newStoreConfig(opts)
	s := &ConversationStore{
		storage:  storage,
		notifier: notifier,
		cfg:      cfg,
		ids:      cfg.ids,
		user:     user,
	}
	s.Reload(ctx)
	return s
}

// Reload re-reads the session user's partition, picking up mirrored writes
// made by other sessions.
func (s *ConversationStore) Reload(ctx context.Context) {
	s.mu.Lock()
	s.reloadLocked(ctx)
	s.mu.Unlock()
}

// reloadLocked replaces the loaded list with the persisted partition. Writes
// start from it so that threads and messages mirrored in by the other
// participant are never overwritten by a stale copy.
func (s *ConversationStore) reloadLocked(ctx context.Context) {
	var list []entity.Conversation
	if s.user != nil {
		kvstore.LoadJSON(ctx, s.storage, repository.ConversationsKey(s.user.ID), &list)
	}
	s.conversations = list
}

// StartConversation opens (or reuses) the thread between the session user,
// as buyer, and the product's seller. It fails only when nobody is signed in
// or when the seller tries to message their own listing.
func (s *ConversationStore) StartConversation(ctx context.Context, product *entity.Product) (string, error) {
	if s.user == nil {
		return "", ErrNotAuthenticated
	}
	if product.SellerID == s.user.ID {
		return "", errors.BadRequest("You cannot start a conversation about your own product", nil)
	}

	id := entity.ConversationID(product.ID, s.user.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reloadLocked(ctx)
	if findConversation(s.conversations, id) >= 0 {
		return id, nil
	}

	conv := entity.Conversation{
		ID:              id,
		ProductID:       product.ID,
		ProductName:     product.Name,
		ProductImageURL: product.ImageURL,
		SellerID:        product.SellerID,
		SellerName:      product.SellerName,
		BuyerID:         s.user.ID,
		BuyerName:       s.user.Name,
		Messages:        []entity.Message{},
		LastUpdatedAt:   s.cfg.clock(),
	}

	s.conversations = append(s.conversations, conv)
	kvstore.SaveJSON(ctx, s.storage, repository.ConversationsKey(s.user.ID), s.conversations)

	kvstore.MirrorWrite(ctx, s.storage, repository.ConversationsKey(product.SellerID), func(list []entity.Conversation) []entity.Conversation {
		if findConversation(list, id) >= 0 {
			return list
		}
		return append(list, conv.Clone())
	})

	logger.Info("Conversation %s started by %s with seller %s", id, s.user.ID, product.SellerID)
	return id, nil
}

// SendMessage appends a redacted message to the conversation in both
// partitions and notifies the other participant. Without a signed-in user it
// does nothing and returns nil, unlike StartConversation.
func (s *ConversationStore) SendMessage(ctx context.Context, conversationID, text string) *entity.Message {
	if s.user == nil {
		return nil
	}

	id, now := s.ids.next()
	msg := entity.Message{
		ID:         id,
		SenderID:   s.user.ID,
		SenderName: s.user.Name,
		Text:       RedactContactInfo(text),
		CreatedAt:  now,
	}

	s.mu.Lock()
	s.reloadLocked(ctx)
	idx := findConversation(s.conversations, conversationID)
	if idx < 0 {
		s.mu.Unlock()
		logger.Warn("SendMessage: conversation %s not found for user %s", conversationID, s.user.ID)
		return nil
	}
	appendMessage(&s.conversations[idx], msg)
	conv := s.conversations[idx].Clone()
	sortByLastUpdated(s.conversations)
	kvstore.SaveJSON(ctx, s.storage, repository.ConversationsKey(s.user.ID), s.conversations)
	s.mu.Unlock()

	otherID := conv.OtherParticipant(s.user.ID)

	kvstore.MirrorWrite(ctx, s.storage, repository.ConversationsKey(otherID), func(list []entity.Conversation) []entity.Conversation {
		if i := findConversation(list, conversationID); i >= 0 {
			appendMessage(&list[i], msg)
		} else {
			// The earlier mirror of StartConversation may have been lost.
			list = append(list, conv.Clone())
		}
		sortByLastUpdated(list)
		return list
	})

	if s.notifier != nil {
		s.notifier.AddNotification(ctx, otherID, NotificationInput{
			Type:       entity.NotificationNewMessage,
			MessageKey: i18n.KeyNewMessage,
			Replacements: map[string]string{
				"senderName":  s.user.Name,
				"productName": conv.ProductName,
			},
			Link: fmt.Sprintf("/messages/%s", conversationID),
		})
	}
	s.cfg.push(otherID, ws.EventConversationUpdated, conv)

	return &msg
}

// GetConversationByID looks only at the loaded list of the session user. Call
// Reload first to see threads other sessions mirrored in.
func (s *ConversationStore) GetConversationByID(id string) (*entity.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := findConversation(s.conversations, id)
	if idx < 0 {
		return nil, false
	}
	conv := s.conversations[idx].Clone()
	return &conv, true
}

// Conversations returns the loaded partition, most recently updated first
// except for threads started since the last message was sent.
func (s *ConversationStore) Conversations() []entity.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		out[i] = c.Clone()
	}
	return out
}

func findConversation(list []entity.Conversation, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func appendMessage(c *entity.Conversation, msg entity.Message) {
	c.Messages = append(c.Messages, msg)
	c.LastUpdatedAt = msg.CreatedAt
}

func sortByLastUpdated(list []entity.Conversation) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LastUpdatedAt.After(list[j].LastUpdatedAt)
	})
}
