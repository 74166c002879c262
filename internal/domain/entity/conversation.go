package entity

import (
	"fmt"
	"time"
)

type Conversation struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductImageURL string    `json:"product_image_url"`
	SellerID        string    `json:"seller_id"`
	SellerName      string    `json:"seller_name"`
	BuyerID         string    `json:"buyer_id"`
	BuyerName       string    `json:"buyer_name"`
	Messages        []Message `json:"messages"`
	LastUpdatedAt   time.Time `json:"last_updated_at"`
}

// ConversationID is stable for a (product, buyer) pair.
func ConversationID(productID, buyerID string) string {
	return fmt.Sprintf("%s-%s", productID, buyerID)
}

// OtherParticipant returns the id of whichever side is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.SellerID == userID {
		return c.BuyerID
	}
	return c.SellerID
}

// Clone returns a copy that shares no message slice with c.
func (c Conversation) Clone() Conversation {
	msgs := make([]Message, len(c.Messages))
	copy(msgs, c.Messages)
	c.Messages = msgs
	return c
}
