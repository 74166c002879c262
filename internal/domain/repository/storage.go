package repository

import "context"

// Storage is the key/value port every store persists through. Values are
// serialized text; an absent key is reported with found == false, not an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	KeyDiscountCodes    = "discount_codes"
	KeyFeaturedProducts = "featured_products"
	KeyAdvertisements   = "advertisements"
	KeyHomepageAdIDs    = "homepage_ad_ids"
	KeyProducts         = "products"
	KeyUsers            = "users"
	KeySiteSettings     = "site_settings"
)

// ConversationsKey is the partition key holding a user's conversations.
func ConversationsKey(userID string) string {
	return "conversations:" + userID
}

// NotificationsKey is the partition key holding a user's notifications.
func NotificationsKey(userID string) string {
	return "notifications:" + userID
}
