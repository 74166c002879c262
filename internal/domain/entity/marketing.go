package entity

import "time"

type DiscountCode struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Percentage int       `json:"percentage"`
	StartDate  time.Time `json:"start_date"`
	ExpiryDate time.Time `json:"expiry_date"`
	IsActive   bool      `json:"is_active"`
}

type AdPackage string

const (
	AdPackageDaily  AdPackage = "daily"
	AdPackageWeekly AdPackage = "weekly"
)

// Duration is how long an approved ad stays live.
func (p AdPackage) Duration() time.Duration {
	if p == AdPackageDaily {
		return 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

type AdStatus string

const (
	AdStatusPending  AdStatus = "pending"
	AdStatusApproved AdStatus = "approved"
	AdStatusRejected AdStatus = "rejected"
)

type Advertisement struct {
	ID           string     `json:"id"`
	UploaderID   string     `json:"uploader_id"`
	UploaderName string     `json:"uploader_name"`
	CompanyName  string     `json:"company_name"`
	ImageURL     string     `json:"image_url"`
	LinkURL      string     `json:"link_url"`
	AdPackage    AdPackage  `json:"ad_package"`
	Status       AdStatus   `json:"status"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// IsLive reports whether the ad is approved and not yet expired at now.
// Expiry is never persisted as a status.
func (a *Advertisement) IsLive(now time.Time) bool {
	return a.Status == AdStatusApproved && a.ExpiresAt != nil && a.ExpiresAt.After(now)
}

// Banner is derived at read time and never stored.
type Banner struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
}
