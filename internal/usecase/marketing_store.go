package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/i18n"
	"marketplace/internal/infrastructure/kvstore"
	"marketplace/pkg/logger"
)

const fallbackBannerCount = 5

// DefaultFeaturedProductIDs is served while no featured selection is stored.
var DefaultFeaturedProductIDs = []string{"1", "2", "3", "4"}

type DiscountCodeInput struct {
	Code       string
	Percentage int
	StartDate  time.Time
	ExpiryDate time.Time
}

type AdvertisementInput struct {
	CompanyName string
	ImageURL    string
	LinkURL     string
	AdPackage   entity.AdPackage
}

// MarketingStore owns the global marketing partition: discount codes,
// advertisements, the homepage ad selection and featured products.
type MarketingStore struct {
	storage  repository.Storage
	products repository.ProductRepository
	notifier Notifier
	cfg      storeConfig

	mu            sync.RWMutex
	discountCodes []entity.DiscountCode
	ads           []entity.Advertisement
	homepageAdIDs []string
	featuredIDs   []string
}

func NewMarketingStore(ctx context.Context, storage repository.Storage, products repository.ProductRepository, notifier Notifier, opts ...StoreOption) *MarketingStore {
	s := &MarketingStore{
		storage:  storage,
		products: products,
		notifier: notifier,
		cfg:      newStoreConfig(opts),
	}
	s.Reload(ctx)
	return s
}

func (s *MarketingStore) Reload(ctx context.Context) {
	var (
		codes    []entity.DiscountCode
		ads      []entity.Advertisement
		adIDs    []string
		featured []string
	)
	kvstore.LoadJSON(ctx, s.storage, repository.KeyDiscountCodes, &codes)
	kvstore.LoadJSON(ctx, s.storage, repository.KeyAdvertisements, &ads)
	kvstore.LoadJSON(ctx, s.storage, repository.KeyHomepageAdIDs, &adIDs)
	kvstore.LoadJSON(ctx, s.storage, repository.KeyFeaturedProducts, &featured)

	s.mu.Lock()
	s.discountCodes = codes
	s.ads = ads
	s.homepageAdIDs = adIDs
	s.featuredIDs = featured
	s.mu.Unlock()
}

// --- discount codes ---

// AddDiscountCode creates an active code. It returns false, changing
// nothing, when the code already exists in any letter case.
func (s *MarketingStore) AddDiscountCode(ctx context.Context, input DiscountCodeInput) bool {
	code := strings.TrimSpace(input.Code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCode(code) >= 0 {
		return false
	}

	s.discountCodes = append(s.discountCodes, entity.DiscountCode{
		ID:         uuid.New().String(),
		Code:       code,
		Percentage: input.Percentage,
		StartDate:  input.StartDate,
		ExpiryDate: input.ExpiryDate,
		IsActive:   true,
	})
	kvstore.SaveJSON(ctx, s.storage, repository.KeyDiscountCodes, s.discountCodes)
	return true
}

// GetValidDiscountCode returns the code if it is active and today falls in
// [start 00:00, expiry 23:59:59.999]. "Today" is the start of the current day.
func (s *MarketingStore) GetValidDiscountCode(code string) *entity.DiscountCode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findCode(strings.TrimSpace(code))
	if idx < 0 {
		return nil
	}
	dc := s.discountCodes[idx]
	if !dc.IsActive {
		return nil
	}

	loc := s.cfg.location
	today := startOfDay(s.cfg.clock(), loc)
	if today.Before(startOfDay(dc.StartDate, loc)) || today.After(endOfDay(dc.ExpiryDate, loc)) {
		return nil
	}
	return &dc
}

func (s *MarketingStore) DiscountCodes() []entity.DiscountCode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.DiscountCode, len(s.discountCodes))
	copy(out, s.discountCodes)
	return out
}

// ToggleDiscountCode flips IsActive and reports the new value.
func (s *MarketingStore) ToggleDiscountCode(ctx context.Context, id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.discountCodes {
		if s.discountCodes[i].ID == id {
			s.discountCodes[i].IsActive = !s.discountCodes[i].IsActive
			kvstore.SaveJSON(ctx, s.storage, repository.KeyDiscountCodes, s.discountCodes)
			return s.discountCodes[i].IsActive, true
		}
	}
	return false, false
}

func (s *MarketingStore) DeleteDiscountCode(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.discountCodes {
		if s.discountCodes[i].ID == id {
			s.discountCodes = append(s.discountCodes[:i], s.discountCodes[i+1:]...)
			kvstore.SaveJSON(ctx, s.storage, repository.KeyDiscountCodes, s.discountCodes)
			return true
		}
	}
	return false
}

func (s *MarketingStore) findCode(code string) int {
	for i := range s.discountCodes {
		if strings.EqualFold(s.discountCodes[i].Code, code) {
			return i
		}
	}
	return -1
}

// --- advertisements ---

// SubmitAdvertisement queues an ad for review. Without an uploader it does nothing.
func (s *MarketingStore) SubmitAdvertisement(ctx context.Context, input AdvertisementInput, uploader *entity.User) *entity.Advertisement {
	if uploader == nil {
		return nil
	}

	ad := entity.Advertisement{
		ID:           uuid.New().String(),
		UploaderID:   uploader.ID,
		UploaderName: uploader.Name,
		CompanyName:  input.CompanyName,
		ImageURL:     input.ImageURL,
		LinkURL:      input.LinkURL,
		AdPackage:    input.AdPackage,
		Status:       entity.AdStatusPending,
		SubmittedAt:  s.cfg.clock(),
	}

	s.mu.Lock()
	s.ads = append(s.ads, ad)
	kvstore.SaveJSON(ctx, s.storage, repository.KeyAdvertisements, s.ads)
	s.mu.Unlock()

	logger.Info("Advertisement %s submitted by %s (%s package)", ad.ID, uploader.ID, ad.AdPackage)
	return &ad
}

// ApproveAdvertisement moves a pending ad to approved and starts its run:
// one day for the daily package, seven otherwise.
func (s *MarketingStore) ApproveAdvertisement(ctx context.Context, id string) bool {
	return s.review(ctx, id, entity.AdStatusApproved, i18n.KeyAdApproved)
}

// RejectAdvertisement moves a pending ad to rejected. No expiry is set.
func (s *MarketingStore) RejectAdvertisement(ctx context.Context, id string) bool {
	return s.review(ctx, id, entity.AdStatusRejected, i18n.KeyAdRejected)
}

func (s *MarketingStore) review(ctx context.Context, id string, to entity.AdStatus, messageKey string) bool {
	s.mu.Lock()
	idx := s.findAd(id)
	if idx < 0 || s.ads[idx].Status != entity.AdStatusPending {
		s.mu.Unlock()
		return false
	}

	ad := &s.ads[idx]
	ad.Status = to
	if to == entity.AdStatusApproved {
		expiresAt := s.cfg.clock().Add(ad.AdPackage.Duration())
		ad.ExpiresAt = &expiresAt
	}
	reviewed := *ad
	kvstore.SaveJSON(ctx, s.storage, repository.KeyAdvertisements, s.ads)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.AddNotification(ctx, reviewed.UploaderID, NotificationInput{
			Type:         entity.NotificationAdStatusUpdate,
			MessageKey:   messageKey,
			Replacements: map[string]string{"companyName": reviewed.CompanyName},
			Link:         "/advertise",
		})
	}

	logger.Info("Advertisement %s %s", reviewed.ID, reviewed.Status)
	return true
}

// DeleteAdvertisement removes the ad and drops it from the homepage selection.
func (s *MarketingStore) DeleteAdvertisement(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findAd(id)
	if idx < 0 {
		return false
	}
	s.ads = append(s.ads[:idx], s.ads[idx+1:]...)
	kvstore.SaveJSON(ctx, s.storage, repository.KeyAdvertisements, s.ads)

	if i := indexOf(s.homepageAdIDs, id); i >= 0 {
		s.homepageAdIDs = append(s.homepageAdIDs[:i], s.homepageAdIDs[i+1:]...)
		kvstore.SaveJSON(ctx, s.storage, repository.KeyHomepageAdIDs, s.homepageAdIDs)
	}
	return true
}

func (s *MarketingStore) GetAdvertisement(id string) (*entity.Advertisement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findAd(id)
	if idx < 0 {
		return nil, false
	}
	ad := s.ads[idx]
	return &ad, true
}

func (s *MarketingStore) Advertisements() []entity.Advertisement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Advertisement, len(s.ads))
	copy(out, s.ads)
	return out
}

func (s *MarketingStore) AdvertisementsByUploader(userID string) []entity.Advertisement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.Advertisement
	for _, ad := range s.ads {
		if ad.UploaderID == userID {
			out = append(out, ad)
		}
	}
	return out
}

func (s *MarketingStore) findAd(id string) int {
	for i := range s.ads {
		if s.ads[i].ID == id {
			return i
		}
	}
	return -1
}

// --- homepage selection ---

func (s *MarketingStore) HomepageAdIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.homepageAdIDs...)
}

// SetHomepageAdIDs replaces the selection, keeping only known ads, once each.
func (s *MarketingStore) SetHomepageAdIDs(ctx context.Context, ids []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.findAd(id) >= 0 && indexOf(selected, id) < 0 {
			selected = append(selected, id)
		}
	}
	s.homepageAdIDs = selected
	kvstore.SaveJSON(ctx, s.storage, repository.KeyHomepageAdIDs, s.homepageAdIDs)
	return append([]string(nil), selected...)
}

// ToggleHomepageAd adds or removes id from the selection and reports whether
// it is now selected.
func (s *MarketingStore) ToggleHomepageAd(ctx context.Context, id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAd(id) < 0 {
		return false, false
	}

	selected := true
	if i := indexOf(s.homepageAdIDs, id); i >= 0 {
		s.homepageAdIDs = append(s.homepageAdIDs[:i], s.homepageAdIDs[i+1:]...)
		selected = false
	} else {
		s.homepageAdIDs = append(s.homepageAdIDs, id)
	}
	kvstore.SaveJSON(ctx, s.storage, repository.KeyHomepageAdIDs, s.homepageAdIDs)
	return selected, true
}

// Banners is recomputed on every call: selected ads that are approved and
// unexpired, else the first five catalog products, else nothing.
func (s *MarketingStore) Banners(ctx context.Context) []entity.Banner {
	now := s.cfg.clock()

	s.mu.RLock()
	var banners []entity.Banner
	for _, ad := range s.ads {
		if indexOf(s.homepageAdIDs, ad.ID) >= 0 && ad.IsLive(now) {
			banners = append(banners, entity.Banner{
				ID:       ad.ID,
				ImageURL: ad.ImageURL,
				LinkURL:  ad.LinkURL,
			})
		}
	}
	s.mu.RUnlock()

	if len(banners) > 0 {
		return banners
	}

	products, err := s.products.List(ctx)
	if err != nil {
		logger.Error("Banners: failed to list products: %v", err)
		return []entity.Banner{}
	}
	banners = make([]entity.Banner, 0, fallbackBannerCount)
	for _, p := range products {
		if len(banners) == fallbackBannerCount {
			break
		}
		banners = append(banners, entity.Banner{
			ID:       p.ID,
			ImageURL: p.ImageURL,
			LinkURL:  fmt.Sprintf("/products/%s", p.ID),
		})
	}
	return banners
}

// --- featured products ---

func (s *MarketingStore) FeaturedProductIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.featuredIDs) == 0 {
		return append([]string(nil), DefaultFeaturedProductIDs...)
	}
	return append([]string(nil), s.featuredIDs...)
}

func (s *MarketingStore) SetFeaturedProductIDs(ctx context.Context, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.featuredIDs = append([]string(nil), ids...)
	kvstore.SaveJSON(ctx, s.storage, repository.KeyFeaturedProducts, s.featuredIDs)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}
