package handler

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"
)

const dateLayout = "2006-01-02"

type MarketingHandler struct {
	marketing *usecase.MarketingStore
	products  repository.ProductRepository
	location  *time.Location
}

func NewMarketingHandler(marketing *usecase.MarketingStore, products repository.ProductRepository, location *time.Location) *MarketingHandler {
	return &MarketingHandler{
		marketing: marketing,
		products:  products,
		location:  location,
	}
}

type discountCodeRequest struct {
	Code       string `json:"code" validate:"required,min=3,max=32"`
	Percentage int    `json:"percentage" validate:"required,min=1,max=100"`
	StartDate  string `json:"start_date" validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
}

type advertisementRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=100"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	LinkURL     string `json:"link_url" validate:"required,url"`
	AdPackage   string `json:"ad_package" validate:"required,oneof=daily weekly"`
}

type idListRequest struct {
	IDs []string `json:"ids" validate:"max=50,dive,required"`
}

// --- public ---

func (h *MarketingHandler) GetBanners(c echo.Context) error {
	return response.Success(c, h.marketing.Banners(c.Request().Context()))
}

// GetFeaturedProducts returns the featured ids and the products that still exist.
func (h *MarketingHandler) GetFeaturedProducts(c echo.Context) error {
	ids := h.marketing.FeaturedProductIDs()

	products := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, err := h.products.GetByID(c.Request().Context(), id); err == nil {
			products = append(products, p)
		}
	}

	return response.Success(c, map[string]interface{}{
		"ids":      ids,
		"products": products,
	})
}

func (h *MarketingHandler) ValidateDiscountCode(c echo.Context) error {
	dc := h.marketing.GetValidDiscountCode(c.Param("code"))
	if dc == nil {
		return response.Error(c, errors.NotFound("Discount code", nil))
	}
	return response.Success(c, dc)
}

func (h *MarketingHandler) SubmitAdvertisement(c echo.Context) error {
	var req advertisementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	ad := h.marketing.SubmitAdvertisement(c.Request().Context(), usecase.AdvertisementInput{
		CompanyName: req.CompanyName,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		AdPackage:   entity.AdPackage(req.AdPackage),
	}, middleware.CurrentUser(c))
	if ad == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	return response.Created(c, ad)
}

func (h *MarketingHandler) MyAdvertisements(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}
	return response.Success(c, nonNil(h.marketing.AdvertisementsByUploader(user.ID)))
}

// --- admin: discount codes ---

func (h *MarketingHandler) ListDiscountCodes(c echo.Context) error {
	return response.Success(c, nonNil(h.marketing.DiscountCodes()))
}

func (h *MarketingHandler) CreateDiscountCode(c echo.Context) error {
	var req discountCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, h.location)
	if err != nil {
		return response.Error(c, errors.BadRequest("start_date must be YYYY-MM-DD", err))
	}
	expiry, err := time.ParseInLocation(dateLayout, req.ExpiryDate, h.location)
	if err != nil {
		return response.Error(c, errors.BadRequest("expiry_date must be YYYY-MM-DD", err))
	}
	if expiry.Before(start) {
		return response.Error(c, errors.BadRequest("expiry_date must not be before start_date", nil))
	}

	ok := h.marketing.AddDiscountCode(c.Request().Context(), usecase.DiscountCodeInput{
		Code:       req.Code,
		Percentage: req.Percentage,
		StartDate:  start,
		ExpiryDate: expiry,
	})
	if !ok {
		return response.Error(c, errors.Conflict("Discount code already exists"))
	}

	for _, dc := range h.marketing.DiscountCodes() {
		if strings.EqualFold(dc.Code, strings.TrimSpace(req.Code)) {
			return response.Created(c, dc)
		}
	}
	return response.Error(c, errors.Internal("Discount code was not stored", nil))
}

func (h *MarketingHandler) ToggleDiscountCode(c echo.Context) error {
	active, found := h.marketing.ToggleDiscountCode(c.Request().Context(), c.Param("id"))
	if !found {
		return response.Error(c, errors.NotFound("Discount code", nil))
	}
	return response.Success(c, map[string]bool{"is_active": active})
}

func (h *MarketingHandler) DeleteDiscountCode(c echo.Context) error {
	if !h.marketing.DeleteDiscountCode(c.Request().Context(), c.Param("id")) {
		return response.Error(c, errors.NotFound("Discount code", nil))
	}
	return response.Success(c, map[string]string{"message": "Discount code deleted"})
}

// --- admin: advertisements ---

// ListAdvertisements optionally filters by ?status=pending|approved|rejected.
func (h *MarketingHandler) ListAdvertisements(c echo.Context) error {
	ads := h.marketing.Advertisements()
	status := c.QueryParam("status")
	if status == "" {
		return response.Success(c, nonNil(ads))
	}

	filtered := make([]entity.Advertisement, 0, len(ads))
	for _, ad := range ads {
		if string(ad.Status) == status {
			filtered = append(filtered, ad)
		}
	}
	return response.Success(c, filtered)
}

func (h *MarketingHandler) ApproveAdvertisement(c echo.Context) error {
	return h.review(c, h.marketing.ApproveAdvertisement)
}

func (h *MarketingHandler) RejectAdvertisement(c echo.Context) error {
	return h.review(c, h.marketing.RejectAdvertisement)
}

func (h *MarketingHandler) review(c echo.Context, apply func(ctx context.Context, id string) bool) error {
	id := c.Param("id")
	if _, ok := h.marketing.GetAdvertisement(id); !ok {
		return response.Error(c, errors.NotFound("Advertisement", nil))
	}
	if !apply(c.Request().Context(), id) {
		return response.Error(c, errors.BadRequest("Only pending advertisements can be reviewed", nil))
	}

	ad, _ := h.marketing.GetAdvertisement(id)
	return response.Success(c, ad)
}

func (h *MarketingHandler) DeleteAdvertisement(c echo.Context) error {
	if !h.marketing.DeleteAdvertisement(c.Request().Context(), c.Param("id")) {
		return response.Error(c, errors.NotFound("Advertisement", nil))
	}
	return response.Success(c, map[string]string{"message": "Advertisement deleted"})
}

// --- admin: homepage and featured ---

func (h *MarketingHandler) GetHomepageAds(c echo.Context) error {
	return response.Success(c, nonNil(h.marketing.HomepageAdIDs()))
}

func (h *MarketingHandler) SetHomepageAds(c echo.Context) error {
	var req idListRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, nonNil(h.marketing.SetHomepageAdIDs(c.Request().Context(), req.IDs)))
}

func (h *MarketingHandler) ToggleHomepageAd(c echo.Context) error {
	selected, found := h.marketing.ToggleHomepageAd(c.Request().Context(), c.Param("id"))
	if !found {
		return response.Error(c, errors.NotFound("Advertisement", nil))
	}
	return response.Success(c, map[string]bool{"selected": selected})
}

func (h *MarketingHandler) SetFeaturedProducts(c echo.Context) error {
	var req idListRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	h.marketing.SetFeaturedProductIDs(c.Request().Context(), req.IDs)
	return response.Success(c, h.marketing.FeaturedProductIDs())
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
