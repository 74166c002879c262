package router

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"
)

func SetupMarketingRouter(e *echo.Echo, marketingHandler *handler.MarketingHandler, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	// Public storefront
	e.GET("/v1/banners", marketingHandler.GetBanners)
	e.GET("/v1/featured-products", marketingHandler.GetFeaturedProducts)
	e.GET("/v1/discount-codes/:code", marketingHandler.ValidateDiscountCode)

	ads := e.Group("/v1/advertisements")
	ads.Use(authMiddleware.Authenticate)
	ads.POST("", marketingHandler.SubmitAdvertisement, middleware.RateLimit(limiter, ratelimit.ActionSubmitAd))
	ads.GET("/mine", marketingHandler.MyAdvertisements)
}
