package router

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, marketingHandler *handler.MarketingHandler, notificationHandler *handler.NotificationHandler, settingsHandler *handler.SettingsHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	// Discount codes
	admin.GET("/discount-codes", marketingHandler.ListDiscountCodes)
	admin.POST("/discount-codes", marketingHandler.CreateDiscountCode)
	admin.PATCH("/discount-codes/:id/toggle", marketingHandler.ToggleDiscountCode)
	admin.DELETE("/discount-codes/:id", marketingHandler.DeleteDiscountCode)

	// Advertisements
	admin.GET("/advertisements", marketingHandler.ListAdvertisements)
	admin.PATCH("/advertisements/:id/approve", marketingHandler.ApproveAdvertisement)
	admin.PATCH("/advertisements/:id/reject", marketingHandler.RejectAdvertisement)
	admin.DELETE("/advertisements/:id", marketingHandler.DeleteAdvertisement)

	// Homepage and featured products
	admin.GET("/homepage-ads", marketingHandler.GetHomepageAds)
	admin.PUT("/homepage-ads", marketingHandler.SetHomepageAds)
	admin.POST("/homepage-ads/:id/toggle", marketingHandler.ToggleHomepageAd)
	admin.PUT("/featured-products", marketingHandler.SetFeaturedProducts)

	// Notifications
	admin.POST("/notifications", notificationHandler.SendNotification)

	// Site settings
	admin.GET("/settings", settingsHandler.GetSettings)
	admin.GET("/settings/:category", settingsHandler.GetCategory)
	admin.PUT("/settings/general", settingsHandler.UpdateGeneral)
	admin.PUT("/settings/appearance", settingsHandler.UpdateAppearance)
	admin.PUT("/settings/notifications", settingsHandler.UpdateNotifications)
	admin.GET("/language", settingsHandler.GetLanguage)
	admin.PUT("/language", settingsHandler.SetLanguage)
}
