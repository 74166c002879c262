package router

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware) {
	notifications := e.Group("/v1/notifications")
	notifications.Use(authMiddleware.Authenticate)

	notifications.GET("", notificationHandler.ListNotifications)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/read", notificationHandler.MarkAllAsRead)
}
