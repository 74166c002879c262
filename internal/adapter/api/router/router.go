package router

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Conversation *handler.ConversationHandler
	Notification *handler.NotificationHandler
	Marketing    *handler.MarketingHandler
	Settings     *handler.SettingsHandler
	Health       *handler.HealthHandler
	WebSocket    *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	SetupConversationRouter(e, h.Conversation, authMiddleware, limiter)
	SetupNotificationRouter(e, h.Notification, authMiddleware)
	SetupMarketingRouter(e, h.Marketing, authMiddleware, limiter)
	SetupAdminRouter(e, h.Marketing, h.Notification, h.Settings, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, h.WebSocket, authMiddleware)
	SetupHealthRouter(e, h.Health)
}
