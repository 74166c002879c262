package router

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"
)

func SetupConversationRouter(e *echo.Echo, conversationHandler *handler.ConversationHandler, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.POST("", conversationHandler.StartConversation, middleware.RateLimit(limiter, ratelimit.ActionStartConversation))
	conversations.GET("", conversationHandler.ListConversations)
	conversations.GET("/:id", conversationHandler.GetConversation)
	conversations.POST("/:id/messages", conversationHandler.SendMessage, middleware.RateLimit(limiter, ratelimit.ActionSendMessage))
}
