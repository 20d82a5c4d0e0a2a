package routes

import (
	"github.com/gin-gonic/gin"

	"lumina/internal/interfaces/http/handlers"
)

// ChatRouteConfig holds dependencies for the chat routes.
type ChatRouteConfig struct {
	ChatHandler *handlers.ChatHandler
	// RateLimit throttles message sends; nil disables it.
	RateLimit gin.HandlerFunc
}

// SetupChatRoutes configures the chat routes.
func SetupChatRoutes(api *gin.RouterGroup, cfg *ChatRouteConfig) {
	chat := api.Group("/users/:sid/chat")
	{
		if cfg.RateLimit != nil {
			chat.POST("", cfg.RateLimit, cfg.ChatHandler.Send)
		} else {
			chat.POST("", cfg.ChatHandler.Send)
		}
		chat.GET("", cfg.ChatHandler.History)
	}
}
