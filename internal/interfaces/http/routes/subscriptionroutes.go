package routes

import (
	"github.com/gin-gonic/gin"

	"lumina/internal/interfaces/http/handlers"
)

// SubscriptionRouteConfig holds dependencies for the subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
}

// SetupSubscriptionRoutes configures the subscription lifecycle routes.
func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	api.GET("/tiers", cfg.SubscriptionHandler.Tiers)
	api.POST("/subscriptions/renew", cfg.SubscriptionHandler.RenewDue)

	users := api.Group("/users/:sid")
	{
		users.POST("/subscriptions", cfg.SubscriptionHandler.Create)
		users.GET("/subscriptions", cfg.SubscriptionHandler.List)
		users.GET("/subscriptions/active", cfg.SubscriptionHandler.ListActive)
		users.POST("/subscriptions/:bundleSid/cancel", cfg.SubscriptionHandler.Cancel)
	}
}
