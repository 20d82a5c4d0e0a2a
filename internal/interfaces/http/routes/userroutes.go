// Package routes wires handlers into the gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"lumina/internal/interfaces/http/handlers"
)

// UserRouteConfig holds dependencies for the user routes.
type UserRouteConfig struct {
	UserHandler *handlers.UserHandler
}

// SetupUserRoutes configures the user account routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	{
		users.POST("", cfg.UserHandler.Register)
		users.GET("/:sid", cfg.UserHandler.Get)
		users.GET("/:sid/quota", cfg.UserHandler.GetQuota)
	}
}
