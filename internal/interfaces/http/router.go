// Package http assembles the gin engine with all handlers and middleware.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	chatUsecases "lumina/internal/application/chat/usecases"
	subscriptionUsecases "lumina/internal/application/subscription/usecases"
	userUsecases "lumina/internal/application/user/usecases"
	"lumina/internal/infrastructure/chatbot"
	"lumina/internal/infrastructure/config"
	"lumina/internal/infrastructure/payment"
	"lumina/internal/infrastructure/ratelimit"
	"lumina/internal/infrastructure/repository"
	"lumina/internal/interfaces/http/handlers"
	"lumina/internal/interfaces/http/middleware"
	"lumina/internal/interfaces/http/routes"
	"lumina/internal/shared/logger"
)

// Router holds the assembled gin engine and the use cases shared with the
// background scheduler.
type Router struct {
	engine     *gin.Engine
	renewDueUC *subscriptionUsecases.RenewDueSubscriptionsUseCase
}

// NewRouter wires repositories, use cases, handlers and routes. redisClient
// may be nil, which disables chat rate limiting.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	userRepo := repository.NewUserRepository(db, log)
	bundleRepo := repository.NewBundleRepository(db, log)
	usageRepo := repository.NewUsageRepository(db, log)
	chatRepo := repository.NewMessageRepository(db, log)

	gateway := payment.NewSimulator(cfg.Billing.PaymentSuccessRate, log.Named("payment"))
	responder := chatbot.NewEchoResponder()

	registerUC := userUsecases.NewRegisterUserUseCase(userRepo, log)
	getUserUC := userUsecases.NewGetUserUseCase(userRepo, log)

	createUC := subscriptionUsecases.NewCreateSubscriptionUseCase(bundleRepo, userRepo, log)
	listUC := subscriptionUsecases.NewListSubscriptionsUseCase(bundleRepo, userRepo, log)
	cancelUC := subscriptionUsecases.NewCancelSubscriptionUseCase(bundleRepo, userRepo, log)
	renewUC := subscriptionUsecases.NewRenewSubscriptionUseCase(bundleRepo, gateway, log)
	renewDueUC := subscriptionUsecases.NewRenewDueSubscriptionsUseCase(
		bundleRepo, renewUC, cfg.Billing.RenewalBatchSize, log)
	quotaUC := subscriptionUsecases.NewQuotaStatusUseCase(bundleRepo, usageRepo, userRepo, log)

	sendUC := chatUsecases.NewSendMessageUseCase(bundleRepo, usageRepo, userRepo, chatRepo, responder, log)
	historyUC := chatUsecases.NewGetChatHistoryUseCase(
		chatRepo, userRepo, cfg.Chat.HistoryDefaultSize, cfg.Chat.HistoryMaxSize, log)

	userHandler := handlers.NewUserHandler(registerUC, getUserUC, quotaUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(createUC, listUC, cancelUC, renewDueUC)
	chatHandler := handlers.NewChatHandler(sendUC, historyUC)

	var chatRateLimit gin.HandlerFunc
	if redisClient != nil && cfg.Chat.RateLimitPerMinute > 0 {
		limiter := ratelimit.NewRedisRateLimiter(redisClient)
		chatRateLimit = middleware.ChatRateLimit(limiter, cfg.Chat.RateLimitPerMinute)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := engine.Group("/api")
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{UserHandler: userHandler})
	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{SubscriptionHandler: subscriptionHandler})
	routes.SetupChatRoutes(api, &routes.ChatRouteConfig{ChatHandler: chatHandler, RateLimit: chatRateLimit})

	return &Router{
		engine:     engine,
		renewDueUC: renewDueUC,
	}
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// RenewDueUseCase exposes the sweep use case for the background scheduler.
func (r *Router) RenewDueUseCase() *subscriptionUsecases.RenewDueSubscriptionsUseCase {
	return r.renewDueUC
}
